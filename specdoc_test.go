package nlg

import (
	"errors"
	"testing"
)

func TestRealiseSpec(t *testing.T) {
	r := newRealiser(t)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "json clause",
			doc: `{"type": "clause",
				"subjects": [{"type": "np", "specifier": {"base": "the"}, "head": {"base": "man"}}],
				"head": {"base": "greet"},
				"object": {"type": "np", "specifier": {"base": "the"}, "head": {"base": "crowd"}},
				"features": {"tense": "past", "negated": true}}`,
			want: "The man did not greet the crowd.",
		},
		{
			name: "yaml clause",
			doc: `
type: clause
subjects:
  - {type: np, specifier: {base: the}, head: {base: man}}
base: greet
object: {type: np, specifier: {base: the}, head: {base: crowd}}
`,
			want: "The man greets the crowd.",
		},
		{
			name: "yaml french",
			doc: `
type: pp
lang: fr-FR
head: {base: de}
complements:
  - {type: np, specifier: {base: le}, head: {base: chien}}
`,
			want: "Du chien.",
		},
		{
			name: "modifiers",
			doc: `
type: np
specifier: {base: a}
head: {base: stenosis}
modifiers:
  - {base: eccentric, category: adjective}
  - {base: discrete, category: adjective}
`,
			want: "An eccentric, discrete stenosis.",
		},
		{
			name: "coordination",
			doc: `
type: coordination
coordinates: [{base: dog}, {base: cat}, {base: house}]
features: {conjunction: or}
`,
			want: "Dog, cat or house.",
		},
		{
			name: "list document",
			doc: `
type: list
components:
  - {type: text, text: one}
  - {type: text, text: two}
`,
			want: "* one\n* two",
		},
		{
			name: "titled document",
			doc: `
type: document
title: Notes
components:
  - type: paragraph
    components:
      - type: sentence
        components: [{type: text, text: it rains}]
`,
			want: "Notes\n\nIt rains.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseSpec([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseSpec: %v", err)
			}
			got, err := r.RealiseSpec(n)
			if err != nil {
				t.Fatalf("RealiseSpec: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	r := newRealiser(t)

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown type", `{"type": "gizmo"}`, ErrBadSpec},
		{"word without base", `{"type": "word"}`, ErrBadSpec},
		{"phrasal word category", `{"type": "word", "base": "x", "category": "clause"}`, ErrBadSpec},
		{"bad tense", `{"type": "clause", "base": "go", "features": {"tense": "someday"}}`, ErrBadSpec},
		{"bad flag list", `{"type": "clause", "base": "go", "features": {"flags": "negated"}}`, ErrBadSpec},
		{"unknown flag", `{"type": "clause", "base": "go", "features": {"flags": ["shiny"]}}`, ErrBadSpec},
		{"bad flag value", `{"type": "clause", "base": "go", "features": {"negated": "maybe"}}`, ErrBadSpec},
		{"unsupported language", `{"type": "np", "lang": "tlh", "base": "qagh"}`, ErrUnsupportedLanguage},
		{"nested error", `{"type": "clause", "base": "go", "subjects": [{"type": "gizmo"}]}`, ErrBadSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseSpec([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseSpec: %v", err)
			}
			if _, err := r.Build(n); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseSpec([]byte("  \n")); !errors.Is(err, ErrBadSpec) {
		t.Errorf("empty document err = %v", err)
	}
	if _, err := ParseSpec([]byte(`{"type": `)); err == nil {
		t.Error("truncated json accepted")
	}
	if _, err := r.Build(nil); !errors.Is(err, ErrBadSpec) {
		t.Errorf("nil root err = %v", err)
	}
}

func TestApplyFeatures(t *testing.T) {
	var fs Features
	err := applyFeatures(&fs, map[string]any{
		"tense":         "conditional",
		"number":        "plural",
		"person":        "1",
		"gender":        "f",
		"interrogative": "yes_no",
		"relative":      "object",
		"modal":         "can",
		"flags":         []any{"passive", "perfect"},
		"progressive":   true,
		"tone":          "formal",
	})
	if err != nil {
		t.Fatalf("applyFeatures: %v", err)
	}
	if fs.Tense != TenseConditional || fs.Number != NumberPlural || fs.Person != PersonFirst || fs.Gender != GenderFeminine {
		t.Errorf("agreement features = %+v", fs)
	}
	if fs.Interrogative != InterrogativeYesNo {
		t.Errorf("interrogative = %s", fs.Interrogative)
	}
	if fs.Relative != FunctionObject || fs.Status != ClauseSubordinate {
		t.Errorf("relative = %s, status = %s", fs.Relative, fs.Status)
	}
	if fs.Modal != "can" {
		t.Errorf("modal = %q", fs.Modal)
	}
	if !fs.Has(FlagPassive | FlagPerfect | FlagProgressive) {
		t.Errorf("flags = %b", fs.Flags)
	}
	if v, ok := fs.Get("tone"); !ok || v != "formal" {
		t.Errorf("extra tone = %v, %v", v, ok)
	}
}
