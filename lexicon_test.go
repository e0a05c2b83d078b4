package nlg

import (
	"strings"
	"testing"
	"testing/fstest"
)

const horseLexicon = `
language: en
defaults:
  conjunction: plus
words:
  - {base: horse, category: noun, variants: [hoss]}
  - {base: ox, category: noun, forms: {plural: oxen}}
  - {base: gallop, category: verb, forms: {past: galloped}}
  - {id: she, base: she, category: pronoun, person: "3", number: singular, gender: feminine, function: subject}
`

func TestLoadLexicon(t *testing.T) {
	lex, err := LoadLexicon(strings.NewReader(horseLexicon))
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if lex.Language() != English {
		t.Errorf("Language() = %s", lex.Language())
	}
	if got := len(lex.Words()); got != 4 {
		t.Errorf("len(Words()) = %d, want 4", got)
	}
	if lex.Defaults().Conjunction != "plus" {
		t.Errorf("Defaults().Conjunction = %q", lex.Defaults().Conjunction)
	}

	t.Run("lookup", func(t *testing.T) {
		w := lex.Lookup("Horse", CatNoun)
		if w.Synthesised || w.Base != "horse" {
			t.Errorf("Lookup(Horse) = %+v", w)
		}
		if w := lex.Lookup("horse", CatVerb); !w.Synthesised {
			t.Error("Lookup(horse, verb) found the noun")
		}
		z := lex.Lookup("zebra", CatNoun)
		if !z.Synthesised || z.Category() != CatNoun || z.Language() != English {
			t.Errorf("synthesised entry = %+v", z)
		}
	})

	t.Run("variants", func(t *testing.T) {
		for form, want := range map[string]string{
			"oxen":     "ox",
			"hoss":     "horse",
			"galloped": "gallop",
		} {
			if w := lex.LookupByVariant(form, CatAny); w.Base != want {
				t.Errorf("LookupByVariant(%s) = %s, want %s", form, w.Base, want)
			}
		}
	})

	t.Run("id and features", func(t *testing.T) {
		if w := lex.LookupByID("she"); w == nil || w.Base != "she" {
			t.Errorf("LookupByID(she) = %v", w)
		}
		if w := lex.LookupByID("he"); w != nil {
			t.Errorf("LookupByID(he) = %v, want nil", w)
		}
		w, ok := lex.LookupByFeatures(CatPronoun, WordQuery{Person: PersonThird, Gender: GenderFeminine})
		if !ok || w.Base != "she" {
			t.Errorf("LookupByFeatures = %v, %v", w, ok)
		}
		if _, ok := lex.LookupByFeatures(CatPronoun, WordQuery{Person: PersonFirst}); ok {
			t.Error("LookupByFeatures matched a first person")
		}
	})
}

func TestLoadLexiconErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no language", "words: []"},
		{"bad category", "language: en\nwords:\n  - {base: x, category: gizmo}"},
		{"bad flag", "language: en\nwords:\n  - {base: x, category: noun, flags: [shiny]}"},
		{"bad gender", "language: fr\nwords:\n  - {base: x, category: noun, gender: both}"},
		{"not yaml", "language: [en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadLexicon(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadLexiconFS(t *testing.T) {
	fsys := fstest.MapFS{"lex/horses.yaml": {Data: []byte(horseLexicon)}}
	lex, err := LoadLexiconFS(fsys, "lex/horses.yaml")
	if err != nil {
		t.Fatalf("LoadLexiconFS: %v", err)
	}
	if w := lex.Lookup("ox", CatNoun); w.Synthesised {
		t.Error("ox not loaded")
	}
	if _, err := LoadLexiconFS(fsys, "lex/missing.yaml"); err == nil {
		t.Error("missing file accepted")
	}
}

func TestDefaultLexicons(t *testing.T) {
	en, err := DefaultLexicon(English)
	if err != nil {
		t.Fatalf("DefaultLexicon(en): %v", err)
	}
	if w := en.LookupByVariant("men", CatNoun); w.Base != "man" {
		t.Errorf("men → %s, want man", w.Base)
	}

	fr, err := DefaultLexicon(French)
	if err != nil {
		t.Fatalf("DefaultLexicon(fr): %v", err)
	}
	if w := fr.LookupByVariant("parlons", CatVerb); w.Base != "parler" || w.Synthesised {
		t.Errorf("parlons → %+v, want parler", w)
	}
	if w := fr.LookupByVariant("yeux", CatAny); w.Base != "œil" {
		t.Errorf("yeux → %s, want œil", w.Base)
	}

	q := WordQuery{Person: PersonThird, Number: NumberSingular, Gender: GenderFeminine, Function: FunctionObject, Flags: FlagClitic}
	if w, ok := fr.LookupByFeatures(CatPronoun, q); !ok || w.Base != "la" {
		t.Errorf("object clitic = %v, want la", w)
	}
	q = WordQuery{Person: PersonThird, Number: NumberPlural, Flags: FlagDetached}
	if w, ok := fr.LookupByFeatures(CatPronoun, q); !ok || w.Base != "eux" {
		t.Errorf("detached plural = %v, want eux", w)
	}

	if _, err := DefaultLexicon("tlh"); err == nil {
		t.Error("DefaultLexicon(tlh) succeeded")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	e := Entry{
		ID:       "chienne",
		Base:     "chien",
		Category: "noun",
		Gender:   "masculine",
		Flags:    []string{"proper", "preposed"},
		Forms:    map[string]string{"feminine": "chienne"},
		Model:    "aimer",
	}
	w, err := e.Word(French)
	if err != nil {
		t.Fatalf("Word: %v", err)
	}
	if !w.Features().Has(FlagProper|FlagPreposed) || w.Features().Gender != GenderMasculine {
		t.Errorf("features not applied: %+v", w.Features())
	}
	back := EntryOf(w)
	if back.ID != e.ID || back.Base != e.Base || back.Gender != e.Gender || back.Model != "aimer" {
		t.Errorf("EntryOf = %+v", back)
	}
	if strings.Join(back.Flags, ",") != "preposed,proper" {
		t.Errorf("flags = %v", back.Flags)
	}
	if back.Forms["feminine"] != "chienne" {
		t.Errorf("forms = %v", back.Forms)
	}
}

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"  Horse ": "horse",
		"Été":      "été",
	} {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Fold("Élève en cœur"); got != "Eleve en coeur" {
		t.Errorf("Fold = %q", got)
	}
}
