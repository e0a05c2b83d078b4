package nlg

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func newRealiser(t *testing.T, opts ...Option) *Realiser {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestEnglishClauses(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	tests := []struct {
		name  string
		build func() Element
		want  string
	}{
		{
			name: "simple present",
			build: func() Element {
				return en.Clause("the man", "greet", "the crowd")
			},
			want: "The man greets the crowd.",
		},
		{
			name: "negated past",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Tense = TensePast
				c.Features().Set(FlagNegated, true)
				return c
			},
			want: "The man did not greet the crowd.",
		},
		{
			name: "future",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Tense = TenseFuture
				return c
			},
			want: "The man will greet the crowd.",
		},
		{
			name: "passive",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Set(FlagPassive, true)
				return c
			},
			want: "The crowd is greeted by the man.",
		},
		{
			name: "yes-no question",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Interrogative = InterrogativeYesNo
				return c
			},
			want: "Does the man greet the crowd?",
		},
		{
			name: "plural subject",
			build: func() Element {
				np := en.NounPhrase("the", "man")
				np.Features().Number = NumberPlural
				return en.Clause(np, "greet", "the crowd")
			},
			want: "The men greet the crowd.",
		},
		{
			name: "pronouns",
			build: func() Element {
				return en.Clause(
					en.Pronoun(PersonThird, NumberSingular, GenderFeminine),
					"greet",
					en.Pronoun(PersonThird, NumberPlural, GenderUnset),
				)
			},
			want: "She greets them.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RealiseSentence(tt.build())
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnglishNounPhrases(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	t.Run("adjective enumeration", func(t *testing.T) {
		np := en.NounPhrase("a", "stenosis")
		en.AddModifier(np, "eccentric")
		en.AddModifier(np, "discrete")
		if got, want := r.RealiseString(np), "an eccentric, discrete stenosis"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("coordination", func(t *testing.T) {
		c := en.Coordination("dog", "cat", "house")
		if got, want := r.RealiseString(c), "dog, cat and house"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		c.Features().Conjunction = "or"
		if got, want := r.RealiseString(c), "dog, cat or house"; got != want {
			t.Errorf("with or: got %q, want %q", got, want)
		}
	})

	t.Run("two coordinates", func(t *testing.T) {
		c := en.Coordination("the dog", "the cat")
		if got, want := r.RealiseString(c), "the dog and the cat"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("article before vowel", func(t *testing.T) {
		for noun, want := range map[string]string{
			"apple":      "an apple",
			"hour":       "an hour",
			"university": "a university",
			"book":       "a book",
		} {
			if got := r.RealiseString(en.NounPhrase("a", noun)); got != want {
				t.Errorf("%s: got %q, want %q", noun, got, want)
			}
		}
	})

	t.Run("irregular plural", func(t *testing.T) {
		np := en.NounPhrase("the", "stenosis")
		np.Features().Number = NumberPlural
		if got, want := r.RealiseString(np), "the stenoses"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestFrenchPhrases(t *testing.T) {
	r := newRealiser(t)
	fr := r.Factory(French)

	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"contraction", fr.PrepositionalPhrase("de", "le chien"), "du chien"},
		{"contraction with à", fr.PrepositionalPhrase("à", "le chien"), "au chien"},
		{"elision", fr.NounPhrase("le", "homme"), "l'homme"},
		{"elision blocks contraction", fr.PrepositionalPhrase("de", "le homme"), "de l'homme"},
		{"aspirated h", fr.NounPhrase("le", "héros"), "le héros"},
		{"feminine article", fr.NounPhrase("le", "femme"), "la femme"},
		{"demonstrative", fr.NounPhrase("ce", "chien"), "ce chien"},
		{"demonstrative liaison", fr.NounPhrase("ce", "homme"), "cet homme"},
		{"feminine demonstrative", fr.NounPhrase("ce", "femme"), "cette femme"},
		{"repeated de", fr.PrepositionalPhrase("de", fr.NounPhrase("de", "pain")), "de pain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RealiseString(tt.el); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrenchClauses(t *testing.T) {
	r := newRealiser(t)
	fr := r.Factory(French)

	tests := []struct {
		name  string
		build func() Element
		want  string
	}{
		{
			name: "negation with elision",
			build: func() Element {
				c := fr.Clause("le chien", "aimer", "la femme")
				c.Features().Set(FlagNegated, true)
				return c
			},
			want: "Le chien n'aime pas la femme.",
		},
		{
			name: "object clitic",
			build: func() Element {
				return fr.Clause("le chien", "regarder", fr.Pronoun(PersonThird, NumberSingular, GenderFeminine))
			},
			want: "Le chien la regarde.",
		},
		{
			name: "clitic with past participle agreement",
			build: func() Element {
				c := fr.Clause("le chien", "regarder", fr.Pronoun(PersonThird, NumberSingular, GenderFeminine))
				c.Features().Tense = TensePast
				return c
			},
			want: "Le chien l'a regardée.",
		},
		{
			name: "être auxiliary",
			build: func() Element {
				c := fr.Clause("la femme", "arriver", nil)
				c.Features().Tense = TensePast
				return c
			},
			want: "La femme est arrivée.",
		},
		{
			name: "pronoun word subject",
			build: func() Element {
				return fr.Clause(fr.NounPhrase(nil, fr.Word("nous", CatPronoun)), "partir", nil)
			},
			want: "Nous partons.",
		},
		{
			name: "coordinated pronouns take the dominant person",
			build: func() Element {
				c := fr.Clause(nil, "partir", nil)
				c.AddSubject(fr.Pronoun(PersonSecond, NumberSingular, GenderUnset))
				c.AddSubject(fr.Pronoun(PersonFirst, NumberSingular, GenderUnset))
				return c
			},
			want: "Toi et moi partons.",
		},
		{
			name: "si before il",
			build: func() Element {
				sub := fr.Clause(fr.Pronoun(PersonThird, NumberSingular, GenderMasculine), "dormir", nil)
				sub.Features().Complementiser = "si"
				c := fr.Clause("la femme", "demander", nil)
				fr.AddComplement(c, sub)
				return c
			},
			want: "La femme demande s'il dort.",
		},
		{
			name: "subjunctive keeps its complementiser",
			build: func() Element {
				sub := fr.Clause("le chien", "parler", nil)
				sub.Features().Form = FormSubjunctive
				sub.Features().Set(FlagSuppressedComplementiser, true)
				c := fr.Clause("la femme", "aimer", nil)
				fr.AddComplement(c, sub)
				return c
			},
			want: "La femme aime que le chien parle.",
		},
		{
			name: "front modifier",
			build: func() Element {
				c := fr.Clause("le chien", "dormir", nil)
				c.AddFrontModifier(fr.Word("hier", CatAdverb))
				return c
			},
			want: "Hier, le chien dort.",
		},
		{
			name: "cue phrase",
			build: func() Element {
				c := fr.Clause("le chien", "dormir", nil)
				c.SetCue(fr.Canned("cependant"))
				return c
			},
			want: "Cependant, le chien dort.",
		},
		{
			name: "adjacent adverbs",
			build: func() Element {
				c := fr.Clause("le chien", "dormir", nil)
				fr.AddModifier(c.VerbPhrase(), "souvent")
				fr.AddModifier(c.VerbPhrase(), "profondément")
				return c
			},
			want: "Le chien dort souvent, profondément.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RealiseSentence(tt.build()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrenchCoordinationGender(t *testing.T) {
	r := newRealiser(t)
	fr := r.Factory(French)

	attribute := func(subjects ...string) Element {
		c := fr.Clause(nil, "être", nil)
		for _, s := range subjects {
			c.AddSubject(fr.NounPhrase("le", s))
		}
		fr.AddComplement(c, fr.AdjectivePhrase("beau"))
		return c
	}

	tests := []struct {
		subjects []string
		want     string
	}{
		{[]string{"femme", "fleur"}, "La femme et la fleur sont belles."},
		{[]string{"chien", "femme"}, "Le chien et la femme sont beaux."},
		{[]string{"femme"}, "La femme est belle."},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.subjects, "+"), func(t *testing.T) {
			if got := r.RealiseSentence(attribute(tt.subjects...)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// describe renders the structure and features of a specification tree.
func describe(e Element) string {
	var b strings.Builder
	var walk func(e Element, depth int)
	walk = func(e Element, depth int) {
		if e == nil {
			return
		}
		fs := e.Features()
		fmt.Fprintf(&b, "%s%s fn=%s flags=%d num=%s tense=%s",
			strings.Repeat("  ", depth), e.Category(), fs.Function, fs.Flags, fs.Number, fs.Tense)
		switch el := e.(type) {
		case *Word:
			fmt.Fprintf(&b, " base=%s forms=%d\n", el.Base, len(el.Forms))
		case *Phrase:
			b.WriteString("\n")
			walk(el.Specifier, depth+1)
			for _, s := range el.Subjects {
				walk(s, depth+1)
			}
			walk(el.Head, depth+1)
			for _, group := range [][]Element{el.Premodifiers, el.Complements, el.Postmodifiers, el.FrontModifiers} {
				for _, c := range group {
					walk(c, depth+1)
				}
			}
		case *Coordination:
			b.WriteString("\n")
			for _, c := range el.Coordinates {
				walk(c, depth+1)
			}
		default:
			b.WriteString("\n")
		}
	}
	walk(e, 0)
	return b.String()
}

func TestRealiseLeavesInputUnchanged(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	c := en.Clause("the man", "greet", "the crowd")
	c.Features().Tense = TensePast
	c.Features().Set(FlagPassive|FlagNegated, true)
	np := en.NounPhrase("a", "stenosis")
	en.AddModifier(np, "eccentric")
	en.AddComplement(c, en.PrepositionalPhrase("with", np))

	before := describe(c)
	manBefore := describe(r.Lexicon(English).Lookup("man", CatNoun))

	first := r.RealiseSentence(c)
	second := r.RealiseSentence(c)
	if first != second {
		t.Errorf("realisations differ: %q then %q", first, second)
	}
	if after := describe(c); after != before {
		t.Errorf("tree changed by realisation:\nbefore:\n%s\nafter:\n%s", before, after)
	}
	if after := describe(r.Lexicon(English).Lookup("man", CatNoun)); after != manBefore {
		t.Errorf("lexicon entry changed:\nbefore: %s\nafter: %s", manBefore, after)
	}
	t.Logf("realised: %s", first)
}

func TestRealiseConcurrently(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)
	c := en.Clause("the man", "greet", "the crowd")
	want := r.RealiseSentence(c)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := r.RealiseSentence(c); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent realisation gave %q, want %q", got, want)
	}
}

func TestDocumentRendering(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	s1 := en.Sentence(en.Clause("the man", "greet", "the crowd"))
	s2 := en.Sentence(en.Canned("it rains"))
	doc := en.Document("Notes", en.Paragraph(s1, s2), en.List(en.Canned("one"), en.Canned("two")))

	want := "Notes\n\nThe man greets the crowd. It rains.\n\n* one\n* two"
	if got := r.RealiseString(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSentencePunctuation(t *testing.T) {
	r := newRealiser(t)
	tests := []struct {
		in, want string
	}{
		{"it rains", "It rains."},
		{"does it rain?", "Does it rain?"},
		{"élan vital", "Élan vital."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.RealiseSentence(NewText(tt.in, French)); got != tt.want {
			t.Errorf("RealiseSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConjugate(t *testing.T) {
	r := newRealiser(t)

	t.Run("english", func(t *testing.T) {
		table, err := r.Conjugate(NewWord("be", CatVerb, English))
		if err != nil {
			t.Fatalf("Conjugate: %v", err)
		}
		for key, want := range map[string]string{
			"present1s":       "am",
			"present3s":       "is",
			"past_participle": "been",
			"future3p":        "will be",
		} {
			if got := table.Forms(key); len(got) == 0 || got[0] != want {
				t.Errorf("%s = %v, want %q", key, got, want)
			}
		}
	})

	t.Run("french", func(t *testing.T) {
		table, err := r.Conjugate(NewWord("parler", CatVerb, French))
		if err != nil {
			t.Fatalf("Conjugate: %v", err)
		}
		if table.Model != "aimer" {
			t.Errorf("model = %q, want aimer", table.Model)
		}
		forms := table.ByKey()
		for key, want := range map[string]string{
			"present1s":          "parle",
			"present1p":          "parlons",
			"imperfect3p":        "parlaient",
			"future1s":           "parlerai",
			"subjunctive2p":      "parliez",
			"past_participle_fp": "parlées",
		} {
			if got := forms[key]; len(got) == 0 || got[0] != want {
				t.Errorf("%s = %v, want %q", key, got, want)
			}
		}
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := r.Conjugate(NewWord("sein", CatVerb, "de"))
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("err = %v, want ErrUnsupportedLanguage", err)
		}
	})
}

func TestNewRejectsUnknownDefaultLanguage(t *testing.T) {
	_, err := New(WithLanguage("tlh"))
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if got := reg.Languages(); len(got) != 2 || got[0] != English || got[1] != French {
		t.Errorf("Languages() = %v", got)
	}

	for tag, want := range map[string]Language{
		"en":    English,
		"en-GB": English,
		"fr":    French,
		"fr-CA": French,
	} {
		got, err := reg.Resolve(tag)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tag, err)
			continue
		}
		if got != want {
			t.Errorf("Resolve(%q) = %s, want %s", tag, got, want)
		}
	}
	if _, err := reg.Resolve("tlh"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("Resolve(tlh) err = %v, want ErrUnsupportedLanguage", err)
	}
	if _, err := reg.Resolve("not a tag!"); err == nil {
		t.Error("Resolve accepted a malformed tag")
	}

	if _, err := NewRegistry(&Grammar{Language: "xx", Syntax: englishSyntax{}}); !errors.Is(err, ErrIncompleteGrammar) {
		t.Errorf("incomplete grammar err = %v", err)
	}
	if _, err := NewRegistry(EnglishGrammar(), EnglishGrammar()); err == nil {
		t.Error("duplicate grammar accepted")
	}
}
