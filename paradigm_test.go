package nlg

import (
	"slices"
	"testing"
)

func TestListI(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"1", []int{1}},
		{"1-3", []int{1, 2, 3}},
		{"1-3,7", []int{1, 2, 3, 7}},
		{"36, 38-39", []int{36, 38, 39}},
	}
	for _, tt := range tests {
		if got := ListI(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ListI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCells(t *testing.T) {
	cs := Cells()
	if len(cs) != cellCount {
		t.Fatalf("len(Cells()) = %d, want %d", len(cs), cellCount)
	}
	for n, want := range map[int]string{
		1:  "present1s",
		6:  "present3p",
		10: "imperfect1p",
		13: "future1s",
		31: "imperative2s",
		34: "infinitive",
		39: "past_participle_fp",
	} {
		if cs[n].Key != want {
			t.Errorf("cell %d = %q, want %q", n, cs[n].Key, want)
		}
	}
	cs[1].Key = "changed"
	if Cells()[1].Key != "present1s" {
		t.Error("Cells returned the shared layout")
	}
}

func TestCellFor(t *testing.T) {
	tests := []struct {
		name string
		fs   Features
		want string
	}{
		{"present", Features{Person: PersonThird, Number: NumberPlural}, "present3p"},
		{"past reads imperfect", Features{Tense: TensePast, Person: PersonFirst, Number: NumberSingular}, "imperfect1s"},
		{"conditional", Features{Tense: TenseConditional, Person: PersonSecond, Number: NumberPlural}, "conditional2p"},
		{"subjunctive", Features{Form: FormSubjunctive, Person: PersonThird, Number: NumberSingular}, "subjunctive3s"},
		{"imperative", Features{Form: FormImperative, Person: PersonFirst, Number: NumberPlural}, "imperative1p"},
		{"third person imperative", Features{Form: FormImperative, Person: PersonThird, Number: NumberSingular}, "subjunctive3s"},
		{"participle", Features{Form: FormPastParticiple, Gender: GenderFeminine, Number: NumberPlural}, "past_participle_fp"},
		{"infinitive", Features{Form: FormBareInfinitive}, "infinitive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cells[cellFor(&tt.fs)].Key; got != tt.want {
				t.Errorf("cellFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrenchParadigmModels(t *testing.T) {
	p, err := FrenchParadigms()
	if err != nil {
		t.Fatalf("FrenchParadigms: %v", err)
	}
	for _, name := range []string{"aimer", "finir", "partir", "vendre", "voir"} {
		if p.Model(name) == nil {
			t.Errorf("model %q missing", name)
		}
	}
	if !p.Model("partir").IsA("finir") {
		t.Error("partir should inherit from finir")
	}
	if got := p.Label(1); got == "" {
		t.Error("cell 1 has no label")
	} else {
		t.Logf("cell 1: %s", got)
	}

	for base, want := range map[string]string{
		"parler":   "aimer",
		"finir":    "finir",
		"dormir":   "partir",
		"attendre": "vendre",
	} {
		m := p.ModelFor(NewWord(base, CatVerb, French))
		if m == nil || m.Name != want {
			t.Errorf("ModelFor(%s) = %v, want %s", base, m, want)
		}
	}
}

func TestFrenchSpellingRepairs(t *testing.T) {
	r := newRealiser(t)
	lex := r.Lexicon(French)

	tests := []struct {
		verb string
		cell string
		want string
	}{
		{"manger", "present1p", "mangeons"},
		{"manger", "imperfect1s", "mangeais"},
		{"commencer", "present1p", "commençons"},
		{"appeler", "present1s", "appelle"},
		{"appeler", "present1p", "appelons"},
		{"appeler", "future1s", "appellerai"},
		{"jeter", "present3p", "jettent"},
		{"acheter", "present1s", "achète"},
		{"acheter", "future3s", "achètera"},
		{"céder", "present3s", "cède"},
		{"céder", "present1p", "cédons"},
		{"nettoyer", "present1s", "nettoie"},
		{"nettoyer", "future1s", "nettoierai"},
	}
	for _, tt := range tests {
		t.Run(tt.verb+"/"+tt.cell, func(t *testing.T) {
			table, err := r.Conjugate(lex.Lookup(tt.verb, CatVerb))
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			if got := table.Forms(tt.cell); len(got) == 0 || got[0] != tt.want {
				t.Errorf("got %v, want %q", got, tt.want)
			}
		})
	}
}

func TestIrregularVerbs(t *testing.T) {
	r := newRealiser(t)
	lex := r.Lexicon(French)

	tests := []struct {
		verb string
		cell string
		want []string
	}{
		{"être", "present1p", []string{"sommes"}},
		{"être", "imperfect1s", []string{"étais"}},
		{"être", "future3s", []string{"sera"}},
		{"avoir", "past_participle", []string{"eu"}},
		{"aller", "future1s", []string{"irai"}},
		{"pouvoir", "present1s", []string{"peux", "puis"}},
	}
	for _, tt := range tests {
		t.Run(tt.verb+"/"+tt.cell, func(t *testing.T) {
			table, err := r.Conjugate(lex.Lookup(tt.verb, CatVerb))
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			if got := table.Forms(tt.cell); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// Every form a regular verb's table generates analyses back to the verb
// and the cell it came from.
func TestConjugationRoundTrip(t *testing.T) {
	r := newRealiser(t)
	lex, err := DefaultLexicon(French)
	if err != nil {
		t.Fatalf("DefaultLexicon: %v", err)
	}

	verbs := 0
	for _, w := range lex.Words() {
		if w.Category() != CatVerb {
			continue
		}
		verbs++
		verb := w.Base
		t.Run(verb, func(t *testing.T) {
			table, err := r.Conjugate(w)
			if err != nil {
				t.Fatalf("Conjugate: %v", err)
			}
			if len(table.Cells) == 0 {
				t.Fatal("empty table")
			}
			for n, forms := range table.Cells {
				for _, form := range forms {
					found := false
					for _, a := range lex.Analyse(form) {
						if a.Lemma.Key == NormalizeKey(verb) && a.Cell == n {
							found = true
							break
						}
					}
					if !found {
						t.Errorf("%s (cell %d, %s) does not analyse back", form, n, cells[n].Key)
					}
				}
			}
		})
	}
	t.Logf("%d verbs", verbs)
}

func TestAnalyse(t *testing.T) {
	p, err := FrenchParadigms()
	if err != nil {
		t.Fatalf("FrenchParadigms: %v", err)
	}
	a := NewAnalyser(p, []*Word{
		NewWord("parler", CatVerb, French),
		NewWord("finir", CatVerb, French),
	})

	t.Run("ambiguous form", func(t *testing.T) {
		var got []string
		for _, an := range a.Analyse("parle") {
			got = append(got, cells[an.Cell].Key)
		}
		for _, want := range []string{"present1s", "present3s", "subjunctive1s", "imperative2s"} {
			if !slices.Contains(got, want) {
				t.Errorf("parle: missing %s in %v", want, got)
			}
		}
	})

	t.Run("lemmatize", func(t *testing.T) {
		ls := a.Lemmatize("finissons")
		if len(ls) != 1 || ls[0].Key != "finir" {
			t.Errorf("Lemmatize(finissons) = %v", ls)
		}
		if a.Lemma("parler") == nil {
			t.Error("Lemma(parler) is nil")
		}
	})

	t.Run("unknown form", func(t *testing.T) {
		if got := a.Analyse("zorglub"); len(got) != 0 {
			t.Errorf("Analyse(zorglub) = %v", got)
		}
	})
}

// Every verb of the built-in lexicons gives a non-empty form for every
// finite tense, person and number, and for the subjunctive.
func TestEveryVerbInflects(t *testing.T) {
	r := newRealiser(t)
	m := &morpher{r: r}

	type slot struct {
		tense Tense
		form  Form
	}
	slots := []slot{
		{TensePresent, FormNormal},
		{TensePast, FormNormal},
		{TenseImperfect, FormNormal},
		{TenseFuture, FormNormal},
		{TenseConditional, FormNormal},
		{TensePresent, FormSubjunctive},
	}
	for _, lang := range []Language{English, French} {
		lex, err := DefaultLexicon(lang)
		if err != nil {
			t.Fatalf("DefaultLexicon(%s): %v", lang, err)
		}
		verbs := 0
		for _, w := range lex.Words() {
			if w.Category() != CatVerb {
				continue
			}
			verbs++
			for _, sl := range slots {
				for _, p := range []Person{PersonFirst, PersonSecond, PersonThird} {
					for _, n := range []Number{NumberSingular, NumberPlural} {
						iw := Inflect(w)
						fs := iw.Features()
						fs.Tense, fs.Form, fs.Person, fs.Number = sl.tense, sl.form, p, n
						if got := m.inflect(iw).Value; got == "" {
							t.Errorf("%s %s %s %s/%s: empty form", w.Base, sl.tense, sl.form, p, n)
						}
					}
				}
			}
		}
		t.Logf("%s: %d verbs", lang, verbs)
	}
}
