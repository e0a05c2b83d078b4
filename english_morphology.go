package nlg

import (
	"strconv"
	"strings"
)

type englishMorphology struct{}

func (englishMorphology) inflect(m *morpher, w *InflectedWord) string {
	fs := w.Features()
	switch w.Category() {
	case CatNoun:
		return englishNoun(w)
	case CatVerb:
		return englishVerb(w)
	case CatModal:
		if fs.Tense == TensePast {
			if f, ok := explicitForm(w, "past"); ok {
				return f
			}
		}
		return w.Base()
	case CatAdjective, CatAdverb:
		if f, ok := degreeForm(w); ok {
			return f
		}
	case CatDeterminer:
		if fs.Number.IsPlural() {
			if f, ok := explicitForm(w, "plural"); ok {
				return f
			}
		}
	case CatPronoun:
		if fs.Has(FlagPronominal) {
			return m.resolvePronoun(w)
		}
	}
	return w.Base()
}

// conjugate fills the cells English verbs have: present and past by
// person, the analytic future and conditional, the non-finite forms.
func (englishMorphology) conjugate(_ *morpher, w *Word) *InflectionTable {
	t := &InflectionTable{Word: w, Cells: make(map[int][]string)}
	for n := 1; n < cellCount; n++ {
		c := cells[n]
		iw := Inflect(w)
		fs := iw.Features()
		fs.Tense, fs.Form, fs.Person, fs.Number, fs.Gender = c.Tense, c.Form, c.Person, c.Number, c.Gender
		switch c.Tense {
		case TenseImperfect:
			fs.Tense = TensePast
		case TenseFuture:
			t.Cells[n] = []string{"will " + w.Base}
			continue
		case TenseConditional:
			t.Cells[n] = []string{"would " + w.Base}
			continue
		}
		if c.Form == FormPastParticiple && n != cellPastPart {
			// English participles do not agree
			continue
		}
		t.Cells[n] = []string{englishVerb(iw)}
	}
	return t
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// consonantY reports whether s ends in a consonant followed by y.
func consonantY(s string) bool {
	runes := []rune(s)
	n := len(runes)
	return n > 1 && runes[n-1] == 'y' && isConsonant(runes[n-2])
}

func englishNoun(w *InflectedWord) string {
	fs := w.Features()
	s := w.Base()
	plural := fs.Number.IsPlural() && !fs.Has(FlagProper)
	if plural {
		if f, ok := explicitForm(w, "plural"); ok {
			s = f
		} else if !fs.Has(FlagInvariant) {
			s = englishPlural(s)
		}
	}
	if fs.Has(FlagPossessive) {
		if plural && strings.HasSuffix(s, "s") {
			return s + "'"
		}
		return s + "'s"
	}
	return s
}

// englishPlural applies the regular plural rules.
func englishPlural(s string) string {
	lower := strings.ToLower(s)
	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh"):
		return s + "es"
	case consonantY(lower):
		return trimLast(s, 1) + "ies"
	}
	return s + "s"
}

// englishThirdSingular adds the present -s: "watches", "carries", "greets".
func englishThirdSingular(s string) string {
	lower := strings.ToLower(s)
	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh", "o"):
		return s + "es"
	case consonantY(lower):
		return trimLast(s, 1) + "ies"
	}
	return s + "s"
}

// englishPast adds -ed: "loved", "carried", "stopped", "greeted".
func englishPast(s string, double bool) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "e"):
		return s + "d"
	case consonantY(lower):
		return trimLast(s, 1) + "ied"
	case double:
		return s + string(lastRune(s)) + "ed"
	}
	return s + "ed"
}

// englishPresentParticiple adds -ing: "lying", "loving", "stopping".
func englishPresentParticiple(s string, double bool) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ie"):
		return trimLast(s, 2) + "ying"
	case strings.HasSuffix(lower, "e") && !hasAnySuffix(lower, "ee", "ye", "oe") && len(lower) > 2:
		return trimLast(s, 1) + "ing"
	case double:
		return s + string(lastRune(s)) + "ing"
	}
	return s + "ing"
}

// personKey returns the person-number suffix of a form key: "3s", "1p".
func personKey(fs *Features) string {
	n := "s"
	if fs.Number.IsPlural() {
		n = "p"
	}
	return strconv.Itoa(fs.Person.index()+1) + n
}

func englishVerb(w *InflectedWord) string {
	fs := w.Features()
	base := w.Base()
	double := fs.Has(FlagDoubleConsonant)
	switch fs.Form {
	case FormInfinitive, FormBareInfinitive, FormImperative, FormSubjunctive:
		return base
	case FormPresentParticiple, FormGerund:
		if f, ok := explicitForm(w, "present_participle"); ok {
			return f
		}
		return englishPresentParticiple(base, double)
	case FormPastParticiple:
		if f, ok := explicitForm(w, "past_participle", "past"); ok {
			return f
		}
		return englishPast(base, double)
	}
	pk := personKey(fs)
	if fs.Tense == TensePast {
		if f, ok := explicitForm(w, "past"+pk, "past"); ok {
			return f
		}
		return englishPast(base, double)
	}
	if f, ok := explicitForm(w, "present"+pk); ok {
		return f
	}
	if pk == "3s" {
		return englishThirdSingular(base)
	}
	return base
}
