package nlg

import "strings"

type frenchMorphology struct{}

func (frenchMorphology) inflect(m *morpher, w *InflectedWord) string {
	fs := w.Features()
	switch w.Category() {
	case CatNoun:
		return frenchNoun(w)
	case CatAdjective:
		return frenchAdjective(w)
	case CatVerb, CatModal:
		return m.frenchVerb(w)
	case CatDeterminer:
		return frenchDeterminer(w)
	case CatPronoun:
		if fs.Has(FlagPronominal) {
			return m.resolvePronoun(w)
		}
		return genderNumberForm(w)
	case CatAdverb:
		if f, ok := degreeForm(w); ok {
			return f
		}
	}
	return w.Base()
}

func (frenchMorphology) conjugate(m *morpher, w *Word) *InflectionTable {
	return newLemma(m.r.paradigms, w).table()
}

// frenchVerb reads the paradigm cell selected by the instance features. A
// form recorded on the instance for that cell wins.
func (m *morpher) frenchVerb(w *InflectedWord) string {
	n := cellFor(w.Features())
	if f, ok := w.Forms[cells[n].Key]; ok && f != "" {
		return firstForm(f)
	}
	return newLemma(m.r.paradigms, w.Word).form(n)
}

// frenchPlural applies the regular plural rules of nouns and adjectives.
func frenchPlural(s string) string {
	lower := strings.ToLower(s)
	switch {
	case hasAnySuffix(lower, "s", "x", "z"):
		return s
	case strings.HasSuffix(lower, "al"):
		return trimLast(s, 2) + "aux"
	case hasAnySuffix(lower, "au", "eu"):
		return s + "x"
	}
	return s + "s"
}

// frenchFeminine derives the feminine of an adjective or animate noun from
// its masculine ending.
func frenchFeminine(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "e"):
		return s
	case strings.HasSuffix(lower, "eau"):
		return trimLast(s, 3) + "elle"
	case strings.HasSuffix(lower, "teur"):
		return trimLast(s, 4) + "trice"
	case strings.HasSuffix(lower, "ieur"), lower == "meilleur":
		return s + "e"
	case strings.HasSuffix(lower, "eur"):
		return trimLast(s, 3) + "euse"
	case strings.HasSuffix(lower, "eux"):
		return trimLast(s, 1) + "se"
	case hasAnySuffix(lower, "el", "eil", "ul"):
		return s + "le"
	case hasAnySuffix(lower, "en", "on"):
		return s + "ne"
	case strings.HasSuffix(lower, "et"):
		return s + "te"
	case strings.HasSuffix(lower, "er"):
		return trimLast(s, 2) + "ère"
	case strings.HasSuffix(lower, "if"):
		return trimLast(s, 1) + "ve"
	case strings.HasSuffix(lower, "c"):
		return trimLast(s, 1) + "que"
	case strings.HasSuffix(lower, "g"):
		return s + "ue"
	case strings.HasSuffix(lower, "ou"):
		return trimLast(s, 1) + "lle"
	}
	return s + "e"
}

func frenchNoun(w *InflectedWord) string {
	fs := w.Features()
	s := w.Base()
	lexical := w.Word.Features().Gender
	switch {
	case fs.Gender == GenderFeminine && lexical == GenderMasculine:
		if f, ok := explicitForm(w, "feminine"); ok {
			s = f
		} else if !fs.Has(FlagProper) {
			s = frenchFeminine(s)
		}
	case fs.Gender == GenderMasculine && lexical == GenderFeminine:
		if f, ok := explicitForm(w, "masculine"); ok {
			s = f
		}
	}
	if !fs.Number.IsPlural() || fs.Has(FlagPluralOnly|FlagProper) {
		return s
	}
	if s == w.Base() {
		if f, ok := explicitForm(w, "plural"); ok {
			return f
		}
	}
	if fs.Has(FlagInvariant) {
		return s
	}
	return frenchPlural(s)
}

func frenchAdjective(w *InflectedWord) string {
	fs := w.Features()
	base := w.Base()
	lexicalBase := true
	if f, ok := degreeForm(w); ok {
		base, lexicalBase = f, false
	}
	feminine := fs.Gender == GenderFeminine
	plural := fs.Number.IsPlural()
	if fs.Has(FlagInvariant) {
		return base
	}
	s := base
	if feminine {
		if plural && lexicalBase {
			if f, ok := explicitForm(w, "feminine_plural"); ok {
				return f
			}
		}
		if f, ok := explicitForm(w, "feminine"); ok && lexicalBase {
			s = f
		} else {
			s = frenchFeminine(base)
		}
	}
	if plural {
		if !feminine && lexicalBase {
			if f, ok := explicitForm(w, "plural"); ok {
				return f
			}
		}
		return frenchPlural(s)
	}
	if !feminine && lexicalBase {
		if l, ok := explicitForm(w, "liaison"); ok {
			fs.Put(liaisonKey, l)
		}
	}
	return s
}

func frenchDeterminer(w *InflectedWord) string {
	fs := w.Features()
	s := genderNumberForm(w)
	if !fs.Number.IsPlural() {
		key := "liaison"
		if fs.Gender == GenderFeminine {
			key = "feminine_liaison"
		}
		if l, ok := explicitForm(w, key); ok {
			fs.Put(liaisonKey, l)
		}
	}
	if fs.Has(FlagBeforePremodified) {
		if f, ok := explicitForm(w, "before_premodified"); ok {
			return f
		}
		if s == "des" {
			return "de"
		}
	}
	return s
}
