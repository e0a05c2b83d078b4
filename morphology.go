package nlg

import "strings"

// liaisonKey is the extension feature under which morphology records the
// prevocalic form of a word ("bel", "cet", "mon") for morphophonology.
const liaisonKey = "liaison"

// morpher runs the morphology stage: every word instance becomes a
// fragment holding its inflected form.
type morpher struct {
	r *Realiser
}

func (m *morpher) rules(lang Language) MorphologyRules {
	return m.r.grammarFor(lang).Morphology
}

// realise maps e onto a tree of the same shape with word instances
// replaced by fragments.
func (m *morpher) realise(e Element) Element {
	switch el := e.(type) {
	case nil:
		return nil
	case *InflectedWord:
		return m.inflect(el)
	case *Word:
		return m.inflect(Inflect(el))
	case *Text:
		return el.shallowClone()
	case *List:
		out := newList(el)
		for _, item := range el.Items {
			out.Add(m.realise(item))
		}
		return out
	case *Document:
		out := &Document{node: el.cloneNode(), Title: el.Title}
		for _, c := range el.Components {
			if r := m.realise(c); r != nil {
				out.Components = append(out.Components, r)
			}
		}
		return out
	}
	return nil
}

// inflect resolves the surface form of w. Words marked non-morph keep
// their base form.
func (m *morpher) inflect(w *InflectedWord) *Text {
	if w.Word == nil {
		return newFragment("", w)
	}
	var s string
	if w.Features().Has(FlagNonMorph) {
		s = w.Base()
	} else {
		s = m.rules(w.Language()).inflect(m, w)
	}
	return newFragment(s, w)
}

// conjugate returns the full paradigm of a verb in its language.
func (m *morpher) conjugate(w *Word) *InflectionTable {
	return m.rules(w.Language()).conjugate(m, w)
}

// firstForm returns the preferred alternative of a comma-separated form.
func firstForm(f string) string {
	f = strings.TrimPrefix(f, "+")
	if i := strings.IndexByte(f, ','); i >= 0 {
		f = f[:i]
	}
	return strings.TrimSpace(f)
}

// explicitForm returns the first form recorded under any of keys, instance
// overrides before lexical forms.
func explicitForm(w *InflectedWord, keys ...string) (string, bool) {
	for _, k := range keys {
		if f, ok := w.form(k); ok {
			return firstForm(f), true
		}
	}
	return "", false
}

// resolvePronoun finds the lexicon pronoun matching the features of w,
// relaxing gender, then function, then the clitic constraint when nothing
// matches.
func (m *morpher) resolvePronoun(w *InflectedWord) string {
	// en and y stand for no person: their form never varies
	if lw := w.Word; lw != nil && lw.Base != "" {
		if lf := lw.Features(); lf.Person == PersonUnset && lf.Has(FlagClitic) {
			return lw.Base
		}
	}
	fs := w.Features()
	lex := m.r.Lexicon(w.Language())
	q := WordQuery{
		Person:   fs.Person.Effective(),
		Number:   fs.Number,
		Gender:   fs.Gender,
		Function: fs.Function,
		Flags:    fs.Flags & (pronounFlags | FlagClitic),
	}
	switch q.Function {
	case FunctionSubject, FunctionObject, FunctionIndirectObject:
	default:
		q.Function = FunctionNone
	}
	relax := []func(*WordQuery){
		func(*WordQuery) {},
		func(q *WordQuery) { q.Gender = GenderUnset },
		func(q *WordQuery) { q.Function = FunctionNone },
		func(q *WordQuery) { q.Flags &^= FlagClitic },
	}
	for _, r := range relax {
		r(&q)
		// entries without person are relative or adverbial pronouns
		if e, ok := lex.LookupByFeatures(CatPronoun, q); ok && e.Features().Person != PersonUnset {
			return e.Base
		}
	}
	return w.Base()
}

// genderNumberForm picks the lexical form of w for its gender and number:
// "laquelle", "lesquels", "quelles".
func genderNumberForm(w *InflectedWord) string {
	fs := w.Features()
	feminine := fs.Gender == GenderFeminine
	switch {
	case fs.Number.IsPlural() && feminine:
		if f, ok := explicitForm(w, "feminine_plural"); ok {
			return f
		}
		if f, ok := explicitForm(w, "plural"); ok {
			return f
		}
	case fs.Number.IsPlural():
		if f, ok := explicitForm(w, "plural"); ok {
			return f
		}
	case feminine:
		if f, ok := explicitForm(w, "feminine"); ok {
			return f
		}
	}
	return w.Base()
}

// degreeForm returns the comparative or superlative form of an adjective
// or adverb when the lexicon records one.
func degreeForm(w *InflectedWord) (string, bool) {
	fs := w.Features()
	switch {
	case fs.Has(FlagSuperlative):
		return explicitForm(w, "superlative")
	case fs.Has(FlagComparative):
		return explicitForm(w, "comparative")
	}
	return "", false
}
