package nlg

// syntaxer runs the syntax stage. It turns a specification tree into
// nested lists of word instances and fragments, in surface order.
type syntaxer struct {
	r *Realiser
}

// rules returns the syntax rules for the language of e.
func (s *syntaxer) rules(e Element) SyntaxRules {
	return s.r.grammarFor(e.Language()).Syntax
}

func (s *syntaxer) lexicon(lang Language) Lexicon {
	return s.r.Lexicon(lang)
}

func (s *syntaxer) defaults(lang Language) LanguageDefaults {
	return s.r.Defaults(lang)
}

// realise dispatches e on its kind and category. The result is a new tree;
// e is never modified.
func (s *syntaxer) realise(e Element, ag agreement) Element {
	switch el := e.(type) {
	case nil:
		return nil
	case *Word:
		return agreeing(Inflect(el), ag)
	case *InflectedWord:
		return agreeing(el.shallowClone().(*InflectedWord), ag)
	case *Text:
		return el.shallowClone()
	case *Phrase:
		rules := s.rules(el)
		switch el.Category() {
		case CatNounPhrase:
			return rules.nounPhrase(s, el, ag)
		case CatVerbPhrase:
			return rules.verbPhrase(s, el, ag)
		case CatClause:
			return rules.clause(s, el, ag)
		default:
			return rules.phrase(s, el, ag)
		}
	case *Coordination:
		return s.rules(el).coordination(s, el, ag)
	case *List:
		out := newList(el)
		for _, item := range el.Items {
			out.Add(s.realise(item, ag))
		}
		return out
	case *Document:
		out := &Document{node: el.cloneNode(), Title: el.Title}
		for _, c := range el.Components {
			if r := s.realise(c, agreement{}); r != nil {
				out.Components = append(out.Components, r)
			}
		}
		return out
	}
	return nil
}

// agreeing gives an adjective instance the gender and number of ag.
func agreeing(iw *InflectedWord, ag agreement) *InflectedWord {
	if iw.Category() == CatAdjective {
		modifierAgreement(ag).apply(iw.Features())
	}
	return iw
}

// realiseAll realises es in order, dropping nil results.
func (s *syntaxer) realiseAll(es []Element, ag agreement) []Element {
	var out []Element
	for _, e := range es {
		if r := s.realise(e, ag); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// word returns a fresh instance of the lexicon entry for base.
func (s *syntaxer) word(base string, cat Category, lang Language) *InflectedWord {
	return Inflect(s.lexicon(lang).Lookup(base, cat))
}

// text returns a canned fragment tagged with function fn.
func text(value string, lang Language, fn DiscourseFunction) *Text {
	t := NewText(value, lang)
	t.Features().Function = fn
	return t
}

// instance returns a copy of a lexical element as a word instance, or nil
// for phrases.
func instance(e Element) *InflectedWord {
	switch el := e.(type) {
	case *Word:
		return Inflect(el)
	case *InflectedWord:
		return el.shallowClone().(*InflectedWord)
	}
	return nil
}

// withFunction returns a shallow copy of e with its discourse function set.
func withFunction(e Element, fn DiscourseFunction) Element {
	if e == nil {
		return nil
	}
	c := e.shallowClone()
	c.Features().Function = fn
	return c
}

// withFlag returns a shallow copy of e with flag f set.
func withFlag(e Element, f Flag) Element {
	if e == nil {
		return nil
	}
	c := e.shallowClone()
	c.Features().Set(f, true)
	return c
}

// list wraps items into a list node that records from's category.
func list(from Element, items ...Element) *List {
	l := newList(from)
	for _, item := range items {
		l.Add(item)
	}
	return l
}
