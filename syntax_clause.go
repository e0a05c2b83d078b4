package nlg

// subjectGroup views several subjects as one coordination without
// attaching them to it.
func subjectGroup(subjects []Element, lang Language) *Coordination {
	c := &Coordination{node: node{cat: CatCoordination, lang: lang}, Coordinates: subjects}
	c.feats.Function = FunctionSubject
	return c
}

// subjectAgreement is the agreement the verb takes from the subjects:
// plural for several subjects or a plural coordination, the dominant
// person, masculine unless every subject is feminine.
func (s *syntaxer) subjectAgreement(subjects []Element, lang Language) agreement {
	switch len(subjects) {
	case 0:
		return agreement{Person: PersonThird, Number: NumberSingular}
	case 1:
		ag := s.agreementOfElement(subjects[0])
		ag.Person = ag.Person.Effective()
		return ag
	}
	ag := s.coordinationAgreement(subjectGroup(subjects, lang))
	ag.Number = NumberPlural
	ag.Person = ag.Person.Effective()
	return ag
}

// realiseSubjects realises the subjects of a clause, coordinated with the
// addition conjunction when there are several.
func (s *syntaxer) realiseSubjects(subjects []Element, lang Language) Element {
	switch len(subjects) {
	case 0:
		return nil
	case 1:
		return s.realise(withFunction(subjects[0], FunctionSubject), agreement{})
	}
	return s.realise(subjectGroup(subjects, lang), agreement{})
}

// passive promotes the direct objects of vp to subjects of c and demotes
// the subjects into an agent phrase headed by the passive preposition.
// A clause without direct object keeps its subjects.
func (s *syntaxer) passive(c, vp *Phrase) (subjects []Element, agent Element, promoted bool) {
	objects := vp.complementsWith(FunctionObject)
	if len(objects) == 0 {
		return c.Subjects, nil, false
	}
	for _, o := range objects {
		subjects = append(subjects, withFunction(o, FunctionSubject))
	}
	if len(c.Subjects) == 0 {
		return subjects, nil, true
	}
	lang := c.Language()
	pp := NewPhrase(CatPrepositionalPhrase, lang)
	pp.feats.Function = FunctionComplement
	pp.Head = s.lexicon(lang).Lookup(s.defaults(lang).PassivePreposition, CatPreposition)
	if len(c.Subjects) == 1 {
		pp.Complements = []Element{withFunction(c.Subjects[0], FunctionComplement)}
	} else {
		agents := subjectGroup(c.Subjects, lang)
		agents.feats.Function = FunctionComplement
		pp.Complements = []Element{agents}
	}
	return subjects, pp, true
}

// isSubordinate reports whether clause c is embedded in another phrase.
func isSubordinate(c *Phrase) bool {
	fs := c.Features()
	if fs.Status == ClauseSubordinate {
		return true
	}
	switch fs.Function {
	case FunctionObject, FunctionComplement, FunctionIndirectObject, FunctionPostModifier:
		return true
	}
	return false
}

// complementiser returns the word introducing a subordinate clause, or nil.
// force inserts it even when the clause suppresses it.
func (s *syntaxer) complementiser(c *Phrase, force bool) Element {
	fs := c.Features()
	if !force && (!isSubordinate(c) || fs.Has(FlagSuppressedComplementiser)) {
		return nil
	}
	lang := c.Language()
	comp := fs.Complementiser
	if comp == "" {
		comp = s.defaults(lang).Complementiser
	}
	iw := s.word(comp, CatComplementiser, lang)
	iw.Features().Function = FunctionComplementiser
	return iw
}

// frontElements realises the cue phrase and front modifiers of c.
func (s *syntaxer) frontElements(c *Phrase) []Element {
	var out []Element
	if c.Cue != nil {
		out = append(out, s.realise(withFunction(c.Cue, FunctionCuePhrase), agreement{}))
	}
	for _, fm := range c.FrontModifiers {
		if r := s.realise(withFunction(fm, FunctionFrontModifier), agreement{}); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// dropsSubject reports whether a verb form is realised without subject.
func dropsSubject(form Form) bool {
	return form == FormImperative || form.IsNonFinite()
}

// howManySubjects rewrites the subjects of a "how many" question: plural
// heads without their determiner.
func howManySubjects(subjects []Element) []Element {
	out := make([]Element, 0, len(subjects))
	for _, sub := range subjects {
		if p, ok := sub.(*Phrase); ok && p.Category() == CatNounPhrase {
			q := p.shallowClone().(*Phrase)
			q.Specifier = nil
			q.feats.Number = NumberPlural
			out = append(out, q)
			continue
		}
		out = append(out, sub)
	}
	return out
}

// headedPhrase realises prepositional, adjective and adverb phrases:
// premodifiers, head, complements, postmodifiers. adjust, when set,
// rewrites each complement first.
func (s *syntaxer) headedPhrase(p *Phrase, ag agreement, adjust func(Element) Element) Element {
	out := newList(p)
	out.Add(s.realise(p.Specifier, ag))
	for _, e := range s.realiseAll(p.Premodifiers, agreement{}) {
		out.Add(e)
	}
	if iw := instance(p.Head); iw != nil {
		fs := iw.Features()
		fs.Function = FunctionHead
		if p.Category() == CatAdjectivePhrase || iw.Category() == CatAdjective {
			modifierAgreement(ag).apply(fs)
		}
		fs.Set(p.Features().Flags&(FlagComparative|FlagSuperlative), true)
		out.Add(iw)
	} else {
		out.Add(s.realise(p.Head, ag))
	}
	for _, c := range p.Complements {
		if adjust != nil {
			c = adjust(c)
		}
		out.Add(s.realise(c, ag))
	}
	for _, e := range s.realiseAll(p.Postmodifiers, ag) {
		out.Add(e)
	}
	return out
}
