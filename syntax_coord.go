package nlg

// conjunction returns the conjunction of c, defaulting to the addition
// conjunction of its language.
func (s *syntaxer) conjunction(c *Coordination) string {
	if conj := c.Features().Conjunction; conj != "" {
		return conj
	}
	return s.defaults(c.Language()).Conjunction
}

// coordinationAgreement derives the gender, number and person of a
// coordination from its coordinates. Features set on the coordination
// itself take precedence.
func (s *syntaxer) coordinationAgreement(c *Coordination) agreement {
	var ag agreement
	addition := s.conjunction(c) == s.defaults(c.Language()).Conjunction
	ag.Number = NumberSingular
	if addition && len(c.Coordinates) > 1 {
		ag.Number = NumberPlural
	}
	masculine, neuter := false, false
	allFeminine := len(c.Coordinates) > 0
	for _, co := range c.Coordinates {
		sub := s.agreementOfElement(co)
		if sub.Number.IsPlural() {
			ag.Number = NumberPlural
		}
		switch sub.Gender {
		case GenderMasculine:
			masculine = true
		case GenderNeuter:
			neuter = true
		}
		if sub.Gender != GenderFeminine {
			allFeminine = false
		}
		if sub.Person != PersonUnset && (ag.Person == PersonUnset || sub.Person.dominates(ag.Person)) {
			ag.Person = sub.Person
		}
	}
	switch {
	case masculine:
		ag.Gender = GenderMasculine
	case allFeminine:
		ag.Gender = GenderFeminine
	case neuter:
		ag.Gender = GenderNeuter
	}
	own := c.Features()
	if own.Number != NumberUnset {
		ag.Number = own.Number
	}
	if own.Gender != GenderUnset {
		ag.Gender = own.Gender
	}
	if own.Person != PersonUnset {
		ag.Person = own.Person
	}
	return ag
}

// conjunctionWord returns an instance of the conjunction conj.
func (s *syntaxer) conjunctionWord(conj string, lang Language) *InflectedWord {
	iw := s.word(conj, CatConjunction, lang)
	iw.Features().Function = FunctionConjunction
	return iw
}

// repeatsConjunction reports whether the conjunction of c goes before
// every coordinate ("ni ... ni ...") rather than the last one only.
func (s *syntaxer) repeatsConjunction(c *Coordination, conj string) bool {
	if c.Features().Has(FlagRepeated) {
		return true
	}
	return s.lexicon(c.Language()).Lookup(conj, CatConjunction).Features().Has(FlagRepeated)
}

// coordinate realises c. adjust, when set, rewrites each coordinate before
// it is realised.
func (s *syntaxer) coordinate(c *Coordination, ag agreement, adjust func(Element) Element) Element {
	lang := c.Language()
	out := newList(c)
	own := s.coordinationAgreement(c)
	own.apply(out.Features())
	conj := s.conjunction(c)
	repeated := s.repeatsConjunction(c, conj)
	fn := c.Features().Function
	raise := c.Features().Has(FlagRaiseSpecifier)

	for _, e := range s.realiseAll(c.Premodifiers, ag) {
		out.Add(e)
	}
	var coords []Element
	for i, co := range c.Coordinates {
		if co == nil {
			continue
		}
		co = co.shallowClone()
		if fn != FunctionNone && co.Features().Function == FunctionNone {
			co.Features().Function = fn
		}
		if raise && i > 0 {
			if p, ok := co.(*Phrase); ok {
				p.Specifier = nil
			}
		}
		if adjust != nil {
			co = adjust(co)
		}
		if r := s.realise(co, ag); r != nil && !isEmpty(r) {
			coords = append(coords, r)
		}
	}
	for i, r := range coords {
		if conj != "" && len(coords) > 1 && (repeated || i == len(coords)-1) {
			out.Add(s.conjunctionWord(conj, lang))
		}
		out.Add(r)
	}
	for _, e := range s.realiseAll(c.Complements, ag) {
		out.Add(e)
	}
	for _, e := range s.realiseAll(c.Postmodifiers, ag) {
		out.Add(e)
	}
	return out
}

// joinCoordinated builds a coordination list from realised items, with
// conj before the last one. An empty conj yields a plain enumeration.
func (s *syntaxer) joinCoordinated(from Element, items []Element, conj string) *List {
	out := &List{node: node{cat: CatCoordination, lang: from.Language()}}
	for i, item := range items {
		if conj != "" && len(items) > 1 && i == len(items)-1 {
			out.Add(s.conjunctionWord(conj, from.Language()))
		}
		out.Add(item)
	}
	return out
}
