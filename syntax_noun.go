package nlg

// npAgreement returns the agreement a noun phrase imposes on its
// specifier, modifiers and head: the phrase's own features, completed from
// the head instance and then the lexicon entry.
func npAgreement(np *Phrase) agreement {
	ag := agreementOf(np.Features())
	if np.Head != nil {
		hf := np.Head.Features()
		if ag.Number == NumberUnset {
			ag.Number = hf.Number
		}
		if ag.Gender == GenderUnset {
			ag.Gender = hf.Gender
		}
		if ag.Person == PersonUnset {
			ag.Person = hf.Person
		}
	}
	if w := headWord(np); w != nil {
		wf := w.Features()
		if ag.Gender == GenderUnset {
			ag.Gender = wf.Gender
		}
		if ag.Person == PersonUnset {
			ag.Person = wf.Person
		}
		if ag.Number == NumberUnset && wf.Has(FlagPluralOnly) {
			ag.Number = NumberPlural
		}
	}
	return ag
}

// agreementOfElement returns the agreement features a constituent passes
// to a verb or an attribute.
func (s *syntaxer) agreementOfElement(e Element) agreement {
	switch el := e.(type) {
	case nil:
		return agreement{}
	case *Coordination:
		return s.coordinationAgreement(el)
	case *Phrase:
		if el.Category() == CatNounPhrase {
			return npAgreement(el)
		}
	}
	ag := agreementOf(e.Features())
	if w := headWord(e); w != nil && ag.Gender == GenderUnset {
		ag.Gender = w.Features().Gender
	}
	return ag
}

// pronoun builds the pronoun standing for a pronominal noun phrase. The
// instance carries the full feature set and is resolved against the
// lexicon's pronoun entries by the morphology stage.
func (s *syntaxer) pronoun(np *Phrase, ag agreement, fn DiscourseFunction, flags Flag) *InflectedWord {
	var w *Word
	if hw := headWord(np); hw != nil && hw.Category() == CatPronoun {
		w = hw
	} else {
		base := ""
		if hw != nil {
			base = hw.Base
		}
		w = NewWord(base, CatPronoun, np.Language())
	}
	iw := Inflect(w)
	fs := iw.Features()
	fs.Person = ag.Person.Effective()
	fs.Number = ag.Number
	if fs.Number == NumberUnset {
		fs.Number = NumberSingular
	}
	fs.Gender = ag.Gender
	fs.Function = fn
	fs.Set(FlagPronominal, true)
	fs.Set(flags&pronounFlags, true)
	return iw
}

// specifier realises the determiner or possessor of np.
func (s *syntaxer) specifier(np *Phrase, ag agreement) Element {
	spec := np.Specifier
	if spec == nil {
		return nil
	}
	if iw := instance(spec); iw != nil {
		fs := iw.Features()
		fs.Function = FunctionSpecifier
		if ag.Number != NumberUnset {
			fs.Number = ag.Number
		}
		if ag.Gender != GenderUnset {
			fs.Gender = ag.Gender
		}
		return iw
	}
	if p, ok := spec.(*Phrase); ok && p.Category() == CatNounPhrase {
		// possessor: "the man's", "his"
		possessor := p.shallowClone()
		possessor.Features().Set(FlagPossessive, true)
		possessor.Features().Function = FunctionSpecifier
		return s.realise(possessor, agreement{})
	}
	return s.realise(spec, ag)
}

// nounHead realises the head of np with the phrase's agreement.
func (s *syntaxer) nounHead(np *Phrase, ag agreement) Element {
	iw := instance(np.Head)
	if iw == nil {
		return s.realise(np.Head, ag)
	}
	fs := iw.Features()
	fs.Function = FunctionHead
	ag.apply(fs)
	fs.Set(FlagPossessive, np.Features().Has(FlagPossessive))
	return iw
}

// nounComplements realises the complements of np, joined with the addition
// conjunction when there are several.
func (s *syntaxer) nounComplements(np *Phrase, ag agreement) Element {
	comps := s.realiseAll(np.Complements, ag)
	switch len(comps) {
	case 0:
		return nil
	case 1:
		return comps[0]
	}
	conj := s.defaults(np.Language()).Conjunction
	return s.joinCoordinated(np, comps, conj)
}

// modifierAgreement returns the agreement an adjective modifier takes from
// its noun phrase.
func modifierAgreement(ag agreement) agreement {
	return agreement{Gender: ag.Gender, Number: ag.Number}
}
