package nlg

// verbFlags are the clause features that configure the verb group.
const verbFlags = FlagNegated | FlagPassive | FlagPerfect | FlagProgressive | FlagAggregateAuxiliary

// verbFeatures merges the features of clause c into those of its verb
// phrase vp. Values set on the verb phrase win.
func verbFeatures(c, vp *Phrase) Features {
	fs := vp.Features().Clone()
	if c == nil || c == vp {
		return fs
	}
	cf := c.Features()
	fs.Flags |= cf.Flags & verbFlags
	if fs.Tense == TensePresent {
		fs.Tense = cf.Tense
	}
	if fs.Form == FormNormal {
		fs.Form = cf.Form
	}
	if fs.Modal == "" {
		fs.Modal = cf.Modal
	}
	if fs.Negation == "" {
		fs.Negation = cf.Negation
	}
	if fs.Particle == "" {
		fs.Particle = cf.Particle
	}
	fs.Interrogative = cf.Interrogative
	fs.Relative = cf.Relative
	return fs
}

// vpOptions carry the clause-level transformations into the verb phrase.
type vpOptions struct {
	// omit drops the complements with these functions (passive promotion,
	// interrogated or relativised slots).
	omit map[DiscourseFunction]bool
	// extra complements go after the verb phrase's own (passive agent).
	extra []Element
	// subject is the agreement of the clause subject.
	subject agreement
	// object is the agreement of a direct object preceding the verb
	// (relativised or cliticised), when there is one.
	object *agreement
	// invert detaches the finite verb for subject-auxiliary inversion.
	invert bool
	// premodifiers of the clause are realised with the verb phrase's own.
	premodifiers []Element
}

func (o vpOptions) omits(fn DiscourseFunction) bool {
	return o.omit[fn]
}

// complementSlots sorts the complements of a verb phrase by function.
type complementSlots struct {
	direct   []Element
	indirect []Element
	other    []Element
}

func splitComplements(comps []Element, o vpOptions) complementSlots {
	var cs complementSlots
	for _, c := range comps {
		if c == nil {
			continue
		}
		fn := c.Features().Function
		if o.omits(fn) {
			continue
		}
		switch fn {
		case FunctionObject:
			cs.direct = append(cs.direct, c)
		case FunctionIndirectObject:
			cs.indirect = append(cs.indirect, c)
		default:
			cs.other = append(cs.other, c)
		}
	}
	return cs
}

// mainVerb returns a fresh instance of the lexical verb heading vp.
func mainVerb(vp *Phrase) *InflectedWord {
	if vp == nil {
		return nil
	}
	iw := instance(vp.Head)
	if iw != nil {
		iw.Features().Function = FunctionHead
	}
	return iw
}

// auxiliary returns an instance of an auxiliary or modal verb.
func (s *syntaxer) auxiliary(base string, cat Category, lang Language) *InflectedWord {
	iw := s.word(base, cat, lang)
	iw.Features().Function = FunctionAuxiliary
	return iw
}

// setFinite gives the finite verb its tense, form and subject agreement.
func setFinite(v *InflectedWord, tense Tense, form Form, subject agreement) {
	fs := v.Features()
	fs.Tense = tense
	fs.Form = form
	fs.Person = subject.Person.Effective()
	fs.Number = subject.Number
	if fs.Number == NumberUnset || fs.Number == NumberBoth {
		fs.Number = NumberSingular
	}
}

// setNonFinite gives v a non-finite form.
func setNonFinite(v *InflectedWord, form Form) {
	fs := v.Features()
	fs.Form = form
	fs.Person = PersonUnset
}

// isCopular reports whether the verb phrase heads on a linking verb.
func isCopular(vp *Phrase) bool {
	if vp == nil {
		return false
	}
	w := headWord(vp.Head)
	return w != nil && w.Features().Has(FlagCopular)
}

// isAdjectival reports whether a complement is an adjective or an
// adjective phrase, and so agrees with what it predicates.
func isAdjectival(e Element) bool {
	switch e.Category() {
	case CatAdjective, CatAdjectivePhrase:
		return true
	case CatCoordination:
		if c, ok := e.(*Coordination); ok && len(c.Coordinates) > 0 {
			return isAdjectival(c.Coordinates[0])
		}
	}
	return false
}

// complementAgreement is the agreement an attribute complement takes: the
// subject's for linking verbs, otherwise the first direct object's.
func (s *syntaxer) complementAgreement(vp *Phrase, cs complementSlots, o vpOptions) agreement {
	if isCopular(vp) || len(cs.direct) == 0 {
		return o.subject
	}
	return s.agreementOfElement(cs.direct[0])
}

// realiseComplements realises the complements of vp in surface order.
// directFirst puts direct objects before indirect ones.
func (s *syntaxer) realiseComplements(vp *Phrase, cs complementSlots, o vpOptions, directFirst bool) []Element {
	attr := s.complementAgreement(vp, cs, o)
	var out []Element
	objects := func() {
		out = append(out, s.realiseAll(cs.direct, attr)...)
	}
	indirect := func() {
		out = append(out, s.realiseAll(cs.indirect, attr)...)
	}
	if directFirst {
		objects()
		indirect()
	} else {
		indirect()
		objects()
	}
	for _, c := range cs.other {
		ag := agreement{}
		if isAdjectival(c) {
			ag = attr
		}
		if r := s.realise(c, ag); r != nil {
			out = append(out, r)
		}
	}
	out = append(out, s.realiseAll(o.extra, agreement{})...)
	return out
}

// particle returns the particle of a phrasal verb ("up" in "give up").
func particle(fs *Features, lang Language) Element {
	if fs.Particle == "" {
		return nil
	}
	return text(fs.Particle, lang, FunctionComplement)
}
