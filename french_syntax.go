package nlg

import (
	"cmp"
	"slices"
)

type frenchSyntax struct{}

// frenchPossessives are the possessive determiners by number and person.
var frenchPossessives = [2][3]string{
	{"mon", "ton", "son"},
	{"notre", "votre", "leur"},
}

// isPronominal reports whether e is a noun phrase standing for a pronoun.
func isPronominal(e Element) bool {
	p, ok := e.(*Phrase)
	return ok && p.Category() == CatNounPhrase && p.Features().Has(FlagPronominal)
}

// detachPronoun marks pronouns that cannot be clitics (after a
// preposition, in a coordination) as detached: "avec lui", "toi et moi".
func detachPronoun(e Element) Element {
	switch el := e.(type) {
	case *Phrase:
		if isPronominal(el) && !el.Features().Has(FlagPossessive) {
			return withFlag(el, FlagDetached)
		}
	case *Coordination:
		c := el.shallowClone().(*Coordination)
		for i, co := range c.Coordinates {
			c.Coordinates[i] = detachPronoun(co)
		}
		return c
	}
	return e
}

func (frenchSyntax) nounPhrase(s *syntaxer, np *Phrase, _ agreement) Element {
	ag := npAgreement(np)
	fs := np.Features()
	if fs.Has(FlagPronominal) {
		flags := fs.Flags
		switch fs.Function {
		case FunctionSubject, FunctionObject, FunctionIndirectObject:
		default:
			if flags&(FlagPossessive|FlagReflexive) == 0 {
				flags |= FlagDetached
			}
		}
		return s.pronoun(np, ag, fs.Function, flags)
	}
	if isPronominal(np.Specifier) {
		// possessor pronoun: "son chien", "leur maison"
		owner := npAgreement(np.Specifier.(*Phrase))
		row := 0
		if owner.Number.IsPlural() {
			row = 1
		}
		q := np.shallowClone().(*Phrase)
		q.Specifier = s.lexicon(French).Lookup(frenchPossessives[row][owner.Person.index()], CatDeterminer)
		np = q
	}
	out := newList(np)
	spec := s.specifier(np, ag)
	premods := s.realiseAll(np.Premodifiers, modifierAgreement(ag))
	if iw, ok := spec.(*InflectedWord); ok && slices.ContainsFunc(np.Premodifiers, isAdjectiveModifier) {
		iw.Features().Set(FlagBeforePremodified, true)
	}
	out.Add(spec)
	for _, pm := range premods {
		out.Add(pm)
	}
	out.Add(s.nounHead(np, ag))
	out.Add(s.nounComplements(np, ag))
	for _, pm := range np.Postmodifiers {
		mod := modifierAgreement(ag)
		if pm.Category() == CatClause {
			mod = ag
		}
		out.Add(s.realise(pm, mod))
	}
	return out
}

// clitic ranks before the verb: me/te/se/nous/vous < le/la/les <
// lui/leur < y < en.
func cliticRank(w *InflectedWord) int {
	switch baseOf(w) {
	case "y":
		return 4
	case "en":
		return 5
	}
	fs := w.Features()
	switch {
	case fs.Has(FlagReflexive), fs.Person.Effective() != PersonThird:
		return 1
	case fs.Function == FunctionIndirectObject:
		return 3
	}
	return 2
}

// encliticRank orders clitics after an affirmative imperative:
// "donne-le-moi", "parle-lui-en".
func encliticRank(w *InflectedWord) int {
	switch baseOf(w) {
	case "y":
		return 3
	case "en":
		return 4
	}
	fs := w.Features()
	if fs.Function == FunctionObject && fs.Person.Effective() == PersonThird && !fs.Has(FlagReflexive) {
		return 1
	}
	return 2
}

// cliticise turns pronominal objects into clitic pronouns. It returns the
// clitics, the remaining complements, and the agreement of a direct object
// clitic for participle agreement.
func (frenchSyntax) cliticise(s *syntaxer, cs complementSlots) ([]*InflectedWord, complementSlots, *agreement) {
	var clitics []*InflectedWord
	var object *agreement
	rest := complementSlots{other: cs.other}
	for _, d := range cs.direct {
		if !isPronominal(d) {
			rest.direct = append(rest.direct, d)
			continue
		}
		np := d.(*Phrase)
		ag := npAgreement(np)
		p := s.pronoun(np, ag, FunctionObject, np.Features().Flags&FlagReflexive)
		p.Features().Set(FlagClitic, true)
		clitics = append(clitics, p)
		if object == nil {
			object = &ag
		}
	}
	for _, d := range cs.indirect {
		if !isPronominal(d) {
			rest.indirect = append(rest.indirect, d)
			continue
		}
		np := d.(*Phrase)
		p := s.pronoun(np, npAgreement(np), FunctionIndirectObject, np.Features().Flags&FlagReflexive)
		p.Features().Set(FlagClitic, true)
		clitics = append(clitics, p)
	}
	return clitics, rest, object
}

// participle puts v in the past participle agreeing with ag.
func participle(v *InflectedWord, ag agreement) {
	setNonFinite(v, FormPastParticiple)
	fs := v.Features()
	fs.Gender = ag.Gender
	fs.Number = ag.Number
	if fs.Number == NumberBoth {
		fs.Number = NumberPlural
	}
}

func (f frenchSyntax) verbPhrase(s *syntaxer, vp *Phrase, ag agreement) Element {
	fs := vp.Features().Clone()
	return f.realiseVerbPhrase(s, vp, &fs, vpOptions{subject: ag})
}

// realiseVerbPhrase builds the verb group (passive être, progressive
// "être en train de", modal, compound auxiliary), places clitics and the
// negation around it and appends the complements.
func (f frenchSyntax) realiseVerbPhrase(s *syntaxer, vp *Phrase, fs *Features, o vpOptions) *List {
	lang := vp.Language()
	out := newList(vp)
	premods := s.realiseAll(append(slices.Clone(o.premodifiers), vp.Premodifiers...), agreement{})
	cs := splitComplements(vp.Complements, o)
	clitics, cs, cliticObject := f.cliticise(s, cs)
	if o.object == nil {
		o.object = cliticObject
	}
	main := mainVerb(vp)
	if main == nil {
		for _, pm := range premods {
			out.Add(pm)
		}
		for _, c := range s.realiseComplements(vp, cs, o, true) {
			out.Add(c)
		}
		return out
	}

	reflexive := fs.Has(FlagReflexive) || main.Features().Has(FlagReflexiveVerb)
	if reflexive {
		se := Inflect(NewWord("se", CatPronoun, lang))
		sf := se.Features()
		sf.Person, sf.Number = o.subject.Person.Effective(), o.subject.Number
		sf.Function = FunctionObject
		sf.Set(FlagPronominal|FlagReflexive|FlagClitic, true)
		clitics = append(clitics, se)
	}

	tense, form := fs.Tense, fs.Form
	passive := fs.Has(FlagPassive)
	perfect := fs.Has(FlagPerfect)
	progressive := fs.Has(FlagProgressive)
	if progressive && !perfect && (tense == TensePast || tense == TenseImperfect) {
		tense, progressive = TenseImperfect, false
	}
	compound := false
	switch {
	case tense == TensePast && perfect:
		compound, tense = true, TenseImperfect
	case tense == TensePast:
		compound, tense = true, TensePresent
	case perfect:
		compound = true
	}

	// host is the verb the clitics precede: the finite verb, or the
	// infinitive under a modal or "en train de".
	stack := []*InflectedWord{main}
	front, host := main, main
	pinned := false
	var marker *InflectedWord
	push := func(base string, cat Category) {
		aux := s.auxiliary(base, cat, lang)
		stack = append([]*InflectedWord{aux}, stack...)
		front = aux
		if !pinned {
			host = aux
		}
	}
	if passive {
		participle(front, o.subject)
		push("être", CatVerb)
	}
	if progressive {
		setNonFinite(front, FormInfinitive)
		host, marker, pinned = front, front, true
		push("être", CatVerb)
	}
	if fs.Modal != "" {
		setNonFinite(front, FormInfinitive)
		if !pinned {
			host, pinned = front, true
		}
		push(fs.Modal, CatVerb)
	}
	if compound {
		aux := "avoir"
		if front == main && !passive && (main.Word.Features().Has(FlagEtreAuxiliary) || reflexive) {
			aux = "être"
		}
		switch {
		case aux == "être":
			participle(front, o.subject)
		case o.object != nil:
			participle(front, *o.object)
		default:
			participle(front, agreement{})
		}
		push(aux, CatVerb)
	}
	switch {
	case form == FormImperative:
		ag := o.subject
		if ag.Person == PersonUnset || ag.Person == PersonThird {
			ag.Person = PersonSecond
		}
		setFinite(front, TensePresent, FormImperative, ag)
	case form.IsNonFinite():
		setNonFinite(front, form)
	default:
		setFinite(front, tense, form, o.subject)
	}

	negated := fs.Has(FlagNegated)
	enclitic := form == FormImperative && !negated
	if enclitic {
		slices.SortStableFunc(clitics, func(a, b *InflectedWord) int { return cmp.Compare(encliticRank(a), encliticRank(b)) })
		for _, c := range clitics {
			cf := c.Features()
			cf.Set(FlagEnclitic, true)
			if cf.Person.Effective() != PersonThird && !cf.Number.IsPlural() {
				cf.Set(FlagDetached, true)
				cf.Set(FlagReflexive|FlagClitic, false)
				cf.Function = FunctionNone
			}
		}
	} else {
		slices.SortStableFunc(clitics, func(a, b *InflectedWord) int { return cmp.Compare(cliticRank(a), cliticRank(b)) })
	}
	var ne, pas Element
	if negated {
		ne = s.word("ne", CatAdverb, lang)
		neg := fs.Negation
		if neg == "" {
			neg = "pas"
		}
		pas = s.word(neg, CatAdverb, lang)
	}
	nonFinite := form.IsNonFinite()
	if negated && nonFinite {
		out.Add(ne)
		out.Add(pas)
	}
	for i, v := range stack {
		if v == marker {
			out.Add(text("en train de", lang, FunctionAuxiliary))
		}
		if i == 0 && negated && !nonFinite {
			out.Add(ne)
		}
		if v == host && !enclitic {
			for _, c := range clitics {
				out.Add(c)
			}
		}
		out.Add(v)
		if i == 0 {
			if enclitic {
				for _, c := range clitics {
					out.Add(c)
				}
			}
			if negated && !nonFinite {
				out.Add(pas)
			}
			for _, pm := range premods {
				out.Add(pm)
			}
		}
	}
	for _, c := range s.realiseComplements(vp, cs, o, true) {
		out.Add(c)
	}
	for _, pm := range s.realiseAll(vp.Postmodifiers, agreement{}) {
		out.Add(pm)
	}
	return out
}

// frenchQuestion returns the interrogative words opening a question in
// the "est-ce que" pattern and the complement slot they stand for.
func frenchQuestion(it InterrogativeType) (words []string, omit DiscourseFunction) {
	switch it {
	case InterrogativeYesNo:
		return []string{"est-ce", "que"}, FunctionNone
	case InterrogativeWhoSubject:
		return []string{"qui", "est-ce", "qui"}, FunctionSubject
	case InterrogativeWhatSubject:
		return []string{"que", "est-ce", "qui"}, FunctionSubject
	case InterrogativeWhoObject:
		return []string{"qui", "est-ce", "que"}, FunctionObject
	case InterrogativeWhatObject:
		return []string{"que", "est-ce", "que"}, FunctionObject
	case InterrogativeWhoIndirectObject:
		return []string{"à", "qui", "est-ce", "que"}, FunctionIndirectObject
	case InterrogativeHow:
		return []string{"comment", "est-ce", "que"}, FunctionNone
	case InterrogativeWhy:
		return []string{"pourquoi", "est-ce", "que"}, FunctionNone
	case InterrogativeWhere:
		return []string{"où", "est-ce", "que"}, FunctionNone
	case InterrogativeHowMany:
		return []string{"combien", "de"}, FunctionNone
	}
	return nil, FunctionNone
}

func (f frenchSyntax) clause(s *syntaxer, c *Phrase, ag agreement) Element {
	lang := c.Language()
	fs := c.Features()
	out := newList(c)
	for _, fe := range s.frontElements(c) {
		out.Add(fe)
	}
	vp := c.VerbPhrase()
	if vp == nil {
		out.Add(s.realiseSubjects(c.Subjects, lang))
		for _, pm := range s.realiseAll(c.Postmodifiers, agreement{}) {
			out.Add(pm)
		}
		return out
	}
	vf := verbFeatures(c, vp)
	o := vpOptions{omit: map[DiscourseFunction]bool{}, premodifiers: c.Premodifiers}
	o.extra = append(o.extra, c.Complements...)
	subjects := c.Subjects
	if vf.Has(FlagPassive) {
		subs, agent, promoted := s.passive(c, vp)
		if promoted {
			subjects = subs
			o.omit[FunctionObject] = true
			if agent != nil {
				o.extra = append(o.extra, detachPronoun(agent))
			}
		}
	}

	var lead []Element
	relative := fs.Relative != FunctionNone || fs.Preposition != ""
	subjectFromAntecedent := false
	if relative {
		lead = f.relativePronoun(s, c, ag)
		switch fs.Relative {
		case FunctionSubject:
			subjects = nil
			subjectFromAntecedent = true
		case FunctionObject:
			o.omit[FunctionObject] = true
			antecedent := agreement{Gender: ag.Gender, Number: ag.Number}
			o.object = &antecedent
		case FunctionIndirectObject:
			o.omit[FunctionIndirectObject] = true
		}
	} else {
		force := vf.Form == FormSubjunctive && isSubordinate(c)
		out.Add(s.complementiser(c, force))
		words, slot := frenchQuestion(vf.Interrogative)
		for _, w := range words {
			lead = append(lead, text(w, lang, FunctionComplementiser))
		}
		switch slot {
		case FunctionSubject:
			subjects = nil
		case FunctionObject, FunctionIndirectObject:
			o.omit[slot] = true
		}
		if vf.Interrogative == InterrogativeHowMany {
			subjects = howManySubjects(subjects)
		}
	}
	if subjectFromAntecedent {
		o.subject = ag
		o.subject.Person = o.subject.Person.Effective()
	} else {
		o.subject = s.subjectAgreement(subjects, lang)
	}
	if dropsSubject(vf.Form) {
		subjects = nil
	}

	for _, l := range lead {
		out.Add(l)
	}
	out.Add(s.realiseSubjects(subjects, lang))
	out.Add(f.realiseVerbPhrase(s, vp, &vf, o))
	for _, pm := range s.realiseAll(c.Postmodifiers, agreement{}) {
		out.Add(pm)
	}
	return out
}

func (frenchSyntax) coordination(s *syntaxer, c *Coordination, ag agreement) Element {
	return s.coordinate(c, ag, detachPronoun)
}

func (frenchSyntax) phrase(s *syntaxer, p *Phrase, ag agreement) Element {
	if p.Category() == CatPrepositionalPhrase {
		return s.headedPhrase(p, ag, detachPronoun)
	}
	return s.headedPhrase(p, ag, nil)
}
