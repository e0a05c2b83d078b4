package nlg

import (
	"cmp"
	"slices"
)

type englishSyntax struct{}

// English adjective premodifier classes, in surface order.
const (
	adjQualitative = iota + 1
	adjColour
	adjClassifying
	adjNoun
)

func adjectiveClass(e Element) int {
	w := headWord(e)
	if w == nil {
		return adjQualitative
	}
	if w.Category() == CatNoun {
		return adjNoun
	}
	fs := w.Features()
	switch {
	case fs.Has(FlagClassifying):
		return adjClassifying
	case fs.Has(FlagColour):
		return adjColour
	}
	return adjQualitative
}

func isAdjectiveModifier(e Element) bool {
	switch e.Category() {
	case CatAdjective, CatAdjectivePhrase:
		return true
	}
	return false
}

func (englishSyntax) nounPhrase(s *syntaxer, np *Phrase, _ agreement) Element {
	ag := npAgreement(np)
	fs := np.Features()
	if fs.Has(FlagPronominal) {
		fn := FunctionObject
		if fs.Function == FunctionSubject {
			fn = FunctionSubject
		}
		return s.pronoun(np, ag, fn, fs.Flags)
	}
	out := newList(np)
	out.Add(s.specifier(np, ag))
	for _, e := range englishPremodifiers(s, np, ag) {
		out.Add(e)
	}
	out.Add(s.nounHead(np, ag))
	out.Add(s.nounComplements(np, ag))
	for _, e := range s.realiseAll(np.Postmodifiers, ag) {
		out.Add(e)
	}
	return out
}

// englishPremodifiers orders the premodifiers of np by class. Adjacent
// adjectives of the same class form a comma-separated enumeration.
func englishPremodifiers(s *syntaxer, np *Phrase, ag agreement) []Element {
	mods := slices.Clone(np.Premodifiers)
	slices.SortStableFunc(mods, func(a, b Element) int {
		return cmp.Compare(adjectiveClass(a), adjectiveClass(b))
	})
	var out []Element
	for i := 0; i < len(mods); {
		j := i + 1
		if isAdjectiveModifier(mods[i]) {
			for j < len(mods) && isAdjectiveModifier(mods[j]) && adjectiveClass(mods[j]) == adjectiveClass(mods[i]) {
				j++
			}
		}
		group := s.realiseAll(mods[i:j], modifierAgreement(ag))
		if len(group) > 1 {
			out = append(out, s.joinCoordinated(np, group, ""))
		} else {
			out = append(out, group...)
		}
		i = j
	}
	return out
}

// englishGroup is the verb group of an English verb phrase, front first.
type englishGroup struct {
	verbs  []*InflectedWord
	not    Element
	to     Element
	finite bool
}

// verbGroup builds the auxiliary stack bottom-up: passive be, progressive
// be, perfect have, modal, then do-support for negation or inversion.
func (englishSyntax) verbGroup(s *syntaxer, main *InflectedWord, fs *Features, o vpOptions) englishGroup {
	lang := main.Language()
	tense, form := fs.Tense, fs.Form
	progressive := fs.Has(FlagProgressive)
	if tense == TenseImperfect {
		tense, progressive = TensePast, true
	}
	finite := !form.IsNonFinite()
	modal := fs.Modal
	if modal == "" && finite && form != FormImperative {
		switch tense {
		case TenseFuture:
			modal, tense = "will", TensePresent
		case TenseConditional:
			modal, tense = "would", TensePresent
		}
	}
	g := englishGroup{verbs: []*InflectedWord{main}, finite: finite}
	front := main
	push := func(base string, cat Category, below Form) {
		setNonFinite(front, below)
		aux := s.auxiliary(base, cat, lang)
		g.verbs = append([]*InflectedWord{aux}, g.verbs...)
		front = aux
	}
	if fs.Has(FlagPassive) {
		push("be", CatVerb, FormPastParticiple)
	}
	if progressive {
		push("be", CatVerb, FormPresentParticiple)
	}
	if fs.Has(FlagPerfect) {
		push("have", CatVerb, FormPastParticiple)
	}
	if modal != "" && finite {
		push(modal, CatModal, FormBareInfinitive)
	}
	negated := fs.Has(FlagNegated)
	doSupport := finite && front == main && baseOf(main) != "be" && (negated || o.invert)
	if form == FormImperative && negated {
		doSupport = true
	}
	if doSupport {
		push("do", CatVerb, FormBareInfinitive)
	}
	switch {
	case form == FormImperative:
		setFinite(front, TensePresent, FormImperative, agreement{Person: PersonSecond})
	case finite:
		setFinite(front, tense, form, o.subject)
	default:
		setNonFinite(front, form)
		if form == FormInfinitive {
			g.to = text("to", lang, FunctionAuxiliary)
		}
	}
	if negated {
		g.not = s.word("not", CatAdverb, lang)
	}
	return g
}

func (e englishSyntax) verbPhrase(s *syntaxer, vp *Phrase, ag agreement) Element {
	fs := vp.Features().Clone()
	out, fronted := e.realiseVerbPhrase(s, vp, &fs, vpOptions{subject: ag})
	if fronted != nil {
		out.Items = append([]Element{fronted}, out.Items...)
	}
	return out
}

// realiseVerbPhrase returns the verb phrase and, under inversion, the
// finite verb detached from it.
func (e englishSyntax) realiseVerbPhrase(s *syntaxer, vp *Phrase, fs *Features, o vpOptions) (*List, Element) {
	out := newList(vp)
	premods := s.realiseAll(append(slices.Clone(o.premodifiers), vp.Premodifiers...), agreement{})
	cs := splitComplements(vp.Complements, o)
	main := mainVerb(vp)
	var fronted Element
	if main == nil {
		for _, pm := range premods {
			out.Add(pm)
		}
	} else {
		g := e.verbGroup(s, main, fs, o)
		if g.not != nil && !g.finite {
			out.Add(g.not)
		}
		out.Add(g.to)
		n := len(g.verbs)
		for i, v := range g.verbs {
			notFollows := i == 0 && g.finite && g.not != nil
			if i == n-1 && !notFollows {
				for _, pm := range premods {
					out.Add(pm)
				}
			}
			if i == 0 && o.invert && g.finite {
				fronted = v
			} else {
				out.Add(v)
			}
			if notFollows {
				out.Add(g.not)
				if n == 1 {
					for _, pm := range premods {
						out.Add(pm)
					}
				}
			}
		}
		out.Add(particle(fs, vp.Language()))
	}
	for _, c := range s.realiseComplements(vp, cs, o, false) {
		out.Add(c)
	}
	for _, pm := range s.realiseAll(vp.Postmodifiers, agreement{}) {
		out.Add(pm)
	}
	return out, fronted
}

// englishWh returns the interrogative word fronted by a question type.
func englishWh(it InterrogativeType) string {
	switch it {
	case InterrogativeWhoSubject, InterrogativeWhoObject, InterrogativeWhoIndirectObject:
		return "who"
	case InterrogativeWhatSubject, InterrogativeWhatObject:
		return "what"
	case InterrogativeHow:
		return "how"
	case InterrogativeWhy:
		return "why"
	case InterrogativeWhere:
		return "where"
	}
	return ""
}

func (e englishSyntax) clause(s *syntaxer, c *Phrase, ag agreement) Element {
	lang := c.Language()
	fs := c.Features()
	out := newList(c)
	for _, f := range s.frontElements(c) {
		out.Add(f)
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
				o.extra = append(o.extra, agent)
			}
		}
	}

	var lead []Element
	var trailing Element
	relative := fs.Relative != FunctionNone || fs.Preposition != ""
	if relative {
		rel := s.defaults(lang).RelativeComplementiser
		if fs.Preposition != "" {
			lead = append(lead, s.word(fs.Preposition, CatPreposition, lang))
			rel = "which"
		}
		lead = append(lead, text(rel, lang, FunctionComplementiser))
		switch fs.Relative {
		case FunctionSubject:
			subjects = nil
			o.subject = ag
		case FunctionObject, FunctionIndirectObject:
			o.omit[fs.Relative] = true
		}
	} else {
		out.Add(s.complementiser(c, false))
		switch it := vf.Interrogative; it {
		case InterrogativeYesNo:
			o.invert = true
		case InterrogativeWhoSubject, InterrogativeWhatSubject:
			subjects = []Element{text(englishWh(it), lang, FunctionSubject)}
		case InterrogativeWhoObject, InterrogativeWhatObject:
			o.omit[FunctionObject] = true
			lead = append(lead, text(englishWh(it), lang, FunctionComplement))
			o.invert = true
		case InterrogativeWhoIndirectObject:
			o.omit[FunctionIndirectObject] = true
			lead = append(lead, text(englishWh(it), lang, FunctionComplement))
			trailing = s.word("to", CatPreposition, lang)
			o.invert = true
		case InterrogativeHow, InterrogativeWhy, InterrogativeWhere:
			lead = append(lead, text(englishWh(it), lang, FunctionComplement))
			o.invert = true
		case InterrogativeHowMany:
			lead = append(lead, text("how many", lang, FunctionSpecifier))
			subjects = howManySubjects(subjects)
		}
	}
	if !(relative && fs.Relative == FunctionSubject) {
		o.subject = s.subjectAgreement(subjects, lang)
	}
	if o.subject.Person == PersonUnset {
		o.subject.Person = PersonThird
	}
	if dropsSubject(vf.Form) {
		subjects = nil
		o.invert = false
	}

	vpOut, fronted := e.realiseVerbPhrase(s, vp, &vf, o)
	for _, l := range lead {
		out.Add(l)
	}
	out.Add(fronted)
	out.Add(s.realiseSubjects(subjects, lang))
	out.Add(vpOut)
	for _, pm := range s.realiseAll(c.Postmodifiers, agreement{}) {
		out.Add(pm)
	}
	out.Add(trailing)
	return out
}

func (englishSyntax) coordination(s *syntaxer, c *Coordination, ag agreement) Element {
	return s.coordinate(c, ag, nil)
}

func (englishSyntax) phrase(s *syntaxer, p *Phrase, ag agreement) Element {
	return s.headedPhrase(p, ag, nil)
}
