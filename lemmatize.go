package nlg

// Analysis is one reading of an inflected verb form.
type Analysis struct {
	// Form is the form analysed, as generated by the paradigm.
	Form string
	// Cell is the 1-based paradigm cell.
	Cell int
	// Label describes the cell ("présent de l'indicatif, 1re personne du singulier").
	Label string
	Lemma *Lemma
}

// Analyser maps inflected French verb forms back to their lemmas.
type Analyser struct {
	paradigms *Paradigms
	// radicals maps stem → radicals of every indexed lemma.
	radicals map[string][]*Radical
	// irregs maps form → irregular forms, including stems altered by
	// the -er spelling repairs.
	irregs map[string][]*Irreg
	lemmas map[string]*Lemma
}

// NewAnalyser indexes the radicals and irregular forms of verbs.
func NewAnalyser(p *Paradigms, verbs []*Word) *Analyser {
	a := &Analyser{
		paradigms: p,
		radicals:  make(map[string][]*Radical),
		irregs:    make(map[string][]*Irreg),
		lemmas:    make(map[string]*Lemma),
	}
	for _, w := range verbs {
		a.Add(w)
	}
	return a
}

// Add indexes one verb and returns its lemma.
func (a *Analyser) Add(w *Word) *Lemma {
	l := newLemma(a.paradigms, w)
	a.lemmas[l.Key] = l
	for _, rads := range l.radicals {
		for _, r := range rads {
			a.radicals[r.Form] = append(a.radicals[r.Form], r)
		}
	}
	for _, irrs := range l.irregs {
		for _, ir := range irrs {
			a.irregs[ir.Form] = append(a.irregs[ir.Form], ir)
		}
	}
	if l.model.firstGroup() {
		a.indexRepaired(l)
	}
	return l
}

// indexRepaired records the forms whose stem a spelling repair changed,
// since splitting them would not find the radical.
func (a *Analyser) indexRepaired(l *Lemma) {
	for n := 1; n < cellCount; n++ {
		if l.isExclusiveIrreg(n) {
			continue
		}
		for _, d := range l.model.DesinencesAt(n) {
			for _, rad := range l.RadicalsAt(d.RadNum) {
				if stem := l.repair(rad.Form, d); stem != rad.Form {
					form := stem + d.Ending
					a.irregs[form] = append(a.irregs[form], &Irreg{Form: form, Cell: n, Lemma: l})
				}
			}
		}
	}
}

// Lemma returns the indexed lemma for an infinitive.
func (a *Analyser) Lemma(infinitive string) *Lemma {
	return a.lemmas[NormalizeKey(infinitive)]
}

// Analyse returns every reading of form: irregular forms first, then each
// split of the form into an indexed radical and a desinence of the
// radical's model.
func (a *Analyser) Analyse(form string) []Analysis {
	form = NormalizeKey(form)
	var result []Analysis

	for _, irr := range a.irregs[form] {
		result = append(result, Analysis{
			Form:  irr.Form,
			Cell:  irr.Cell,
			Label: a.paradigms.Label(irr.Cell),
			Lemma: irr.Lemma,
		})
	}

	// Split at each rune boundary: form[:i] = stem, form[i:] = ending
	runes := []rune(form)
	for i := 0; i <= len(runes); i++ {
		r := string(runes[:i])
		d := string(runes[i:])

		rads, hasRad := a.radicals[r]
		if !hasRad {
			continue
		}
		des, hasDes := a.paradigms.desinences[d]
		if !hasDes {
			continue
		}

		for _, rad := range rads {
			lemma := rad.Lemma
			for _, de := range des {
				if de.Model != lemma.model || de.RadNum != rad.Num {
					continue
				}
				if lemma.isExclusiveIrreg(de.CellNum) {
					continue
				}
				if lemma.model.firstGroup() && lemma.repair(rad.Form, de) != rad.Form {
					// the surface form carries the repaired stem instead
					continue
				}
				result = append(result, Analysis{
					Form:  rad.Form + de.Ending,
					Cell:  de.CellNum,
					Label: a.paradigms.Label(de.CellNum),
					Lemma: lemma,
				})
			}
		}
	}
	return result
}

// Lemmatize returns the distinct lemmas form can belong to.
func (a *Analyser) Lemmatize(form string) []*Lemma {
	var out []*Lemma
	for _, an := range a.Analyse(form) {
		dup := false
		for _, l := range out {
			if l == an.Lemma {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, an.Lemma)
		}
	}
	return out
}
