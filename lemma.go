package nlg

import (
	"strconv"
	"strings"
)

// Radical is a stem that desinences attach to.
type Radical struct {
	// Form is the stem text.
	Form string
	// Num is the radical number the model's desinences refer to.
	Num int
	// Lemma is the lemma this radical belongs to.
	Lemma *Lemma
}

// Irreg is an irregular form recorded in the lexicon for one paradigm cell.
type Irreg struct {
	Form string
	// Exclusive indicates this form replaces (rather than supplements)
	// the regular inflection of its cell.
	Exclusive bool
	// Cell is the 1-based paradigm cell the form covers.
	Cell int
	Lemma *Lemma
}

// Lemma is a verb bound to its conjugation model, with its radicals
// computed and its irregular forms indexed by cell.
type Lemma struct {
	// Word is the lexicon entry the lemma was built from.
	Word *Word
	// Key is the normalized infinitive.
	Key string

	model    *Model
	radicals map[int][]*Radical
	irregs   map[int][]*Irreg
	// cellsIrregExcl lists cells covered by exclusive irregulars.
	cellsIrregExcl map[int]bool
}

// newLemma binds w to its model in p. Radicals come from the model's rules
// unless the lexicon gives them explicitly ("radical2": "ir" for aller).
// Irregular forms are read from the cell-keyed forms of w; a leading "+"
// marks an additive variant, and commas separate alternatives.
func newLemma(p *Paradigms, w *Word) *Lemma {
	m := p.ModelFor(w)
	l := &Lemma{
		Word:           w,
		Key:            NormalizeKey(w.Base),
		model:          m,
		radicals:       make(map[int][]*Radical),
		irregs:         make(map[int][]*Irreg),
		cellsIrregExcl: make(map[int]bool),
	}
	l.buildRadicals()

	for n := 1; n < cellCount; n++ {
		raw, ok := w.Form(cells[n].Key)
		if !ok {
			continue
		}
		exclusive := !strings.HasPrefix(raw, "+")
		for _, f := range strings.Split(strings.TrimPrefix(raw, "+"), ",") {
			if f = strings.TrimSpace(f); f == "" {
				continue
			}
			l.addIrreg(&Irreg{Form: f, Exclusive: exclusive, Cell: n, Lemma: l})
		}
	}
	return l
}

// buildRadicals computes one radical per radical number the model uses.
func (l *Lemma) buildRadicals() {
	base := l.Key
	for num, rule := range l.model.RadicalRules {
		if explicit, ok := l.Word.Form("radical" + strconv.Itoa(num)); ok {
			for _, r := range strings.Split(explicit, ",") {
				if r = strings.TrimSpace(r); r != "" {
					l.radicals[num] = append(l.radicals[num], &Radical{Form: r, Num: num, Lemma: l})
				}
			}
			continue
		}
		l.radicals[num] = append(l.radicals[num], &Radical{Form: stemFromBase(base, rule), Num: num, Lemma: l})
	}
}

// Model returns the conjugation model of the lemma.
func (l *Lemma) Model() *Model {
	return l.model
}

// addIrreg attaches an irregular form to this lemma.
func (l *Lemma) addIrreg(irr *Irreg) {
	l.irregs[irr.Cell] = append(l.irregs[irr.Cell], irr)
	if irr.Exclusive {
		l.cellsIrregExcl[irr.Cell] = true
	}
}

// isExclusiveIrreg reports whether cell n is covered by an exclusive irregular.
func (l *Lemma) isExclusiveIrreg(n int) bool {
	return l.cellsIrregExcl[n]
}

// irregsAt returns the irregular forms recorded for cell n.
func (l *Lemma) irregsAt(n int) []*Irreg {
	return l.irregs[n]
}

// RadicalsAt returns all radicals for radical number r.
func (l *Lemma) RadicalsAt(r int) []*Radical {
	return l.radicals[r]
}

// doubles reports whether the verb doubles its stem consonant instead of
// taking a grave accent (appeler, jeter).
func (l *Lemma) doubles() bool {
	return l.Word.Features().Has(FlagDoubleConsonant)
}
