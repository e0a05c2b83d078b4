package nlg

import (
	"strconv"
	"strings"
	"sync"
)

// ListI parses a cell-range string into a slice of ints.
// Format: comma-separated items, each either a single int or a range "a-b".
func ListI(s string) []int {
	var result []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "-"); idx > 0 {
			start, _ := strconv.Atoi(part[:idx])
			end, _ := strconv.Atoi(part[idx+1:])
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
		} else {
			n, _ := strconv.Atoi(part)
			result = append(result, n)
		}
	}
	return result
}

// Cell describes one slot of a verb paradigm.
type Cell struct {
	// Key names the slot in lexicon form maps, e.g. "present1s".
	Key    string
	Tense  Tense
	Form   Form
	Person Person
	Number Number
	Gender Gender
}

// Cell indices are 1-based; index 0 is unused.
const (
	cellPresent       = 1
	cellImperfect     = 7
	cellFuture        = 13
	cellConditional   = 19
	cellSubjunctive   = 25
	cellImperative    = 31
	cellInfinitive    = 34
	cellPresPart      = 35
	cellPastPart      = 36
	cellCount         = 40
	personNumberCells = 6
)

// cells is the fixed paradigm layout shared by every model.
var cells = buildCells()

func buildCells() []Cell {
	out := make([]Cell, cellCount)
	block := func(start int, key string, t Tense, f Form) {
		for i := 0; i < personNumberCells; i++ {
			n := NumberSingular
			suffix := "s"
			if i >= 3 {
				n, suffix = NumberPlural, "p"
			}
			p := Person(i%3 + 1)
			out[start+i] = Cell{
				Key:    key + strconv.Itoa(i%3+1) + suffix,
				Tense:  t,
				Form:   f,
				Person: p,
				Number: n,
			}
		}
	}
	block(cellPresent, "present", TensePresent, FormNormal)
	block(cellImperfect, "imperfect", TenseImperfect, FormNormal)
	block(cellFuture, "future", TenseFuture, FormNormal)
	block(cellConditional, "conditional", TenseConditional, FormNormal)
	block(cellSubjunctive, "subjunctive", TensePresent, FormSubjunctive)
	out[cellImperative] = Cell{Key: "imperative2s", Form: FormImperative, Person: PersonSecond, Number: NumberSingular}
	out[cellImperative+1] = Cell{Key: "imperative1p", Form: FormImperative, Person: PersonFirst, Number: NumberPlural}
	out[cellImperative+2] = Cell{Key: "imperative2p", Form: FormImperative, Person: PersonSecond, Number: NumberPlural}
	out[cellInfinitive] = Cell{Key: "infinitive", Form: FormInfinitive}
	out[cellPresPart] = Cell{Key: "present_participle", Form: FormPresentParticiple}
	out[cellPastPart] = Cell{Key: "past_participle", Form: FormPastParticiple, Gender: GenderMasculine, Number: NumberSingular}
	out[cellPastPart+1] = Cell{Key: "past_participle_fs", Form: FormPastParticiple, Gender: GenderFeminine, Number: NumberSingular}
	out[cellPastPart+2] = Cell{Key: "past_participle_mp", Form: FormPastParticiple, Gender: GenderMasculine, Number: NumberPlural}
	out[cellPastPart+3] = Cell{Key: "past_participle_fp", Form: FormPastParticiple, Gender: GenderFeminine, Number: NumberPlural}
	return out
}

// Cells returns a copy of the paradigm layout, index 0 unused.
func Cells() []Cell {
	out := make([]Cell, len(cells))
	copy(out, cells)
	return out
}

// cellFor maps verb features onto a paradigm cell. Finite past has no
// synthetic French form of its own and reads the imperfect row.
func cellFor(fs *Features) int {
	offset := fs.Person.index()
	if fs.Number.IsPlural() {
		offset += 3
	}
	switch fs.Form {
	case FormInfinitive, FormBareInfinitive:
		return cellInfinitive
	case FormPresentParticiple, FormGerund:
		return cellPresPart
	case FormPastParticiple:
		i := cellPastPart
		if fs.Gender == GenderFeminine {
			i++
		}
		if fs.Number.IsPlural() {
			i += 2
		}
		return i
	case FormSubjunctive:
		return cellSubjunctive + offset
	case FormImperative:
		switch {
		case fs.Person == PersonFirst && fs.Number.IsPlural():
			return cellImperative + 1
		case fs.Person.Effective() == PersonSecond && fs.Number.IsPlural():
			return cellImperative + 2
		case fs.Person.Effective() == PersonSecond:
			return cellImperative
		}
		// third-person orders borrow the subjunctive ("qu'il vienne")
		return cellSubjunctive + offset
	}
	switch fs.Tense {
	case TenseImperfect, TensePast:
		return cellImperfect + offset
	case TenseFuture:
		return cellFuture + offset
	case TenseConditional:
		return cellConditional + offset
	}
	return cellPresent + offset
}

// Desinence represents a single inflectional ending.
type Desinence struct {
	// Ending is the suffix appended to the radical ("" for a bare radical).
	Ending string
	// CellNum is the 1-based paradigm cell.
	CellNum int
	// RadNum is the radical number this ending attaches to.
	RadNum int
	// Model is the model that owns this desinence.
	Model *Model
}

// Model is a conjugation paradigm.
type Model struct {
	// Name is the paradigm name (e.g. "aimer", "finir").
	Name string
	// parent is the inherited-from model (nil for root models).
	parent *Model
	// RadicalRules maps radical-number → rule string.
	// Rule "K" means use the infinitive as-is; otherwise "n,suffix"
	// means remove n runes from the end and append suffix.
	RadicalRules map[int]string
	// Absents lists cells that are missing from this model.
	Absents []int
	// Desinences maps cell index → list of Desinence pointers.
	Desinences map[int][]*Desinence
	// Endings lists the infinitive endings this model is the default for.
	Endings []string
}

// newModel creates an empty Model with the given name.
func newModel(name string) *Model {
	return &Model{
		Name:         name,
		RadicalRules: make(map[int]string),
		Desinences:   make(map[int][]*Desinence),
	}
}

// hasDesinence returns true if the model has any desinence for cell n.
func (m *Model) hasDesinence(n int) bool {
	_, ok := m.Desinences[n]
	return ok
}

// isAbsent returns true if cell a is absent in this model.
func (m *Model) isAbsent(a int) bool {
	for _, v := range m.Absents {
		if v == a {
			return true
		}
	}
	return false
}

// DesinencesAt returns all desinences for the given cell.
func (m *Model) DesinencesAt(n int) []*Desinence {
	return m.Desinences[n]
}

// AllDesinences returns all desinences for this model.
func (m *Model) AllDesinences() []*Desinence {
	var result []*Desinence
	for _, list := range m.Desinences {
		result = append(result, list...)
	}
	return result
}

// Parent returns the parent model.
func (m *Model) Parent() *Model {
	return m.parent
}

// IsA returns true if this model or any ancestor has the given name.
func (m *Model) IsA(name string) bool {
	if m.Name == name {
		return true
	}
	if m.parent != nil {
		return m.parent.IsA(name)
	}
	return false
}

// firstGroup reports whether m conjugates like "aimer" in the present,
// which is where the -er spelling repairs apply.
func (m *Model) firstGroup() bool {
	for cur := m; cur != nil; cur = cur.parent {
		for _, e := range cur.Endings {
			if e == "er" {
				return true
			}
		}
		if len(cur.Endings) > 0 {
			return false
		}
	}
	return false
}

// cloneDesinence creates a copy of d with Model set to newModel.
func cloneDesinence(d *Desinence, newModel *Model) *Desinence {
	return &Desinence{
		Ending:  d.Ending,
		CellNum: d.CellNum,
		RadNum:  d.RadNum,
		Model:   newModel,
	}
}

// Paradigms holds the conjugation models of a language.
type Paradigms struct {
	// labels stores human-readable cell descriptions indexed 1-based.
	labels []string
	// models maps model name → *Model.
	models map[string]*Model
	// byEnding maps infinitive ending → model; longest ending wins.
	byEnding map[string]*Model
	// desinences maps ending → []*Desinence across every model.
	desinences map[string][]*Desinence
	// variables stores $name=value substitutions used in the model file.
	variables map[string]string
}

var (
	frenchParadigmsOnce sync.Once
	frenchParadigms     *Paradigms
	frenchParadigmsErr  error
)

// FrenchParadigms returns the embedded French conjugation models. They are
// parsed once and are read-only afterwards.
func FrenchParadigms() (*Paradigms, error) {
	frenchParadigmsOnce.Do(func() {
		frenchParadigms, frenchParadigmsErr = loadParadigms(lexdata, "lexdata/cellules.fr", "lexdata/conjugaison.fr")
	})
	return frenchParadigms, frenchParadigmsErr
}

// Label returns the description of 1-based cell n.
func (p *Paradigms) Label(n int) string {
	if n < 1 || n >= len(p.labels) {
		return ""
	}
	return p.labels[n]
}

// Model returns the model named name.
func (p *Paradigms) Model(name string) *Model {
	return p.models[name]
}

// ModelFor selects the paradigm of a verb: an explicit "model" form in the
// lexicon wins, otherwise the model registered for the longest matching
// infinitive ending.
func (p *Paradigms) ModelFor(w *Word) *Model {
	if name, ok := w.Form("model"); ok {
		if m := p.models[name]; m != nil {
			return m
		}
	}
	base := NormalizeKey(w.Base)
	var best *Model
	bestLen := 0
	for ending, m := range p.byEnding {
		if len(ending) > bestLen && strings.HasSuffix(base, ending) {
			best, bestLen = m, len(ending)
		}
	}
	if best == nil {
		return p.models["aimer"]
	}
	return best
}

// addDesinence inserts a desinence into the global desinences map.
func (p *Paradigms) addDesinence(d *Desinence) {
	p.desinences[d.Ending] = append(p.desinences[d.Ending], d)
}
