package nlg

import (
	"regexp"
	"slices"
	"strings"
)

// InflectionTable is the full paradigm of one verb.
type InflectionTable struct {
	// Word is the lexicon entry the table was built for.
	Word *Word
	// Model names the conjugation model (empty for English).
	Model string
	// Cells maps a 1-based paradigm cell to its forms, preferred form first.
	Cells map[int][]string
}

// Forms returns the forms of the cell named key ("present3s").
func (t *InflectionTable) Forms(key string) []string {
	for n := 1; n < cellCount; n++ {
		if cells[n].Key == key {
			return t.Cells[n]
		}
	}
	return nil
}

// ByKey returns the table keyed by cell name.
func (t *InflectionTable) ByKey() map[string][]string {
	out := make(map[string][]string, len(t.Cells))
	for n, forms := range t.Cells {
		out[cells[n].Key] = forms
	}
	return out
}

// table computes the inflection table of the lemma.
func (l *Lemma) table() *InflectionTable {
	t := &InflectionTable{
		Word:  l.Word,
		Model: l.model.Name,
		Cells: make(map[int][]string),
	}
	for n := 1; n < cellCount; n++ {
		if forms := l.inflectedForms(n); len(forms) > 0 {
			t.Cells[n] = forms
		}
	}
	return t
}

// inflectedForms returns the forms of the lemma at cell n.
func (l *Lemma) inflectedForms(n int) []string {
	var forms []string

	irregs := l.irregsAt(n)
	if l.isExclusiveIrreg(n) {
		for _, ir := range irregs {
			if ir.Exclusive {
				forms = append(forms, ir.Form)
			}
		}
		return forms
	}
	// additive irregulars come first
	for _, ir := range irregs {
		forms = append(forms, ir.Form)
	}

	firstGroup := l.model.firstGroup()
	for _, d := range l.model.DesinencesAt(n) {
		for _, rad := range l.RadicalsAt(d.RadNum) {
			stem := rad.Form
			if firstGroup {
				stem = l.repair(stem, d)
			}
			forms = append(forms, stem+d.Ending)
		}
	}
	return unique(forms)
}

// form returns the preferred form at cell n, or the infinitive when the
// model lacks the cell.
func (l *Lemma) form(n int) string {
	if forms := l.inflectedForms(n); len(forms) > 0 {
		return forms[0]
	}
	return l.Word.Base
}

// muteStem matches an e or é followed by the consonant group that closes a
// first-group stem: "lev", "céd", "sèch", "régn", "célébr".
var muteStem = regexp.MustCompile(`(e|é)(ch|gn|[bcdfgptv][rl]|[bcdfghjklmnpqrstvwxz])$`)

// repair applies the -er spelling changes to stem before ending d.
func (l *Lemma) repair(stem string, d *Desinence) string {
	switch {
	case d.CellNum >= cellFuture && d.CellNum < cellSubjunctive:
		// future and conditional attach to the infinitive
		if !strings.HasSuffix(stem, "er") {
			return stem
		}
		inner := strings.TrimSuffix(stem, "er")
		if strings.HasSuffix(inner, "y") && !strings.HasSuffix(inner, "ey") {
			return trimLast(inner, 1) + "ier"
		}
		if m := muteStem.FindStringSubmatchIndex(inner); m != nil && inner[m[2]:m[3]] == "e" {
			return l.soften(inner, m) + "er"
		}
		return stem
	case isMuteEnding(d):
		if strings.HasSuffix(stem, "y") && !strings.HasSuffix(stem, "ey") {
			return trimLast(stem, 1) + "i"
		}
		if m := muteStem.FindStringSubmatchIndex(stem); m != nil {
			return l.soften(stem, m)
		}
		return stem
	}

	// c and g keep their soft sound before a and o
	if d.Ending == "" {
		return stem
	}
	switch d.Ending[0] {
	case 'a', 'o':
		if strings.HasSuffix(stem, "c") {
			return trimLast(stem, 1) + "ç"
		}
		if strings.HasSuffix(stem, "g") {
			return stem + "e"
		}
	}
	return stem
}

// soften turns the matched e/é into è, or doubles the final consonant for
// verbs lexically marked to do so.
func (l *Lemma) soften(stem string, m []int) string {
	vowelStart, vowelEnd := m[2], m[3]
	cons := stem[m[4]:m[5]]
	if l.doubles() && stem[vowelStart:vowelEnd] == "e" && len(cons) == 1 {
		return stem + cons
	}
	return stem[:vowelStart] + "è" + stem[vowelEnd:]
}

// isMuteEnding reports whether d is an unstressed e-ending of the present,
// subjunctive or imperative.
func isMuteEnding(d *Desinence) bool {
	switch d.Ending {
	case "e", "es", "ent":
	default:
		return false
	}
	n := d.CellNum
	return (n >= cellPresent && n < cellImperfect) ||
		(n >= cellSubjunctive && n < cellImperative) ||
		n == cellImperative
}

// unique returns a deduplicated slice preserving order.
func unique(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
