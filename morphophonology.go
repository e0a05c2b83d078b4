package nlg

import "strings"

// adjustLeaves runs the morphophonology rules over the adjacent non-empty
// fragments of a realised tree, from right to left, so that a word is
// rewritten by its right neighbour before it meets its left one: "de le
// homme" becomes "de l'homme" and not "du homme".
func (r *Realiser) adjustLeaves(e Element) {
	leaves := Leaves(e)
	var right *Text
	for i := len(leaves) - 1; i >= 0; i-- {
		left := leaves[i]
		if left.Value == "" {
			continue
		}
		if right != nil {
			r.grammarFor(left.Language()).Morphophonology.adjust(left, right)
			if right.Language() != left.Language() {
				r.grammarFor(right.Language()).Morphophonology.adjust(left, right)
			}
		}
		right = left
	}
}

type englishMorphophonology struct{}

// adjust turns the indefinite article into "an" before a vowel sound.
func (englishMorphophonology) adjust(left, right *Text) {
	if strings.ToLower(left.Value) != "a" {
		return
	}
	if c := left.Category(); c != CatDeterminer && c != CatCannedText {
		return
	}
	if requiresAn(right.Value) {
		left.Value += "n"
	}
}

type frenchMorphophonology struct{}

// elidable words lose their final vowel before a vowel or mute h.
var elidable = map[string]bool{
	"le": true, "la": true, "je": true, "me": true, "te": true, "se": true,
	"de": true, "ne": true, "que": true, "ce": true, "jusque": true,
	"lorsque": true, "puisque": true, "quoique": true,
}

// contractions of a preposition with a following article or lequel form.
var contractions = map[[2]string]string{
	{"de", "le"}:         "du",
	{"de", "les"}:        "des",
	{"à", "le"}:          "au",
	{"à", "les"}:         "aux",
	{"de", "lequel"}:     "duquel",
	{"de", "lesquels"}:   "desquels",
	{"de", "lesquelles"}: "desquelles",
	{"à", "lequel"}:      "auquel",
	{"à", "lesquels"}:    "auxquels",
	{"à", "lesquelles"}:  "auxquelles",
}

// splitLast separates the last word of a fragment: "en train de" gives
// "en train " and "de".
func splitLast(s string) (string, string) {
	i := strings.LastIndexByte(s, ' ')
	return s[:i+1], s[i+1:]
}

func (frenchMorphophonology) adjust(left, right *Text) {
	lval := strings.ToLower(left.Value)
	rval := strings.ToLower(right.Value)

	// clitic moi/toi before en or y keeps its conjoint form
	if left.Features().Has(FlagEnclitic) && (rval == "en" || rval == "y") {
		switch lval {
		case "moi":
			left.Value, lval = "me", "me"
		case "toi":
			left.Value, lval = "te", "te"
		}
	}

	if c, ok := contractions[[2]string{lval, rval}]; ok && contractible(right) {
		left.Value = c
		right.Value = ""
		return
	}

	if (lval == "de" || lval == "que") && lval == rval {
		right.Value = ""
		return
	}

	if l, ok := left.Features().Get(liaisonKey); ok && startsWithVowelSound(right) {
		if s, _ := l.(string); s != "" {
			left.Value = s
			return
		}
	}

	head, last := splitLast(left.Value)
	word := strings.ToLower(last)
	if left.Features().Has(FlagEnclitic) && !((word == "me" || word == "te") && (rval == "en" || rval == "y")) {
		return
	}
	switch {
	case word == "si":
		if rval == "il" || rval == "ils" {
			left.Value = head + last[:1] + "'"
			left.Features().Set(FlagElided, true)
		}
	case elidable[word] && word != "ce" || word == "ce" && left.Category() != CatDeterminer:
		if startsWithVowelSound(right) {
			left.Value = head + trimLast(last, 1) + "'"
			left.Features().Set(FlagElided, true)
		}
	}
}

// contractible reports whether the right-hand fragment of a contraction is
// an article or a lequel form rather than a clitic pronoun.
func contractible(t *Text) bool {
	switch t.Category() {
	case CatDeterminer:
		return true
	case CatPronoun:
		return !t.Features().Has(FlagPronominal)
	}
	return false
}
