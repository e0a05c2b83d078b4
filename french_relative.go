package nlg

import "strings"

// OuterPrepositionKey is the extension feature naming the preposition that
// governs the phrase a relative pronoun is moved out of, as in "l'homme à
// la femme duquel je parle".
const OuterPrepositionKey = "outer_preposition"

// relativePronoun returns the words opening a French relative clause:
// qui, que, dont, où, or a preposition with the lequel series agreeing
// with the antecedent.
func (frenchSyntax) relativePronoun(s *syntaxer, c *Phrase, antecedent agreement) []Element {
	fs := c.Features()
	prep := strings.TrimSpace(fs.Preposition)
	outer := ""
	if v, ok := fs.Get(OuterPrepositionKey); ok {
		outer, _ = v.(string)
	}
	if prep == "" && fs.Relative == FunctionIndirectObject {
		prep = "à"
	}
	rel := func(base string) Element {
		iw := s.word(base, CatPronoun, French)
		iw.Features().Function = FunctionComplementiser
		return iw
	}
	switch {
	case prep == "":
		if fs.Relative == FunctionSubject {
			return []Element{rel("qui")}
		}
		return []Element{rel("que")}
	case prep == "où":
		return []Element{rel("où")}
	case prep == "de" && (outer == "" || outer == "de"):
		return []Element{rel("dont")}
	}
	// a "de" complement moved out of a phrase governed by another
	// preposition keeps "de" + lequel
	p := s.word(prep, CatPreposition, French)
	lequel := s.word("lequel", CatPronoun, French)
	lf := lequel.Features()
	lf.Function = FunctionComplementiser
	lf.Gender = antecedent.Gender
	lf.Number = antecedent.Number
	return []Element{p, lequel}
}
