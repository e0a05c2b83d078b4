package nlg

import "strings"

// Category is the fixed grammatical category of an element.
type Category uint8

const (
	CatAny Category = iota

	// lexical categories
	CatNoun
	CatVerb
	CatAdjective
	CatAdverb
	CatPronoun
	CatDeterminer
	CatPreposition
	CatConjunction
	CatComplementiser
	CatModal
	CatSymbol

	// phrasal categories
	CatNounPhrase
	CatVerbPhrase
	CatPrepositionalPhrase
	CatAdjectivePhrase
	CatAdverbPhrase
	CatClause
	CatCoordination
	CatCannedText

	// document categories
	CatDocument
	CatSection
	CatParagraph
	CatSentence
	CatList
	CatListItem
)

var categoryNames = map[Category]string{
	CatAny:                 "any",
	CatNoun:                "noun",
	CatVerb:                "verb",
	CatAdjective:           "adjective",
	CatAdverb:              "adverb",
	CatPronoun:             "pronoun",
	CatDeterminer:          "determiner",
	CatPreposition:         "preposition",
	CatConjunction:         "conjunction",
	CatComplementiser:      "complementiser",
	CatModal:               "modal",
	CatSymbol:              "symbol",
	CatNounPhrase:          "noun_phrase",
	CatVerbPhrase:          "verb_phrase",
	CatPrepositionalPhrase: "prepositional_phrase",
	CatAdjectivePhrase:     "adjective_phrase",
	CatAdverbPhrase:        "adverb_phrase",
	CatClause:              "clause",
	CatCoordination:        "coordination",
	CatCannedText:          "canned_text",
	CatDocument:            "document",
	CatSection:             "section",
	CatParagraph:           "paragraph",
	CatSentence:            "sentence",
	CatList:                "list",
	CatListItem:            "list_item",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// IsLexical reports whether c is a word-level category.
func (c Category) IsLexical() bool {
	return c >= CatNoun && c <= CatSymbol
}

// IsPhrasal reports whether c is a phrase-level category.
func (c Category) IsPhrasal() bool {
	return c >= CatNounPhrase && c <= CatCannedText
}

// IsDocument reports whether c is a document structure category.
func (c Category) IsDocument() bool {
	return c >= CatDocument && c <= CatListItem
}

// ParseCategory returns the category named s (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	switch s {
	case "np":
		return CatNounPhrase, true
	case "vp":
		return CatVerbPhrase, true
	case "pp":
		return CatPrepositionalPhrase, true
	case "ap":
		return CatAdjectivePhrase, true
	case "advp":
		return CatAdverbPhrase, true
	case "s":
		return CatClause, true
	case "coord":
		return CatCoordination, true
	}
	return CatAny, false
}

// Tense of a clause or verb.
type Tense uint8

const (
	TensePresent Tense = iota
	TensePast
	TenseFuture
	TenseConditional
	TenseImperfect
)

var tenseNames = []string{"present", "past", "future", "conditional", "imperfect"}

func (t Tense) String() string {
	if int(t) < len(tenseNames) {
		return tenseNames[t]
	}
	return "present"
}

// Form is the mood-like form of a clause or verb.
type Form uint8

const (
	FormNormal Form = iota
	FormInfinitive
	FormBareInfinitive
	FormGerund
	FormImperative
	FormSubjunctive
	FormPresentParticiple
	FormPastParticiple
)

var formNames = []string{
	"normal", "infinitive", "bare_infinitive", "gerund", "imperative",
	"subjunctive", "present_participle", "past_participle",
}

func (f Form) String() string {
	if int(f) < len(formNames) {
		return formNames[f]
	}
	return "normal"
}

// IsNonFinite reports whether f carries no tense or agreement.
func (f Form) IsNonFinite() bool {
	switch f {
	case FormInfinitive, FormBareInfinitive, FormGerund, FormPresentParticiple, FormPastParticiple:
		return true
	}
	return false
}

// Number is grammatical number. The zero value is unset and reads as singular.
type Number uint8

const (
	NumberUnset Number = iota
	NumberSingular
	NumberPlural
	NumberBoth
)

var numberNames = []string{"unset", "singular", "plural", "both"}

func (n Number) String() string {
	if int(n) < len(numberNames) {
		return numberNames[n]
	}
	return "unset"
}

// IsPlural reports whether n is plural.
func (n Number) IsPlural() bool { return n == NumberPlural }

// Person is grammatical person. The zero value is unset and reads as third.
type Person uint8

const (
	PersonUnset Person = iota
	PersonFirst
	PersonSecond
	PersonThird
)

func (p Person) String() string {
	switch p {
	case PersonFirst:
		return "first"
	case PersonSecond:
		return "second"
	case PersonThird:
		return "third"
	}
	return "unset"
}

// Effective returns p with unset resolved to third person.
func (p Person) Effective() Person {
	if p == PersonUnset {
		return PersonThird
	}
	return p
}

// dominates reports whether p outranks q in coordination (first > second > third).
func (p Person) dominates(q Person) bool {
	return p.Effective() < q.Effective()
}

// index returns 0, 1 or 2 for first, second and third person.
func (p Person) index() int {
	return int(p.Effective()) - 1
}

// Gender is grammatical gender. The zero value is unset.
type Gender uint8

const (
	GenderUnset Gender = iota
	GenderMasculine
	GenderFeminine
	GenderNeuter
)

func (g Gender) String() string {
	switch g {
	case GenderMasculine:
		return "masculine"
	case GenderFeminine:
		return "feminine"
	case GenderNeuter:
		return "neuter"
	}
	return "unset"
}

// InterrogativeType selects the question transformation applied to a clause.
type InterrogativeType uint8

const (
	InterrogativeNone InterrogativeType = iota
	InterrogativeYesNo
	InterrogativeWhoSubject
	InterrogativeWhoObject
	InterrogativeWhoIndirectObject
	InterrogativeWhatSubject
	InterrogativeWhatObject
	InterrogativeHow
	InterrogativeWhy
	InterrogativeWhere
	InterrogativeHowMany
)

var interrogativeNames = []string{
	"none", "yes_no", "who_subject", "who_object", "who_indirect_object",
	"what_subject", "what_object", "how", "why", "where", "how_many",
}

func (i InterrogativeType) String() string {
	if int(i) < len(interrogativeNames) {
		return interrogativeNames[i]
	}
	return "none"
}

// questionsObject reports whether i interrogates the direct object.
func (i InterrogativeType) questionsObject() bool {
	return i == InterrogativeWhoObject || i == InterrogativeWhatObject
}

// questionsSubject reports whether i interrogates the subject.
func (i InterrogativeType) questionsSubject() bool {
	return i == InterrogativeWhoSubject || i == InterrogativeWhatSubject
}

// DiscourseFunction is the grammatical role of a constituent.
type DiscourseFunction uint8

const (
	FunctionNone DiscourseFunction = iota
	FunctionSubject
	FunctionObject
	FunctionIndirectObject
	FunctionSpecifier
	FunctionHead
	FunctionPreModifier
	FunctionPostModifier
	FunctionFrontModifier
	FunctionComplement
	FunctionConjunction
	FunctionCuePhrase
	FunctionAuxiliary
	FunctionVerbPhrase
	FunctionComplementiser
)

var functionNames = []string{
	"none", "subject", "object", "indirect_object", "specifier", "head",
	"pre_modifier", "post_modifier", "front_modifier", "complement",
	"conjunction", "cue_phrase", "auxiliary", "verb_phrase", "complementiser",
}

func (d DiscourseFunction) String() string {
	if int(d) < len(functionNames) {
		return functionNames[d]
	}
	return "none"
}

// ClauseStatus distinguishes root clauses from embedded ones.
type ClauseStatus uint8

const (
	ClauseMatrix ClauseStatus = iota
	ClauseSubordinate
)

func (c ClauseStatus) String() string {
	if c == ClauseSubordinate {
		return "subordinate"
	}
	return "matrix"
}

// Language identifies the grammar an element is realised with.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

func parseEnum[T ~uint8](names []string, s string) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return T(i), true
		}
	}
	return 0, false
}

// ParseTense returns the tense named s.
func ParseTense(s string) (Tense, bool) { return parseEnum[Tense](tenseNames, s) }

// ParseForm returns the form named s.
func ParseForm(s string) (Form, bool) { return parseEnum[Form](formNames, s) }

// ParseNumber returns the number named s.
func ParseNumber(s string) (Number, bool) { return parseEnum[Number](numberNames, s) }

// ParseInterrogative returns the interrogative type named s.
func ParseInterrogative(s string) (InterrogativeType, bool) {
	return parseEnum[InterrogativeType](interrogativeNames, s)
}

// ParseFunction returns the discourse function named s.
func ParseFunction(s string) (DiscourseFunction, bool) {
	return parseEnum[DiscourseFunction](functionNames, s)
}

// ParsePerson accepts "1", "2", "3" or the person names.
func ParsePerson(s string) (Person, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "first":
		return PersonFirst, true
	case "2", "second":
		return PersonSecond, true
	case "3", "third":
		return PersonThird, true
	}
	return PersonUnset, false
}

// ParseGender accepts full names and the m/f/n abbreviations.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "masc", "masculine":
		return GenderMasculine, true
	case "f", "fem", "feminine":
		return GenderFeminine, true
	case "n", "neuter":
		return GenderNeuter, true
	}
	return GenderUnset, false
}
