package nlg

import "maps"

// Flag is a set of boolean features. Unset flags read as false.
type Flag uint64

const (
	FlagNegated Flag = 1 << iota
	FlagPassive
	FlagPerfect
	FlagProgressive
	FlagPossessive
	FlagPronominal
	FlagElided
	FlagAppositive
	FlagSuppressedComplementiser
	FlagComparative
	FlagSuperlative
	FlagReflexive
	FlagDetached
	FlagRaised
	FlagRaiseSpecifier
	FlagAggregateAuxiliary
	FlagProper
	FlagPreposed
	FlagAspiratedH
	FlagRepeated
	FlagCopular
	FlagEtreAuxiliary
	FlagDoubleConsonant
	FlagNonMorph
	FlagPunctuation
	FlagBeforePremodified
	FlagClitic
	FlagEnclitic
	FlagPluralOnly
	FlagInvariant
	FlagIntransitive
	FlagReflexiveVerb
	// English adjective ordering classes
	FlagQualitative
	FlagColour
	FlagClassifying
)

var flagNames = map[string]Flag{
	"negated":                   FlagNegated,
	"passive":                   FlagPassive,
	"perfect":                   FlagPerfect,
	"progressive":               FlagProgressive,
	"possessive":                FlagPossessive,
	"pronominal":                FlagPronominal,
	"elided":                    FlagElided,
	"appositive":                FlagAppositive,
	"suppressed_complementiser": FlagSuppressedComplementiser,
	"comparative":               FlagComparative,
	"superlative":               FlagSuperlative,
	"reflexive":                 FlagReflexive,
	"detached":                  FlagDetached,
	"raised":                    FlagRaised,
	"raise_specifier":           FlagRaiseSpecifier,
	"aggregate_auxiliary":       FlagAggregateAuxiliary,
	"proper":                    FlagProper,
	"preposed":                  FlagPreposed,
	"aspirated_h":               FlagAspiratedH,
	"repeated":                  FlagRepeated,
	"copular":                   FlagCopular,
	"etre_auxiliary":            FlagEtreAuxiliary,
	"double_consonant":          FlagDoubleConsonant,
	"non_morph":                 FlagNonMorph,
	"punctuation":               FlagPunctuation,
	"before_premodified":        FlagBeforePremodified,
	"clitic":                    FlagClitic,
	"enclitic":                  FlagEnclitic,
	"plural_only":               FlagPluralOnly,
	"invariant":                 FlagInvariant,
	"intransitive":              FlagIntransitive,
	"reflexive_verb":            FlagReflexiveVerb,
	"qualitative":               FlagQualitative,
	"colour":                    FlagColour,
	"classifying":               FlagClassifying,
}

// ParseFlag returns the flag named s.
func ParseFlag(s string) (Flag, bool) {
	f, ok := flagNames[s]
	return f, ok
}

// Features is the feature store carried by every element.
//
// Closed feature domains are typed fields; client-specific features go in
// Extra. The zero value is a valid, fully defaulted feature set.
type Features struct {
	Tense         Tense
	Form          Form
	Number        Number
	Person        Person
	Gender        Gender
	Interrogative InterrogativeType
	Function      DiscourseFunction
	Status        ClauseStatus
	// Relative is the function of the relativised constituent when the
	// clause is a relative clause.
	Relative DiscourseFunction
	Flags    Flag

	Modal          string
	Complementiser string
	Conjunction    string
	Particle       string
	// Negation replaces the default second negation word ("pas").
	Negation string
	// Preposition governs the relativised constituent of a relative clause.
	Preposition string

	Extra map[string]any
}

// Has reports whether every flag in f is set.
func (fs *Features) Has(f Flag) bool {
	return fs.Flags&f == f
}

// Set turns the flags in f on or off.
func (fs *Features) Set(f Flag, on bool) {
	if on {
		fs.Flags |= f
	} else {
		fs.Flags &^= f
	}
}

// Get returns the extension feature stored under key.
func (fs *Features) Get(key string) (any, bool) {
	v, ok := fs.Extra[key]
	return v, ok
}

// Put stores an extension feature.
func (fs *Features) Put(key string, v any) {
	if fs.Extra == nil {
		fs.Extra = make(map[string]any)
	}
	fs.Extra[key] = v
}

// Clone returns a deep copy of fs.
func (fs Features) Clone() Features {
	if fs.Extra != nil {
		fs.Extra = maps.Clone(fs.Extra)
	}
	return fs
}

// agreement is the gender/number/person context threaded through the
// syntax stage in place of ancestor lookups.
type agreement struct {
	Gender Gender
	Number Number
	Person Person
}

func agreementOf(fs *Features) agreement {
	return agreement{Gender: fs.Gender, Number: fs.Number, Person: fs.Person}
}

// apply copies the set fields of a onto fs.
func (a agreement) apply(fs *Features) {
	if a.Gender != GenderUnset {
		fs.Gender = a.Gender
	}
	if a.Number != NumberUnset {
		fs.Number = a.Number
	}
	if a.Person != PersonUnset {
		fs.Person = a.Person
	}
}
