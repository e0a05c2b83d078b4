package nlg

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

var (
	// ErrUnsupportedLanguage is returned when no grammar is registered for
	// a language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrIncompleteGrammar is returned when a grammar lacks the rules of
	// one of the pipeline stages.
	ErrIncompleteGrammar = errors.New("incomplete grammar")
)

// SyntaxRules realises phrases into ordered word sequences.
type SyntaxRules interface {
	nounPhrase(s *syntaxer, np *Phrase, ag agreement) Element
	verbPhrase(s *syntaxer, vp *Phrase, ag agreement) Element
	clause(s *syntaxer, c *Phrase, ag agreement) Element
	coordination(s *syntaxer, c *Coordination, ag agreement) Element
	// phrase covers prepositional, adjective and adverb phrases.
	phrase(s *syntaxer, p *Phrase, ag agreement) Element
}

// MorphologyRules inflects word instances.
type MorphologyRules interface {
	inflect(m *morpher, w *InflectedWord) string
	conjugate(m *morpher, w *Word) *InflectionTable
}

// MorphophonologyRules adjusts two adjacent fragments.
type MorphophonologyRules interface {
	adjust(left, right *Text)
}

// OrthographyRules decides the separator between two rendered siblings.
type OrthographyRules interface {
	separator(list *List, left, right Element) string
}

// Grammar bundles the rules of every stage for one language.
type Grammar struct {
	Language        Language
	Syntax          SyntaxRules
	Morphology      MorphologyRules
	Morphophonology MorphophonologyRules
	Orthography     OrthographyRules
}

// validate reports a missing stage.
func (g *Grammar) validate() error {
	switch {
	case g.Language == "":
		return fmt.Errorf("grammar without language: %w", ErrIncompleteGrammar)
	case g.Syntax == nil:
		return fmt.Errorf("%s: no syntax rules: %w", g.Language, ErrIncompleteGrammar)
	case g.Morphology == nil:
		return fmt.Errorf("%s: no morphology rules: %w", g.Language, ErrIncompleteGrammar)
	case g.Morphophonology == nil:
		return fmt.Errorf("%s: no morphophonology rules: %w", g.Language, ErrIncompleteGrammar)
	case g.Orthography == nil:
		return fmt.Errorf("%s: no orthography rules: %w", g.Language, ErrIncompleteGrammar)
	}
	return nil
}

// Registry resolves the grammar of a language. It is immutable once built
// and safe for concurrent use.
type Registry struct {
	grammars map[Language]*Grammar
	order    []Language
	matcher  language.Matcher
}

// NewRegistry checks every grammar and indexes it by language.
func NewRegistry(grammars ...*Grammar) (*Registry, error) {
	r := &Registry{grammars: make(map[Language]*Grammar)}
	var tags []language.Tag
	for _, g := range grammars {
		if g == nil {
			continue
		}
		if err := g.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.grammars[g.Language]; dup {
			return nil, fmt.Errorf("grammar %s registered twice", g.Language)
		}
		r.grammars[g.Language] = g
		r.order = append(r.order, g.Language)
		tags = append(tags, languageTag(g.Language))
	}
	if len(r.grammars) == 0 {
		return nil, fmt.Errorf("empty registry: %w", ErrIncompleteGrammar)
	}
	r.matcher = language.NewMatcher(tags)
	return r, nil
}

// DefaultRegistry returns a registry with the English and French grammars.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(EnglishGrammar(), FrenchGrammar())
	if err != nil {
		panic(err)
	}
	return r
}

// Grammar returns the grammar registered for lang.
func (r *Registry) Grammar(lang Language) (*Grammar, error) {
	if g, ok := r.grammars[lang]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("grammar %q: %w", lang, ErrUnsupportedLanguage)
}

// Languages lists the registered languages in registration order.
func (r *Registry) Languages() []Language {
	return slices.Clone(r.order)
}

// Resolve maps a BCP 47 tag such as "fr-CA" onto a registered language.
func (r *Registry) Resolve(tag string) (Language, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("language tag %q: %w", tag, err)
	}
	_, idx, conf := r.matcher.Match(t)
	if conf == language.No {
		return "", fmt.Errorf("language tag %q: %w", tag, ErrUnsupportedLanguage)
	}
	return r.order[idx], nil
}

// EnglishGrammar returns the English rules.
func EnglishGrammar() *Grammar {
	return &Grammar{
		Language:        English,
		Syntax:          englishSyntax{},
		Morphology:      englishMorphology{},
		Morphophonology: englishMorphophonology{},
		Orthography:     englishOrthography{},
	}
}

// FrenchGrammar returns the French rules.
func FrenchGrammar() *Grammar {
	return &Grammar{
		Language:        French,
		Syntax:          frenchSyntax{},
		Morphology:      frenchMorphology{},
		Morphophonology: frenchMorphophonology{},
		Orthography:     frenchOrthography{},
	}
}
