// Package nlg realises English and French sentences from abstract
// specifications: noun phrases, clauses and coordinations carrying
// grammatical features are turned into inflected, correctly punctuated
// text by a four-stage pipeline (syntax, morphology, morphophonology,
// orthography).
package nlg

import (
	"fmt"
	"io"
	"log/slog"
)

// Realiser holds the grammars and lexicons and realises specification
// trees. It has no mutable state after New and is safe for concurrent use.
type Realiser struct {
	registry  *Registry
	lang      Language
	lexicons  map[Language]Lexicon
	defaults  map[Language]LanguageDefaults
	paradigms *Paradigms
	log       *slog.Logger
}

// Option configures a Realiser.
type Option func(*Realiser)

// WithRegistry replaces the default English and French grammars.
func WithRegistry(reg *Registry) Option {
	return func(r *Realiser) { r.registry = reg }
}

// WithLexicon sets the lexicon used for its language.
func WithLexicon(lex Lexicon) Option {
	return func(r *Realiser) { r.lexicons[lex.Language()] = lex }
}

// WithLanguage sets the language of elements that do not carry one.
func WithLanguage(lang Language) Option {
	return func(r *Realiser) { r.lang = lang }
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(r *Realiser) { r.log = log }
}

// New returns a realiser. Languages without an explicit lexicon use the
// built-in one, or an empty lexicon when there is none.
func New(opts ...Option) (*Realiser, error) {
	r := &Realiser{
		lang:     English,
		lexicons: make(map[Language]Lexicon),
		defaults: make(map[Language]LanguageDefaults),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = DefaultRegistry()
	}
	if _, err := r.registry.Grammar(r.lang); err != nil {
		return nil, fmt.Errorf("default language: %w", err)
	}
	p, err := FrenchParadigms()
	if err != nil {
		return nil, fmt.Errorf("load conjugation models: %w", err)
	}
	r.paradigms = p

	for _, lang := range r.registry.Languages() {
		if _, ok := r.lexicons[lang]; !ok {
			lex, err := DefaultLexicon(lang)
			if err != nil {
				r.log.Debug("no built-in lexicon", "language", lang, "error", err)
				lex, _ = NewMemoryLexicon(lang, Defaults(lang))
			}
			r.lexicons[lang] = lex
		}
		r.defaults[lang] = defaultsOf(r.lexicons[lang], lang)
	}
	return r, nil
}

// grammarFor returns the grammar of lang, falling back on the default
// language for elements without a registered one.
func (r *Realiser) grammarFor(lang Language) *Grammar {
	if g, err := r.registry.Grammar(lang); err == nil {
		return g
	}
	if lang != "" {
		r.log.Debug("no grammar, using default", "language", lang, "default", r.lang)
	}
	g, _ := r.registry.Grammar(r.lang)
	return g
}

// Lexicon returns the lexicon of lang, or the default language's one.
func (r *Realiser) Lexicon(lang Language) Lexicon {
	if lex, ok := r.lexicons[lang]; ok {
		return lex
	}
	return r.lexicons[r.lang]
}

// Defaults returns the function words of lang.
func (r *Realiser) Defaults(lang Language) LanguageDefaults {
	if d, ok := r.defaults[lang]; ok {
		return d
	}
	return Defaults(lang)
}

// Registry returns the grammars the realiser dispatches to.
func (r *Realiser) Registry() *Registry {
	return r.registry
}

// Language returns the default language.
func (r *Realiser) Language() Language {
	return r.lang
}

// Factory returns a builder bound to the lexicon of lang.
func (r *Realiser) Factory(lang Language) *Factory {
	return NewFactory(r.Lexicon(lang))
}

// Realise runs the four stages on el and returns the resulting fragment.
// el is not modified.
func (r *Realiser) Realise(el Element) *Text {
	if el == nil {
		return NewText("", r.lang)
	}
	syn := (&syntaxer{r: r}).realise(el, agreement{})
	morph := (&morpher{r: r}).realise(syn)
	r.adjustLeaves(morph)
	return (&orthographer{r: r}).realise(morph)
}

// RealiseString realises el as a string.
func (r *Realiser) RealiseString(el Element) string {
	return r.Realise(el).Value
}

// RealiseSentence realises el as a sentence: capitalised and closed by a
// full stop, or a question mark for questions.
func (r *Realiser) RealiseSentence(el Element) string {
	if el == nil {
		return ""
	}
	if d, ok := el.(*Document); ok && d.Category() == CatSentence {
		return r.RealiseString(d)
	}
	lang := el.Language()
	if lang == "" {
		lang = r.lang
	}
	// the wrapper does not adopt el
	s := &Document{node: node{cat: CatSentence, lang: lang}, Components: []Element{el}}
	return r.RealiseString(s)
}

// Conjugate returns every form of a verb in its language. The word is
// looked up in the lexicon when it carries no forms of its own.
func (r *Realiser) Conjugate(w *Word) (*InflectionTable, error) {
	if w == nil {
		return nil, fmt.Errorf("conjugate: no verb")
	}
	lang := w.Language()
	if lang == "" {
		lang = r.lang
	}
	if _, err := r.registry.Grammar(lang); err != nil {
		return nil, fmt.Errorf("conjugate %q: %w", w.Base, err)
	}
	if w.Forms == nil && w.ID == "" {
		if lw := r.Lexicon(lang).Lookup(w.Base, CatVerb); !lw.Synthesised {
			w = lw
		}
	}
	if w.Language() == "" {
		c := w.shallowClone().(*Word)
		c.SetLanguage(lang)
		w = c
	}
	return (&morpher{r: r}).conjugate(w), nil
}
