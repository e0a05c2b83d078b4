package nlg

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexdata
var lexdata embed.FS

// Lexicon is the dictionary the realiser consults. Lookups never fail: an
// unknown base form yields a synthesised entry.
type Lexicon interface {
	Language() Language
	// Lookup returns the entry for a base form in the given category.
	// CatAny matches any category.
	Lookup(base string, cat Category) *Word
	// LookupByVariant returns the entry an inflected or variant form
	// belongs to.
	LookupByVariant(form string, cat Category) *Word
	// LookupByID returns the entry with the given identifier, or nil.
	LookupByID(id string) *Word
	// LookupByFeatures returns the entry of cat that best matches q.
	LookupByFeatures(cat Category, q WordQuery) (*Word, bool)
	Close() error
}

// WordQuery constrains a feature lookup. Zero fields are unconstrained.
type WordQuery struct {
	Person   Person
	Number   Number
	Gender   Gender
	Function DiscourseFunction
	// Flags must all be set on the entry; the pronoun flags (reflexive,
	// detached, possessive) must moreover match exactly.
	Flags Flag
}

// pronounFlags distinguish entries of the pronoun lattice.
const pronounFlags = FlagReflexive | FlagDetached | FlagPossessive

// Matches reports whether w satisfies q, and how many constraints it meets
// exactly rather than by leaving the feature unset.
func (q WordQuery) Matches(w *Word) (bool, int) {
	feats := w.Features()
	score := 0
	if q.Flags&^pronounFlags != 0 && !feats.Has(q.Flags&^pronounFlags) {
		return false, 0
	}
	if feats.Flags&pronounFlags != q.Flags&pronounFlags {
		return false, 0
	}
	if q.Person != PersonUnset {
		switch feats.Person {
		case q.Person.Effective():
			score++
		case PersonUnset:
		default:
			return false, 0
		}
	}
	if q.Number != NumberUnset {
		want := NumberSingular
		if q.Number.IsPlural() {
			want = NumberPlural
		}
		switch feats.Number {
		case want, NumberBoth:
			score++
		case NumberUnset:
		default:
			return false, 0
		}
	}
	if q.Gender != GenderUnset {
		switch feats.Gender {
		case q.Gender:
			score++
		case GenderUnset:
		default:
			return false, 0
		}
	}
	if q.Function != FunctionNone {
		switch feats.Function {
		case q.Function:
			score++
		case FunctionNone:
		default:
			return false, 0
		}
	}
	return true, score
}

// LanguageDefaults are the function words a grammar falls back on.
type LanguageDefaults struct {
	Conjunction            string `yaml:"conjunction" json:"conjunction"`
	PassivePreposition     string `yaml:"passive_preposition" json:"passive_preposition"`
	Complementiser         string `yaml:"complementiser" json:"complementiser"`
	RelativeComplementiser string `yaml:"relative_complementiser" json:"relative_complementiser"`
}

var builtinDefaults = map[Language]LanguageDefaults{
	English: {Conjunction: "and", PassivePreposition: "by", Complementiser: "that", RelativeComplementiser: "that"},
	French:  {Conjunction: "et", PassivePreposition: "par", Complementiser: "que", RelativeComplementiser: "que"},
}

// Defaults returns the built-in function words of lang, falling back on
// English for languages without an entry.
func Defaults(lang Language) LanguageDefaults {
	if d, ok := builtinDefaults[lang]; ok {
		return d
	}
	return builtinDefaults[English]
}

// defaultsOf returns the defaults a lexicon declares, completed from the
// built-in table.
func defaultsOf(lex Lexicon, lang Language) LanguageDefaults {
	d := Defaults(lang)
	src, ok := lex.(interface{ Defaults() LanguageDefaults })
	if !ok {
		return d
	}
	own := src.Defaults()
	if own.Conjunction != "" {
		d.Conjunction = own.Conjunction
	}
	if own.PassivePreposition != "" {
		d.PassivePreposition = own.PassivePreposition
	}
	if own.Complementiser != "" {
		d.Complementiser = own.Complementiser
	}
	if own.RelativeComplementiser != "" {
		d.RelativeComplementiser = own.RelativeComplementiser
	}
	return d
}

// Entry is the serialised form of a lexicon entry.
type Entry struct {
	ID       string            `yaml:"id,omitempty" json:"id,omitempty"`
	Base     string            `yaml:"base" json:"base"`
	Category string            `yaml:"category" json:"category"`
	Gender   string            `yaml:"gender,omitempty" json:"gender,omitempty"`
	Number   string            `yaml:"number,omitempty" json:"number,omitempty"`
	Person   string            `yaml:"person,omitempty" json:"person,omitempty"`
	Function string            `yaml:"function,omitempty" json:"function,omitempty"`
	Model    string            `yaml:"model,omitempty" json:"model,omitempty"`
	Flags    []string          `yaml:"flags,omitempty" json:"flags,omitempty"`
	Forms    map[string]string `yaml:"forms,omitempty" json:"forms,omitempty"`
	Variants []string          `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// Word converts e into a lexicon word of language lang.
func (e Entry) Word(lang Language) (*Word, error) {
	cat, ok := ParseCategory(e.Category)
	if !ok || !cat.IsLexical() {
		return nil, fmt.Errorf("entry %q: unknown category %q", e.Base, e.Category)
	}
	w := NewWord(e.Base, cat, lang)
	w.ID = e.ID
	feats := w.Features()
	if e.Gender != "" {
		if feats.Gender, ok = ParseGender(e.Gender); !ok {
			return nil, fmt.Errorf("entry %q: unknown gender %q", e.Base, e.Gender)
		}
	}
	if e.Number != "" {
		if feats.Number, ok = ParseNumber(e.Number); !ok {
			return nil, fmt.Errorf("entry %q: unknown number %q", e.Base, e.Number)
		}
	}
	if e.Person != "" {
		if feats.Person, ok = ParsePerson(e.Person); !ok {
			return nil, fmt.Errorf("entry %q: unknown person %q", e.Base, e.Person)
		}
	}
	if e.Function != "" {
		if feats.Function, ok = ParseFunction(e.Function); !ok {
			return nil, fmt.Errorf("entry %q: unknown function %q", e.Base, e.Function)
		}
	}
	for _, name := range e.Flags {
		f, ok := ParseFlag(name)
		if !ok {
			return nil, fmt.Errorf("entry %q: unknown flag %q", e.Base, name)
		}
		feats.Set(f, true)
	}
	for k, v := range e.Forms {
		w.SetForm(k, v)
	}
	if e.Model != "" {
		w.SetForm("model", e.Model)
	}
	w.Variants = append(w.Variants, e.Variants...)
	return w, nil
}

// EntryOf is the inverse of Entry.Word.
func EntryOf(w *Word) Entry {
	feats := w.Features()
	e := Entry{ID: w.ID, Base: w.Base, Category: w.Category().String(), Variants: w.Variants}
	if feats.Gender != GenderUnset {
		e.Gender = feats.Gender.String()
	}
	if feats.Number != NumberUnset {
		e.Number = feats.Number.String()
	}
	if feats.Person != PersonUnset {
		e.Person = feats.Person.String()
	}
	if feats.Function != FunctionNone {
		e.Function = feats.Function.String()
	}
	for name, f := range flagNames {
		if feats.Has(f) {
			e.Flags = append(e.Flags, name)
		}
	}
	slices.Sort(e.Flags)
	for k, v := range w.Forms {
		if k == "model" {
			e.Model = v
			continue
		}
		if e.Forms == nil {
			e.Forms = make(map[string]string)
		}
		e.Forms[k] = v
	}
	return e
}

// LexiconFile is the YAML document a lexicon is loaded from.
type LexiconFile struct {
	Language Language         `yaml:"language"`
	Defaults LanguageDefaults `yaml:"defaults"`
	Words    []Entry          `yaml:"words"`
}

// ParseLexiconFile decodes a YAML lexicon document.
func ParseLexiconFile(r io.Reader) (*LexiconFile, error) {
	var lf LexiconFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if lf.Language == "" {
		return nil, fmt.Errorf("decode lexicon: missing language")
	}
	return &lf, nil
}

// MemoryLexicon is an in-memory lexicon. It is read-only once built and
// safe for concurrent lookups.
type MemoryLexicon struct {
	lang      Language
	defaults  LanguageDefaults
	words     []*Word
	byBase    map[string][]*Word
	byID      map[string]*Word
	byVariant map[string][]*Word
	// analyser resolves inflected French verb forms.
	analyser *Analyser
}

// NewMemoryLexicon indexes words for lang.
func NewMemoryLexicon(lang Language, defaults LanguageDefaults, words ...*Word) (*MemoryLexicon, error) {
	l := &MemoryLexicon{
		lang:      lang,
		defaults:  defaults,
		byBase:    make(map[string][]*Word),
		byID:      make(map[string]*Word),
		byVariant: make(map[string][]*Word),
	}
	if lang == French {
		p, err := FrenchParadigms()
		if err != nil {
			return nil, err
		}
		l.analyser = NewAnalyser(p, nil)
	}
	for _, w := range words {
		l.add(w)
	}
	return l, nil
}

func (l *MemoryLexicon) add(w *Word) {
	w.SetLanguage(l.lang)
	l.words = append(l.words, w)
	key := NormalizeKey(w.Base)
	l.byBase[key] = append(l.byBase[key], w)
	if w.ID != "" {
		l.byID[w.ID] = w
	}
	index := func(s string) {
		for _, f := range strings.Split(s, ",") {
			if f = NormalizeKey(strings.TrimPrefix(f, "+")); f != "" && f != key {
				l.byVariant[f] = append(l.byVariant[f], w)
			}
		}
	}
	for _, v := range w.Variants {
		index(v)
	}
	for k, f := range w.Forms {
		if k == "model" || strings.HasPrefix(k, "radical") {
			continue
		}
		index(f)
	}
	if l.analyser != nil && w.Category() == CatVerb {
		l.analyser.Add(w)
	}
}

// LoadLexicon reads a YAML lexicon.
func LoadLexicon(r io.Reader) (*MemoryLexicon, error) {
	lf, err := ParseLexiconFile(r)
	if err != nil {
		return nil, err
	}
	words := make([]*Word, 0, len(lf.Words))
	for _, e := range lf.Words {
		w, err := e.Word(lf.Language)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return NewMemoryLexicon(lf.Language, lf.Defaults, words...)
}

// LoadLexiconFS reads a YAML lexicon from fsys.
func LoadLexiconFS(fsys fs.FS, path string) (*MemoryLexicon, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	lex, err := LoadLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

type embeddedLexicon struct {
	path string
	once sync.Once
	lex  *MemoryLexicon
	err  error
}

var embeddedLexicons = map[Language]*embeddedLexicon{
	English: {path: "lexdata/english.yaml"},
	French:  {path: "lexdata/french.yaml"},
}

// DefaultLexicon returns the built-in lexicon of lang. It is loaded once
// and shared.
func DefaultLexicon(lang Language) (*MemoryLexicon, error) {
	e, ok := embeddedLexicons[lang]
	if !ok {
		return nil, fmt.Errorf("default lexicon %q: %w", lang, ErrUnsupportedLanguage)
	}
	e.once.Do(func() {
		e.lex, e.err = LoadLexiconFS(lexdata, e.path)
	})
	return e.lex, e.err
}

// Language returns the language of the entries.
func (l *MemoryLexicon) Language() Language { return l.lang }

// Defaults returns the function words declared by the lexicon file.
func (l *MemoryLexicon) Defaults() LanguageDefaults { return l.defaults }

// Words returns every entry in load order.
func (l *MemoryLexicon) Words() []*Word { return l.words }

// Lookup returns the first entry for base in cat, or a synthesised entry.
func (l *MemoryLexicon) Lookup(base string, cat Category) *Word {
	if w := pick(l.byBase[NormalizeKey(base)], cat); w != nil {
		return w
	}
	return l.synthesise(base, cat)
}

// LookupByVariant resolves an inflected or variant form: recorded forms
// first, then verb analysis, then base forms.
func (l *MemoryLexicon) LookupByVariant(form string, cat Category) *Word {
	key := NormalizeKey(form)
	if w := pick(l.byVariant[key], cat); w != nil {
		return w
	}
	if l.analyser != nil && (cat == CatAny || cat == CatVerb) {
		if lemmas := l.analyser.Lemmatize(key); len(lemmas) > 0 {
			return lemmas[0].Word
		}
	}
	return l.Lookup(form, cat)
}

// LookupByID returns the entry with the given identifier, or nil.
func (l *MemoryLexicon) LookupByID(id string) *Word {
	return l.byID[id]
}

// LookupByFeatures returns the entry of cat meeting the most constraints
// of q; ties go to the entry loaded first.
func (l *MemoryLexicon) LookupByFeatures(cat Category, q WordQuery) (*Word, bool) {
	return bestMatch(l.words, cat, q)
}

// Close is a no-op.
func (l *MemoryLexicon) Close() error { return nil }

// Analyse returns the readings of an inflected verb form. Only French
// lexicons analyse forms.
func (l *MemoryLexicon) Analyse(form string) []Analysis {
	if l.analyser == nil {
		return nil
	}
	return l.analyser.Analyse(form)
}

func (l *MemoryLexicon) synthesise(base string, cat Category) *Word {
	w := NewWord(base, cat, l.lang)
	w.Synthesised = true
	return w
}

// pick returns the first word of category cat.
func pick(ws []*Word, cat Category) *Word {
	for _, w := range ws {
		if cat == CatAny || w.Category() == cat {
			return w
		}
	}
	return nil
}

// bestMatch scans ws for the entry of cat meeting the most constraints of q.
func bestMatch(ws []*Word, cat Category, q WordQuery) (*Word, bool) {
	var best *Word
	bestScore := -1
	for _, w := range ws {
		if cat != CatAny && w.Category() != cat {
			continue
		}
		if ok, score := q.Matches(w); ok && score > bestScore {
			best, bestScore = w, score
		}
	}
	return best, best != nil
}
