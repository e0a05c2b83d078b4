package nlg

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Element is a node of a specification or realisation tree.
//
// The set of implementations is closed: *Word, *InflectedWord, *Text,
// *Phrase, *Coordination, *List and *Document.
type Element interface {
	// Category is fixed at construction.
	Category() Category
	// Features returns the mutable feature store of the node.
	Features() *Features
	// Language selects the grammar used to realise the node.
	Language() Language
	// Parent is a navigation backlink and never owns the node.
	Parent() Element

	setParent(Element)
	shallowClone() Element
}

// node holds the state shared by every element kind.
type node struct {
	cat    Category
	feats  Features
	lang   Language
	parent Element
}

func (n *node) Category() Category { return n.cat }
func (n *node) Features() *Features { return &n.feats }
func (n *node) Language() Language { return n.lang }
func (n *node) Parent() Element { return n.parent }
func (n *node) setParent(p Element) { n.parent = p }
func (n *node) cloneNode() node { return node{cat: n.cat, feats: n.feats.Clone(), lang: n.lang} }
func (n *node) SetLanguage(l Language) { n.lang = l }

// Word is a lexicon entry.
type Word struct {
	node
	// Base is the citation form (infinitive, singular, masculine).
	Base string
	// ID is the lexicon identifier, empty for synthesised entries.
	ID string
	// Forms holds irregular or explicit inflected forms keyed by cell name
	// ("plural", "past", "feminine", "present1s", ...).
	Forms map[string]string
	// Variants lists alternative spellings of the base form.
	Variants []string
	// Synthesised marks entries made up for words the lexicon lacks.
	Synthesised bool
}

// NewWord returns a word entry with no lexical features.
func NewWord(base string, cat Category, lang Language) *Word {
	return &Word{node: node{cat: cat, lang: lang}, Base: base}
}

// Form returns the explicit form stored under key.
func (w *Word) Form(key string) (string, bool) {
	if w == nil {
		return "", false
	}
	f, ok := w.Forms[key]
	return f, ok && f != ""
}

// SetForm records an explicit inflected form.
func (w *Word) SetForm(key, form string) {
	if w.Forms == nil {
		w.Forms = make(map[string]string)
	}
	w.Forms[key] = form
}

func (w *Word) shallowClone() Element {
	c := &Word{node: w.cloneNode(), Base: w.Base, ID: w.ID, Variants: slices.Clone(w.Variants), Synthesised: w.Synthesised}
	c.Forms = maps.Clone(w.Forms)
	return c
}

func (w *Word) String() string {
	return fmt.Sprintf("%s[%s]", w.Base, w.cat)
}

// InflectedWord is a word entry in context: the unit the morphology stage
// consumes.
type InflectedWord struct {
	node
	Word *Word
	// Forms overrides the word's lexical forms for this instance only.
	Forms map[string]string
}

// Inflect wraps w in a new inflected instance carrying w's lexical features.
func Inflect(w *Word) *InflectedWord {
	return &InflectedWord{node: node{cat: w.cat, feats: w.feats.Clone(), lang: w.lang}, Word: w}
}

// Base returns the citation form of the underlying word.
func (iw *InflectedWord) Base() string {
	if iw.Word == nil {
		return ""
	}
	return iw.Word.Base
}

// form resolves key with instance overrides taking precedence over the
// word's lexical forms.
func (iw *InflectedWord) form(key string) (string, bool) {
	if f, ok := iw.Forms[key]; ok && f != "" {
		return f, true
	}
	return iw.Word.Form(key)
}

// SetForm records a per-instance form override.
func (iw *InflectedWord) SetForm(key, form string) {
	if iw.Forms == nil {
		iw.Forms = make(map[string]string)
	}
	iw.Forms[key] = form
}

func (iw *InflectedWord) shallowClone() Element {
	return &InflectedWord{node: iw.cloneNode(), Word: iw.Word, Forms: maps.Clone(iw.Forms)}
}

func (iw *InflectedWord) String() string {
	return fmt.Sprintf("%s<%s>", iw.Base(), iw.cat)
}

// Text is a resolved surface fragment. It has no children.
type Text struct {
	node
	Value string
}

// NewText returns a fragment of category CatCannedText.
func NewText(s string, lang Language) *Text {
	return &Text{node: node{cat: CatCannedText, lang: lang}, Value: s}
}

func newFragment(s string, from Element) *Text {
	t := &Text{Value: s}
	if from != nil {
		t.node = node{cat: from.Category(), feats: from.Features().Clone(), lang: from.Language()}
	}
	return t
}

func (t *Text) shallowClone() Element {
	return &Text{node: t.cloneNode(), Value: t.Value}
}

func (t *Text) String() string { return t.Value }

// Phrase is a phrasal node with role-tagged children. Clauses keep their
// verb phrase as Head.
type Phrase struct {
	node
	Specifier      Element
	Head           Element
	Premodifiers   []Element
	Complements    []Element
	Postmodifiers  []Element
	FrontModifiers []Element
	Subjects       []Element
	Cue            Element
}

// NewPhrase returns an empty phrase of the given category.
func NewPhrase(cat Category, lang Language) *Phrase {
	return &Phrase{node: node{cat: cat, lang: lang}}
}

func (p *Phrase) shallowClone() Element {
	return &Phrase{
		node:           p.cloneNode(),
		Specifier:      p.Specifier,
		Head:           p.Head,
		Premodifiers:   slices.Clone(p.Premodifiers),
		Complements:    slices.Clone(p.Complements),
		Postmodifiers:  slices.Clone(p.Postmodifiers),
		FrontModifiers: slices.Clone(p.FrontModifiers),
		Subjects:       slices.Clone(p.Subjects),
		Cue:            p.Cue,
	}
}

func attach(parent, child Element, fn DiscourseFunction) Element {
	if child == nil {
		return nil
	}
	child.setParent(parent)
	if fn != FunctionNone {
		child.Features().Function = fn
	}
	return child
}

// SetHead sets the head (the verb phrase for clauses).
func (p *Phrase) SetHead(e Element) {
	fn := FunctionHead
	if p.cat == CatClause {
		fn = FunctionVerbPhrase
	}
	p.Head = attach(p, e, fn)
}

// SetSpecifier sets the specifier (determiner or possessor).
func (p *Phrase) SetSpecifier(e Element) {
	p.Specifier = attach(p, e, FunctionSpecifier)
}

// AddPremodifier appends a premodifier.
func (p *Phrase) AddPremodifier(e Element) {
	if e = attach(p, e, FunctionPreModifier); e != nil {
		p.Premodifiers = append(p.Premodifiers, e)
	}
}

// AddPostmodifier appends a postmodifier.
func (p *Phrase) AddPostmodifier(e Element) {
	if e = attach(p, e, FunctionPostModifier); e != nil {
		p.Postmodifiers = append(p.Postmodifiers, e)
	}
}

// AddFrontModifier appends a clause front modifier.
func (p *Phrase) AddFrontModifier(e Element) {
	if e = attach(p, e, FunctionFrontModifier); e != nil {
		p.FrontModifiers = append(p.FrontModifiers, e)
	}
}

// AddComplement appends a complement, keeping a discourse function already
// set on it (object, indirect object).
func (p *Phrase) AddComplement(e Element) {
	if e == nil {
		return
	}
	fn := e.Features().Function
	if fn == FunctionNone {
		fn = FunctionComplement
	}
	p.Complements = append(p.Complements, attach(p, e, fn))
}

// AddSubject appends a clause subject.
func (p *Phrase) AddSubject(e Element) {
	if e = attach(p, e, FunctionSubject); e != nil {
		p.Subjects = append(p.Subjects, e)
	}
}

// SetCue sets the clause cue phrase.
func (p *Phrase) SetCue(e Element) {
	p.Cue = attach(p, e, FunctionCuePhrase)
}

// VerbPhrase returns the verb phrase of a clause, or p itself for a verb
// phrase.
func (p *Phrase) VerbPhrase() *Phrase {
	if p.cat == CatVerbPhrase {
		return p
	}
	vp, _ := p.Head.(*Phrase)
	return vp
}

// complementsWith returns the complements whose discourse function is fn.
func (p *Phrase) complementsWith(fn DiscourseFunction) []Element {
	var out []Element
	for _, c := range p.Complements {
		if c != nil && c.Features().Function == fn {
			out = append(out, c)
		}
	}
	return out
}

// Coordination is a coordinated phrase.
type Coordination struct {
	node
	Coordinates   []Element
	Premodifiers  []Element
	Postmodifiers []Element
	Complements   []Element
}

// NewCoordination coordinates the given elements. The conjunction defaults
// to the language's addition conjunction.
func NewCoordination(lang Language, coords ...Element) *Coordination {
	c := &Coordination{node: node{cat: CatCoordination, lang: lang}}
	for _, e := range coords {
		c.AddCoordinate(e)
	}
	return c
}

// AddCoordinate appends a coordinate.
func (c *Coordination) AddCoordinate(e Element) {
	if e == nil {
		return
	}
	e.setParent(c)
	c.Coordinates = append(c.Coordinates, e)
}

func (c *Coordination) shallowClone() Element {
	return &Coordination{
		node:          c.cloneNode(),
		Coordinates:   slices.Clone(c.Coordinates),
		Premodifiers:  slices.Clone(c.Premodifiers),
		Postmodifiers: slices.Clone(c.Postmodifiers),
		Complements:   slices.Clone(c.Complements),
	}
}

// List is the ordered output of the syntax stage. Its category records
// the phrase it was realised from.
type List struct {
	node
	Items []Element
}

func newList(from Element) *List {
	l := &List{}
	if from != nil {
		l.node = node{cat: from.Category(), feats: from.Features().Clone(), lang: from.Language()}
	}
	return l
}

// NewList returns an empty list node of category CatList.
func NewList(lang Language, items ...Element) *List {
	l := &List{node: node{cat: CatList, lang: lang}}
	for _, e := range items {
		l.Add(e)
	}
	return l
}

// Add appends e, flattening nothing. Nil elements are dropped.
func (l *List) Add(e Element) {
	if e == nil {
		return
	}
	l.Items = append(l.Items, e)
}

func (l *List) shallowClone() Element {
	return &List{node: l.cloneNode(), Items: slices.Clone(l.Items)}
}

// Document is a document structure node: document, section, paragraph,
// sentence, list or list item.
type Document struct {
	node
	Title      string
	Components []Element
}

// NewDocument returns a document node of the given category.
func NewDocument(cat Category, lang Language, components ...Element) *Document {
	d := &Document{node: node{cat: cat, lang: lang}}
	for _, c := range components {
		d.Add(c)
	}
	return d
}

// Add appends a component.
func (d *Document) Add(e Element) {
	if e == nil {
		return
	}
	e.setParent(d)
	d.Components = append(d.Components, e)
}

func (d *Document) shallowClone() Element {
	return &Document{node: d.cloneNode(), Title: d.Title, Components: slices.Clone(d.Components)}
}

// Leaves returns the fragments of a realised tree in order.
func Leaves(e Element) []*Text {
	var out []*Text
	var walk func(Element)
	walk = func(e Element) {
		switch el := e.(type) {
		case *Text:
			out = append(out, el)
		case *List:
			for _, c := range el.Items {
				walk(c)
			}
		case *Document:
			for _, c := range el.Components {
				walk(c)
			}
		}
	}
	walk(e)
	return out
}

// baseOf returns a lowercase citation form for words and fragments.
func baseOf(e Element) string {
	switch el := e.(type) {
	case *Word:
		return strings.ToLower(el.Base)
	case *InflectedWord:
		return strings.ToLower(el.Base())
	case *Text:
		return strings.ToLower(el.Value)
	}
	return ""
}

// headWord returns the lexical head of e, descending through phrases.
func headWord(e Element) *Word {
	switch el := e.(type) {
	case *Word:
		return el
	case *InflectedWord:
		return el.Word
	case *Phrase:
		if el.Head != nil {
			return headWord(el.Head)
		}
	case *Coordination:
		if len(el.Coordinates) > 0 {
			return headWord(el.Coordinates[0])
		}
	}
	return nil
}

// isEmpty reports whether e renders nothing.
func isEmpty(e Element) bool {
	switch el := e.(type) {
	case nil:
		return true
	case *Text:
		return el.Value == ""
	case *List:
		for _, c := range el.Items {
			if !isEmpty(c) {
				return false
			}
		}
		return true
	case *Document:
		for _, c := range el.Components {
			if !isEmpty(c) {
				return false
			}
		}
		return true
	}
	return false
}
