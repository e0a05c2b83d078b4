package nlg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrBadSpec is returned for specification documents that cannot be built.
var ErrBadSpec = errors.New("bad specification")

// SpecNode is the serialised form of a specification tree, as read from
// JSON or YAML documents.
//
// Type is a category name ("np", "clause", "sentence", ...), "word" or
// "text". Word nodes whose Category is empty take the category their
// slot expects: the head of a noun phrase is a noun, the head of a verb
// phrase a verb, a specifier a determiner.
type SpecNode struct {
	Type     string `json:"type" yaml:"type"`
	Lang     string `json:"lang,omitempty" yaml:"lang,omitempty"`
	Base     string `json:"base,omitempty" yaml:"base,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`

	Specifier      *SpecNode   `json:"specifier,omitempty" yaml:"specifier,omitempty"`
	Head           *SpecNode   `json:"head,omitempty" yaml:"head,omitempty"`
	Subjects       []*SpecNode `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Object         *SpecNode   `json:"object,omitempty" yaml:"object,omitempty"`
	IndirectObject *SpecNode   `json:"indirect_object,omitempty" yaml:"indirect_object,omitempty"`
	Complements    []*SpecNode `json:"complements,omitempty" yaml:"complements,omitempty"`
	Modifiers      []*SpecNode `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Premodifiers   []*SpecNode `json:"premodifiers,omitempty" yaml:"premodifiers,omitempty"`
	Postmodifiers  []*SpecNode `json:"postmodifiers,omitempty" yaml:"postmodifiers,omitempty"`
	FrontModifiers []*SpecNode `json:"front_modifiers,omitempty" yaml:"front_modifiers,omitempty"`
	Cue            *SpecNode   `json:"cue,omitempty" yaml:"cue,omitempty"`
	Coordinates    []*SpecNode `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Components     []*SpecNode `json:"components,omitempty" yaml:"components,omitempty"`

	Features map[string]any `json:"features,omitempty" yaml:"features,omitempty"`
}

// ParseSpec decodes a specification document. Documents starting with '{'
// are read as JSON, anything else as YAML.
func ParseSpec(data []byte) (*SpecNode, error) {
	var n SpecNode
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrBadSpec)
	}
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &n); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &n, nil
}

// Build turns a specification document into an element tree. Nodes
// without a language inherit their parent's, and the root defaults to the
// realiser's language.
func (r *Realiser) Build(n *SpecNode) (Element, error) {
	if n == nil {
		return nil, fmt.Errorf("no root node: %w", ErrBadSpec)
	}
	return (&specBuilder{r: r}).build(n, r.lang, CatAny)
}

// RealiseSpec builds and realises a document. Clauses and phrases at the
// root are realised as sentences.
func (r *Realiser) RealiseSpec(n *SpecNode) (string, error) {
	el, err := r.Build(n)
	if err != nil {
		return "", err
	}
	if el.Category().IsDocument() || el.Category() == CatCannedText {
		return r.RealiseString(el), nil
	}
	return r.RealiseSentence(el), nil
}

type specBuilder struct {
	r *Realiser
}

func (b *specBuilder) language(n *SpecNode, inherited Language) (Language, error) {
	if n.Lang == "" {
		return inherited, nil
	}
	lang, err := b.r.registry.Resolve(n.Lang)
	if err != nil {
		return "", err
	}
	return lang, nil
}

// build decodes n; slot is the category a bare word defaults to.
func (b *specBuilder) build(n *SpecNode, inherited Language, slot Category) (Element, error) {
	lang, err := b.language(n, inherited)
	if err != nil {
		return nil, err
	}
	f := b.r.Factory(lang)

	var el Element
	switch typ := strings.ToLower(strings.TrimSpace(n.Type)); typ {
	case "word", "":
		if n.Base == "" {
			return nil, fmt.Errorf("word without base: %w", ErrBadSpec)
		}
		cat := slot
		if n.Category != "" {
			c, ok := ParseCategory(n.Category)
			if !ok || !c.IsLexical() {
				return nil, fmt.Errorf("word %q: category %q: %w", n.Base, n.Category, ErrBadSpec)
			}
			cat = c
		}
		el = f.Word(n.Base, cat)
	case "text", "canned", "canned_text":
		s := n.Text
		if s == "" {
			s = n.Base
		}
		el = f.Canned(s)
	case "item", "list_item":
		d := NewDocument(CatListItem, lang)
		if err := b.components(n, lang, d); err != nil {
			return nil, err
		}
		el = d
	default:
		cat, ok := ParseCategory(typ)
		if !ok {
			return nil, fmt.Errorf("node type %q: %w", n.Type, ErrBadSpec)
		}
		switch {
		case cat == CatCoordination:
			el, err = b.coordination(f, n, lang)
		case cat.IsPhrasal():
			el, err = b.phrase(f, n, cat, lang)
		case cat.IsDocument():
			el, err = b.document(f, n, cat, lang)
		default:
			return nil, fmt.Errorf("node type %q: %w", n.Type, ErrBadSpec)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := applyFeatures(el.Features(), n.Features); err != nil {
		return nil, fmt.Errorf("%s: %w", n.Type, err)
	}
	return el, nil
}

func (b *specBuilder) all(ns []*SpecNode, lang Language, slot Category) ([]Element, error) {
	out := make([]Element, 0, len(ns))
	for _, n := range ns {
		if n == nil {
			continue
		}
		e, err := b.build(n, lang, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// optional builds n when present.
func (b *specBuilder) optional(n *SpecNode, lang Language, slot Category) (Element, error) {
	if n == nil {
		return nil, nil
	}
	return b.build(n, lang, slot)
}

// nominals builds noun slots, wrapping bare nouns in noun phrases.
func (b *specBuilder) nominals(f *Factory, ns []*SpecNode, lang Language) ([]Element, error) {
	es, err := b.all(ns, lang, CatNoun)
	if err != nil {
		return nil, err
	}
	for i, e := range es {
		if w, ok := e.(*Word); ok && w.Category() == CatNoun {
			es[i] = f.NounPhrase(nil, w)
		}
	}
	return es, nil
}

func headCategory(cat Category) Category {
	switch cat {
	case CatNounPhrase:
		return CatNoun
	case CatVerbPhrase, CatClause:
		return CatVerb
	case CatPrepositionalPhrase:
		return CatPreposition
	case CatAdjectivePhrase:
		return CatAdjective
	case CatAdverbPhrase:
		return CatAdverb
	}
	return CatAny
}

func (b *specBuilder) phrase(f *Factory, n *SpecNode, cat Category, lang Language) (*Phrase, error) {
	if cat == CatCannedText {
		return nil, fmt.Errorf("canned text takes type text: %w", ErrBadSpec)
	}
	p := NewPhrase(cat, lang)

	spec, err := b.optional(n.Specifier, lang, CatDeterminer)
	if err != nil {
		return nil, err
	}
	p.SetSpecifier(spec)

	head, err := b.optional(n.Head, lang, headCategory(cat))
	if err != nil {
		return nil, err
	}
	if head == nil && n.Base != "" {
		head = f.Word(n.Base, headCategory(cat))
	}
	if cat == CatClause {
		if head != nil && head.Category() != CatVerbPhrase {
			vp := NewPhrase(CatVerbPhrase, lang)
			vp.SetHead(head)
			head = vp
		}
		if head != nil {
			p.SetHead(head)
		}
		subjects, err := b.nominals(f, n.Subjects, lang)
		if err != nil {
			return nil, err
		}
		for _, s := range subjects {
			p.AddSubject(s)
		}
	} else {
		p.SetHead(head)
	}

	if err := b.objects(f, n, p, lang); err != nil {
		return nil, err
	}

	slots := []struct {
		nodes []*SpecNode
		add   func(Element)
	}{
		{n.Premodifiers, p.AddPremodifier},
		{n.Postmodifiers, p.AddPostmodifier},
		{n.FrontModifiers, p.AddFrontModifier},
		{n.Modifiers, func(e Element) { f.AddModifier(p, e) }},
	}
	for _, s := range slots {
		es, err := b.all(s.nodes, lang, CatAdverb)
		if err != nil {
			return nil, err
		}
		for _, e := range es {
			s.add(e)
		}
	}

	cue, err := b.optional(n.Cue, lang, CatAdverb)
	if err != nil {
		return nil, err
	}
	if cue != nil {
		p.SetCue(cue)
	}
	return p, nil
}

// objects adds the object, indirect object and other complements of n.
func (b *specBuilder) objects(f *Factory, n *SpecNode, p *Phrase, lang Language) error {
	if n.Object != nil {
		o, err := b.nominals(f, []*SpecNode{n.Object}, lang)
		if err != nil {
			return err
		}
		f.SetObject(p, o[0])
	}
	if n.IndirectObject != nil {
		o, err := b.nominals(f, []*SpecNode{n.IndirectObject}, lang)
		if err != nil {
			return err
		}
		f.SetIndirectObject(p, o[0])
	}
	slot := CatNoun
	if p.Category() == CatPrepositionalPhrase {
		cs, err := b.nominals(f, n.Complements, lang)
		if err != nil {
			return err
		}
		for _, c := range cs {
			p.AddComplement(c)
		}
		return nil
	}
	cs, err := b.all(n.Complements, lang, slot)
	if err != nil {
		return err
	}
	for _, c := range cs {
		f.AddComplement(p, c)
	}
	return nil
}

func (b *specBuilder) coordination(f *Factory, n *SpecNode, lang Language) (*Coordination, error) {
	coords, err := b.nominals(f, n.Coordinates, lang)
	if err != nil {
		return nil, err
	}
	c := NewCoordination(lang, coords...)
	pre, err := b.all(n.Premodifiers, lang, CatAdverb)
	if err != nil {
		return nil, err
	}
	post, err := b.all(n.Postmodifiers, lang, CatAdverb)
	if err != nil {
		return nil, err
	}
	for _, e := range pre {
		e.setParent(c)
		c.Premodifiers = append(c.Premodifiers, e)
	}
	for _, e := range post {
		e.setParent(c)
		c.Postmodifiers = append(c.Postmodifiers, e)
	}
	return c, nil
}

func (b *specBuilder) components(n *SpecNode, lang Language, d *Document) error {
	es, err := b.all(n.Components, lang, CatNoun)
	if err != nil {
		return err
	}
	for _, e := range es {
		d.Add(e)
	}
	return nil
}

func (b *specBuilder) document(f *Factory, n *SpecNode, cat Category, lang Language) (*Document, error) {
	if cat == CatList {
		es, err := b.all(n.Components, lang, CatNoun)
		if err != nil {
			return nil, err
		}
		return f.List(es...), nil
	}
	d := NewDocument(cat, lang)
	d.Title = n.Title
	if err := b.components(n, lang, d); err != nil {
		return nil, err
	}
	return d, nil
}

// applyFeatures sets the features named in m. Flag names take a boolean;
// "flags" takes a list of flag names. Unknown keys go to Extra.
func applyFeatures(fs *Features, m map[string]any) error {
	for key, v := range m {
		s := scalar(v)
		bad := func() error {
			return fmt.Errorf("feature %s=%v: %w", key, v, ErrBadSpec)
		}
		var ok bool
		switch strings.ToLower(key) {
		case "tense":
			fs.Tense, ok = ParseTense(s)
		case "form":
			fs.Form, ok = ParseForm(s)
		case "number":
			fs.Number, ok = ParseNumber(s)
		case "person":
			fs.Person, ok = ParsePerson(s)
		case "gender":
			fs.Gender, ok = ParseGender(s)
		case "interrogative":
			fs.Interrogative, ok = ParseInterrogative(s)
		case "function":
			fs.Function, ok = ParseFunction(s)
		case "relative":
			fs.Relative, ok = ParseFunction(s)
			fs.Status = ClauseSubordinate
		case "status":
			switch s {
			case "matrix":
				fs.Status, ok = ClauseMatrix, true
			case "subordinate":
				fs.Status, ok = ClauseSubordinate, true
			}
		case "modal":
			fs.Modal, ok = s, true
		case "complementiser", "complementizer":
			fs.Complementiser, ok = s, true
		case "conjunction":
			fs.Conjunction, ok = s, true
		case "particle":
			fs.Particle, ok = s, true
		case "negation":
			fs.Negation, ok = s, true
		case "preposition":
			fs.Preposition, ok = s, true
		case "flags":
			names, isList := v.([]any)
			if !isList {
				return bad()
			}
			for _, name := range names {
				f, known := ParseFlag(scalar(name))
				if !known {
					return fmt.Errorf("flag %v: %w", name, ErrBadSpec)
				}
				fs.Set(f, true)
			}
			ok = true
		default:
			if f, known := ParseFlag(key); known {
				on, err := strconv.ParseBool(s)
				if err != nil {
					return bad()
				}
				fs.Set(f, on)
				ok = true
			} else {
				fs.Put(key, v)
				ok = true
			}
		}
		if !ok {
			return bad()
		}
	}
	return nil
}

// scalar renders a decoded JSON or YAML scalar as a string.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	}
	return fmt.Sprint(v)
}
