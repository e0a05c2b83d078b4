package nlg

import "strings"

// Factory builds specification trees bound to one lexicon. Words taken
// from the lexicon are copied, so trees never share nodes with it.
//
// Arguments typed any accept a string (looked up in the lexicon), a *Word
// or any other Element.
type Factory struct {
	lex  Lexicon
	lang Language
}

// NewFactory returns a factory for the language of lex.
func NewFactory(lex Lexicon) *Factory {
	return &Factory{lex: lex, lang: lex.Language()}
}

// Language returns the language of the elements the factory builds.
func (f *Factory) Language() Language { return f.lang }

// Word returns a copy of the lexicon entry for base in cat.
func (f *Factory) Word(base string, cat Category) *Word {
	w := f.lex.Lookup(base, cat).shallowClone().(*Word)
	if w.Category() == CatAny && cat != CatAny {
		w.cat = cat
	}
	if w.Language() == "" {
		w.SetLanguage(f.lang)
	}
	return w
}

// element coerces v into an element, looking strings up in cat.
func (f *Factory) element(v any, cat Category) Element {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return f.Word(x, cat)
	case *Word:
		if x == nil {
			return nil
		}
		return x.shallowClone()
	case Element:
		return x
	}
	return nil
}

// nominal coerces v into a noun phrase: "man" gives a bare noun phrase,
// "the man" a determiner and a noun, and longer strings canned text.
func (f *Factory) nominal(v any) Element {
	s, ok := v.(string)
	if !ok {
		if w, isWord := v.(*Word); isWord && w != nil && w.Category() == CatNoun {
			return f.NounPhrase(nil, w)
		}
		return f.element(v, CatNoun)
	}
	switch fields := strings.Fields(s); len(fields) {
	case 0:
		return nil
	case 1:
		return f.NounPhrase(nil, fields[0])
	case 2:
		return f.NounPhrase(fields[0], fields[1])
	}
	return f.Canned(s)
}

// NounPhrase returns a noun phrase with an optional specifier.
func (f *Factory) NounPhrase(spec, noun any) *Phrase {
	np := NewPhrase(CatNounPhrase, f.lang)
	np.SetSpecifier(f.element(spec, CatDeterminer))
	np.SetHead(f.element(noun, CatNoun))
	return np
}

// Pronoun returns a pronominal noun phrase. The pronoun is chosen at
// realisation time from its features and discourse function.
func (f *Factory) Pronoun(person Person, number Number, gender Gender) *Phrase {
	np := NewPhrase(CatNounPhrase, f.lang)
	fs := np.Features()
	fs.Person, fs.Number, fs.Gender = person, number, gender
	fs.Set(FlagPronominal, true)
	return np
}

// VerbPhrase returns a verb phrase headed by verb.
func (f *Factory) VerbPhrase(verb any) *Phrase {
	vp := NewPhrase(CatVerbPhrase, f.lang)
	vp.SetHead(f.element(verb, CatVerb))
	return vp
}

// Clause returns a clause; subject and object may be nil.
func (f *Factory) Clause(subject, verb, object any) *Phrase {
	c := NewPhrase(CatClause, f.lang)
	if s := f.nominal(subject); s != nil {
		c.AddSubject(s)
	}
	c.SetHead(f.VerbPhrase(verb))
	if object != nil {
		f.SetObject(c, object)
	}
	return c
}

// verbPhraseOf returns the verb phrase of a clause, creating an empty one
// when it has none.
func (f *Factory) verbPhraseOf(p *Phrase) *Phrase {
	if vp := p.VerbPhrase(); vp != nil {
		return vp
	}
	vp := NewPhrase(CatVerbPhrase, f.lang)
	p.SetHead(vp)
	return vp
}

// SetObject adds a direct object to a clause or verb phrase.
func (f *Factory) SetObject(p *Phrase, object any) {
	if e := f.nominal(object); e != nil {
		e.Features().Function = FunctionObject
		f.verbPhraseOf(p).AddComplement(e)
	}
}

// SetIndirectObject adds an indirect object to a clause or verb phrase.
func (f *Factory) SetIndirectObject(p *Phrase, object any) {
	if e := f.nominal(object); e != nil {
		e.Features().Function = FunctionIndirectObject
		f.verbPhraseOf(p).AddComplement(e)
	}
}

// AddComplement adds a complement to p, or to the verb phrase of a
// clause. Embedded clauses become subordinate.
func (f *Factory) AddComplement(p *Phrase, complement any) {
	e := f.element(complement, CatNoun)
	if e == nil {
		return
	}
	if e.Category() == CatClause {
		e.Features().Status = ClauseSubordinate
	}
	if p.Category() == CatClause {
		p = f.verbPhraseOf(p)
	}
	p.AddComplement(e)
}

// PrepositionalPhrase returns a prepositional phrase governing object.
func (f *Factory) PrepositionalPhrase(prep, object any) *Phrase {
	pp := NewPhrase(CatPrepositionalPhrase, f.lang)
	pp.SetHead(f.element(prep, CatPreposition))
	if o := f.nominal(object); o != nil {
		pp.AddComplement(o)
	}
	return pp
}

// AdjectivePhrase returns an adjective phrase headed by adj.
func (f *Factory) AdjectivePhrase(adj any) *Phrase {
	ap := NewPhrase(CatAdjectivePhrase, f.lang)
	ap.SetHead(f.element(adj, CatAdjective))
	return ap
}

// AdverbPhrase returns an adverb phrase headed by adv.
func (f *Factory) AdverbPhrase(adv any) *Phrase {
	ap := NewPhrase(CatAdverbPhrase, f.lang)
	ap.SetHead(f.element(adv, CatAdverb))
	return ap
}

// Coordination coordinates the given elements with the addition
// conjunction.
func (f *Factory) Coordination(coords ...any) *Coordination {
	c := NewCoordination(f.lang)
	for _, v := range coords {
		if e := f.nominal(v); e != nil {
			c.AddCoordinate(e)
		}
	}
	return c
}

// Canned returns a fragment realised verbatim.
func (f *Factory) Canned(s string) *Text {
	return NewText(s, f.lang)
}

// modifierWord resolves a string modifier to a lexicon entry, choosing cat
// when the lexicon does not know the word.
func (f *Factory) modifierWord(s string, cat Category) *Word {
	w := f.lex.Lookup(s, CatAny).shallowClone().(*Word)
	if w.Category() == CatAny {
		w.cat = cat
	}
	if w.Language() == "" {
		w.SetLanguage(f.lang)
	}
	return w
}

// AddModifier places a modifier where the grammar expects it. Adjectives
// premodify English nouns and the French ones marked preposed; other
// French adjectives follow the noun. Adverbs premodify verbs and
// adjectives; phrases and clauses postmodify.
func (f *Factory) AddModifier(p *Phrase, mod any) {
	var e Element
	if s, ok := mod.(string); ok {
		cat := CatAdverb
		if p.Category() == CatNounPhrase {
			cat = CatAdjective
		}
		e = f.modifierWord(s, cat)
	} else {
		e = f.element(mod, CatAdjective)
	}
	if e == nil {
		return
	}
	if e.Category() == CatClause {
		e.Features().Status = ClauseSubordinate
	}
	switch p.Category() {
	case CatNounPhrase:
		if e.Category() != CatAdjective && e.Category() != CatAdjectivePhrase && e.Category() != CatNoun {
			p.AddPostmodifier(e)
			return
		}
		if f.lang == French {
			if w := headWord(e); w == nil || !w.Features().Has(FlagPreposed) {
				p.AddPostmodifier(e)
				return
			}
		}
		p.AddPremodifier(e)
	case CatVerbPhrase, CatClause, CatAdjectivePhrase, CatAdverbPhrase:
		if e.Category() == CatAdverb {
			p.AddPremodifier(e)
			return
		}
		p.AddPostmodifier(e)
	default:
		p.AddPostmodifier(e)
	}
}

// RelativeClause turns c into a relative clause on its fn slot and
// attaches it to the noun phrase np.
func (f *Factory) RelativeClause(np, c *Phrase, fn DiscourseFunction) {
	fs := c.Features()
	fs.Relative = fn
	fs.Status = ClauseSubordinate
	np.AddPostmodifier(c)
}

// Sentence wraps elements in a sentence.
func (f *Factory) Sentence(components ...Element) *Document {
	return NewDocument(CatSentence, f.lang, components...)
}

// Paragraph groups sentences.
func (f *Factory) Paragraph(sentences ...Element) *Document {
	return NewDocument(CatParagraph, f.lang, sentences...)
}

// Section groups paragraphs under a title.
func (f *Factory) Section(title string, components ...Element) *Document {
	d := NewDocument(CatSection, f.lang, components...)
	d.Title = title
	return d
}

// Document groups sections and paragraphs under a title.
func (f *Factory) Document(title string, components ...Element) *Document {
	d := NewDocument(CatDocument, f.lang, components...)
	d.Title = title
	return d
}

// List returns a bulleted list, one item per element.
func (f *Factory) List(items ...Element) *Document {
	l := NewDocument(CatList, f.lang)
	for _, item := range items {
		if d, ok := item.(*Document); ok && d.Category() == CatListItem {
			l.Add(d)
			continue
		}
		l.Add(NewDocument(CatListItem, f.lang, item))
	}
	return l
}
