package nlg

import (
	"strings"
	"unicode"
)

// orthographer runs the last stage: it renders a realised tree into text.
type orthographer struct {
	r *Realiser
}

// realise renders e into a single fragment carrying e's category and
// features.
func (o *orthographer) realise(e Element) *Text {
	return newFragment(o.render(e), e)
}

func (o *orthographer) render(e Element) string {
	switch el := e.(type) {
	case nil:
		return ""
	case *Text:
		return el.Value
	case *List:
		return o.renderList(el)
	case *Document:
		return o.renderDocument(el)
	}
	return ""
}

// renderList joins the non-empty items of l with the separators of its
// language.
func (o *orthographer) renderList(l *List) string {
	rules := o.r.grammarFor(l.Language()).Orthography
	var b strings.Builder
	var prev Element
	for _, item := range l.Items {
		s := o.render(item)
		if s == "" {
			continue
		}
		if prev != nil {
			b.WriteString(rules.separator(l, prev, item))
		}
		b.WriteString(s)
		prev = item
	}
	return b.String()
}

func (o *orthographer) renderDocument(d *Document) string {
	var parts []string
	for _, c := range d.Components {
		if s := o.render(c); s != "" {
			parts = append(parts, s)
		}
	}
	switch d.Category() {
	case CatSentence:
		return o.sentence(d, strings.Join(parts, " "))
	case CatParagraph, CatListItem:
		return strings.Join(parts, " ")
	case CatList:
		for i, p := range parts {
			parts[i] = "* " + p
		}
		return strings.Join(parts, "\n")
	}
	body := strings.Join(parts, "\n\n")
	if d.Title != "" {
		if body == "" {
			return d.Title
		}
		return d.Title + "\n\n" + body
	}
	return body
}

// sentence capitalises s and closes it with a full stop, or a question
// mark when it realises a question.
func (o *orthographer) sentence(d *Document, s string) string {
	if s == "" {
		return ""
	}
	s = capitalise(s, d.Language())
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	if isQuestion(d) {
		return s + "?"
	}
	return s + "."
}

// isQuestion reports whether a sentence realises an interrogative clause.
func isQuestion(d *Document) bool {
	for _, c := range d.Components {
		l, ok := c.(*List)
		if !ok {
			continue
		}
		if l.Category() == CatClause && l.Features().Interrogative != InterrogativeNone {
			return true
		}
		if l.Category() == CatCoordination {
			for _, item := range l.Items {
				if il, ok := item.(*List); ok && il.Category() == CatClause && il.Features().Interrogative != InterrogativeNone {
					return true
				}
			}
		}
	}
	return false
}

// firstLeaf and lastLeaf return the outermost non-empty fragments of e.
func firstLeaf(e Element) *Text {
	for _, t := range Leaves(e) {
		if t.Value != "" {
			return t
		}
	}
	return nil
}

func lastLeaf(e Element) *Text {
	leaves := Leaves(e)
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Value != "" {
			return leaves[i]
		}
	}
	return nil
}

// isPunctuation reports whether e renders as a punctuation mark.
func isPunctuation(e Element) bool {
	t := firstLeaf(e)
	if t == nil {
		return false
	}
	if t.Features().Has(FlagPunctuation) {
		return true
	}
	for _, r := range t.Value {
		if !unicode.IsPunct(r) || r == '(' || r == '"' {
			return false
		}
	}
	return true
}

// joinsRight reports whether e ends with an elided word ("l'", "qu'").
func joinsRight(e Element) bool {
	t := lastLeaf(e)
	return t != nil && t.Features().Has(FlagElided)
}

func isConjunction(e Element) bool {
	return e.Features().Function == FunctionConjunction
}

func isAdverbial(e Element) bool {
	switch e.Category() {
	case CatAdverb, CatAdverbPhrase:
		return true
	}
	return false
}

// baseSeparator handles the separators both languages share.
func baseSeparator(list *List, left, right Element) (string, bool) {
	switch {
	case isPunctuation(right):
		return "", true
	case joinsRight(left):
		return "", true
	case list.Category() == CatCoordination && !isConjunction(left) && !isConjunction(right):
		return ", ", true
	}
	return "", false
}

type englishOrthography struct{}

func (englishOrthography) separator(list *List, left, right Element) string {
	if s, ok := baseSeparator(list, left, right); ok {
		return s
	}
	return " "
}

type frenchOrthography struct{}

func (frenchOrthography) separator(list *List, left, right Element) string {
	if s, ok := baseSeparator(list, left, right); ok {
		return s
	}
	if t := firstLeaf(right); t != nil && t.Features().Has(FlagEnclitic) {
		return "-"
	}
	switch list.Category() {
	case CatCoordination:
		// "ni Jean, ni Marie"
		if isConjunction(right) && !isConjunction(left) &&
			(right.Features().Has(FlagRepeated) || list.Features().Has(FlagRepeated)) {
			return ", "
		}
	case CatClause:
		switch left.Features().Function {
		case FunctionFrontModifier, FunctionCuePhrase:
			return ", "
		}
	case CatVerbPhrase:
		if isAdverbial(left) && isAdverbial(right) {
			return ", "
		}
	}
	return " "
}
