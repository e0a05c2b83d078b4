package lexstore

import (
	"context"
	"fmt"

	"github.com/cours-de-latin/nlg"
)

// Lexicon is the nlg.Lexicon view of a store for one language. Lookups
// read the database, so entries imported later are seen at once. Query
// failures are logged and degrade to synthesised entries.
type Lexicon struct {
	store *Store
	lang  nlg.Language
}

var _ nlg.Lexicon = (*Lexicon)(nil)

func (l *Lexicon) Language() nlg.Language { return l.lang }

// Defaults returns the function words recorded by the imported files.
func (l *Lexicon) Defaults() nlg.LanguageDefaults {
	d, err := l.store.defaults(l.lang)
	if err != nil {
		l.store.log.Warn("read defaults", "language", l.lang, "error", err)
	}
	return d
}

// first returns the first word of ws, or nil.
func first(ws []*nlg.Word) *nlg.Word {
	if len(ws) == 0 {
		return nil
	}
	return ws[0]
}

func (l *Lexicon) Lookup(base string, cat nlg.Category) *nlg.Word {
	key := nlg.NormalizeKey(base)
	var ws []*nlg.Word
	var err error
	if cat == nlg.CatAny {
		ws, err = l.store.query(l.lang, `SELECT entry FROM words WHERE lang = ? AND base_key = ? ORDER BY id LIMIT 1`,
			string(l.lang), key)
	} else {
		ws, err = l.store.query(l.lang, `SELECT entry FROM words WHERE lang = ? AND base_key = ? AND category = ? ORDER BY id LIMIT 1`,
			string(l.lang), key, cat.String())
	}
	if err != nil {
		l.store.log.Warn("lookup", "base", base, "error", err)
	}
	if w := first(ws); w != nil {
		return w
	}
	w := nlg.NewWord(base, cat, l.lang)
	w.Synthesised = true
	return w
}

func (l *Lexicon) LookupByVariant(form string, cat nlg.Category) *nlg.Word {
	key := nlg.NormalizeKey(form)
	ws, err := l.store.query(l.lang, `
		SELECT w.entry FROM words w JOIN variants v ON v.word_id = w.id
		WHERE w.lang = ? AND v.form_key = ? AND (? = 'any' OR w.category = ?)
		ORDER BY w.id LIMIT 1
	`, string(l.lang), key, cat.String(), cat.String())
	if err != nil {
		l.store.log.Warn("variant lookup", "form", form, "error", err)
	}
	if w := first(ws); w != nil {
		return w
	}
	return l.Lookup(form, cat)
}

func (l *Lexicon) LookupByID(id string) *nlg.Word {
	if id == "" {
		return nil
	}
	ws, err := l.store.query(l.lang, `SELECT entry FROM words WHERE lang = ? AND entry_id = ? ORDER BY id LIMIT 1`,
		string(l.lang), id)
	if err != nil {
		l.store.log.Warn("id lookup", "id", id, "error", err)
	}
	return first(ws)
}

// LookupByFeatures scores every entry of cat against q; ties go to the
// entry imported first.
func (l *Lexicon) LookupByFeatures(cat nlg.Category, q nlg.WordQuery) (*nlg.Word, bool) {
	var ws []*nlg.Word
	var err error
	if cat == nlg.CatAny {
		ws, err = l.store.query(l.lang, `SELECT entry FROM words WHERE lang = ? ORDER BY id`, string(l.lang))
	} else {
		ws, err = l.store.query(l.lang, `SELECT entry FROM words WHERE lang = ? AND category = ? ORDER BY id`,
			string(l.lang), cat.String())
	}
	if err != nil {
		l.store.log.Warn("feature lookup", "category", cat, "error", err)
		return nil, false
	}
	var best *nlg.Word
	bestScore := -1
	for _, w := range ws {
		if ok, score := q.Matches(w); ok && score > bestScore {
			best, bestScore = w, score
		}
	}
	return best, best != nil
}

// Close does not close the store, which other views may share.
func (l *Lexicon) Close() error { return nil }

// Options returns a realiser option per language held in the store. The
// store's lexicon replaces the built-in one for those languages.
func (s *Store) Options(ctx context.Context) ([]nlg.Option, error) {
	langs, err := s.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	opts := make([]nlg.Option, 0, len(langs))
	for _, lang := range langs {
		opts = append(opts, nlg.WithLexicon(s.Lexicon(lang)))
	}
	return opts, nil
}
