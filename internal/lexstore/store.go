// Package lexstore keeps lexicons in a SQLite database and serves them to
// the realiser. Lexicon YAML files are imported into the store, and a
// watcher can re-import them when they change on disk.
package lexstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/logger"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS languages (
	lang     TEXT PRIMARY KEY,
	defaults TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS words (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	lang     TEXT NOT NULL,
	entry_id TEXT NOT NULL DEFAULT '',
	base_key TEXT NOT NULL,
	category TEXT NOT NULL,
	entry    TEXT NOT NULL,
	source   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_words_base ON words(lang, base_key);
CREATE INDEX IF NOT EXISTS idx_words_entry ON words(lang, entry_id);
CREATE INDEX IF NOT EXISTS idx_words_category ON words(lang, category);
CREATE INDEX IF NOT EXISTS idx_words_source ON words(source);

CREATE TABLE IF NOT EXISTS variants (
	word_id  INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
	form_key TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_variants_form ON variants(form_key);
`

// Store is a SQLite-backed lexicon database holding any number of
// languages.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *slog.Logger
}

// Open opens or creates the database at path. The path ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps an in-memory database alive and serialises writes
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, log: logger.ForComponent("lexstore")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// variantKeys lists the lookup keys of the inflected forms and variants of
// w, excluding its base form.
func variantKeys(w *nlg.Word) []string {
	base := nlg.NormalizeKey(w.Base)
	seen := map[string]bool{base: true}
	var keys []string
	add := func(s string) {
		for _, f := range strings.Split(s, ",") {
			f = nlg.NormalizeKey(strings.TrimPrefix(f, "+"))
			if f != "" && !seen[f] {
				seen[f] = true
				keys = append(keys, f)
			}
		}
	}
	for _, v := range w.Variants {
		add(v)
	}
	for k, f := range w.Forms {
		if k == "model" || strings.HasPrefix(k, "radical") {
			continue
		}
		add(f)
	}
	return keys
}

// Import replaces the entries previously imported from source with those
// of lf and records the language's function words. It returns the number
// of entries stored.
func (s *Store) Import(ctx context.Context, lf *nlg.LexiconFile, source string) (int, error) {
	words := make([]*nlg.Word, 0, len(lf.Words))
	for _, e := range lf.Words {
		w, err := e.Word(lf.Language)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", source, err)
		}
		words = append(words, w)
	}
	defaults, err := json.Marshal(lf.Defaults)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if source != "" {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE source = ? AND lang = ?`, source, string(lf.Language)); err != nil {
			return 0, fmt.Errorf("clear %s: %w", source, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO languages (lang, defaults) VALUES (?, ?)
		ON CONFLICT(lang) DO UPDATE SET defaults = excluded.defaults
	`, string(lf.Language), string(defaults)); err != nil {
		return 0, fmt.Errorf("store defaults: %w", err)
	}

	insertWord, err := tx.PrepareContext(ctx, `
		INSERT INTO words (lang, entry_id, base_key, category, entry, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer insertWord.Close()
	insertVariant, err := tx.PrepareContext(ctx, `INSERT INTO variants (word_id, form_key) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer insertVariant.Close()

	for _, w := range words {
		entry, err := json.Marshal(nlg.EntryOf(w))
		if err != nil {
			return 0, err
		}
		res, err := insertWord.ExecContext(ctx, string(lf.Language), w.ID, nlg.NormalizeKey(w.Base),
			w.Category().String(), string(entry), source)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w.Base, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		for _, k := range variantKeys(w) {
			if _, err := insertVariant.ExecContext(ctx, id, k); err != nil {
				return 0, fmt.Errorf("insert variant %q: %w", k, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.log.Info("lexicon imported", "source", source, "language", lf.Language, "words", len(words))
	return len(words), nil
}

// ImportFS imports every lexicon file of fsys matching one of patterns,
// each file being its own source. It returns the number of entries stored.
func (s *Store) ImportFS(ctx context.Context, fsys fs.FS, patterns []string) (int, error) {
	paths, err := Discover(fsys, patterns)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, p := range paths {
		n, err := s.ImportPath(ctx, fsys, p)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ImportPath imports one lexicon file of fsys.
func (s *Store) ImportPath(ctx context.Context, fsys fs.FS, path string) (int, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	lf, err := nlg.ParseLexiconFile(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return s.Import(ctx, lf, path)
}

// Discover lists the files of fsys matching any of the doublestar
// patterns, without duplicates.
func Discover(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// RemoveSource deletes the entries imported from source.
func (s *Store) RemoveSource(ctx context.Context, source string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE source = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("remove %s: %w", source, err)
	}
	return res.RowsAffected()
}

// Languages lists the languages with recorded function words.
func (s *Store) Languages(ctx context.Context) ([]nlg.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT lang FROM languages ORDER BY lang`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []nlg.Language
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		out = append(out, nlg.Language(l))
	}
	return out, rows.Err()
}

// Count returns the number of entries stored for lang.
func (s *Store) Count(ctx context.Context, lang nlg.Language) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words WHERE lang = ?`, string(lang)).Scan(&n)
	return n, err
}

// defaults returns the function words recorded for lang.
func (s *Store) defaults(lang nlg.Language) (nlg.LanguageDefaults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var raw string
	var d nlg.LanguageDefaults
	err := s.db.QueryRow(`SELECT defaults FROM languages WHERE lang = ?`, string(lang)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return d, nil
	}
	if err != nil {
		return d, err
	}
	err = json.Unmarshal([]byte(raw), &d)
	return d, err
}

// query decodes the entries selected by a query on the words table.
func (s *Store) query(lang nlg.Language, q string, args ...any) ([]*nlg.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*nlg.Word
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e nlg.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		w, err := e.Word(lang)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Lexicon returns the view of the store for one language.
func (s *Store) Lexicon(lang nlg.Language) *Lexicon {
	return &Lexicon{store: s, lang: lang}
}
