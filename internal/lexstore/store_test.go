package lexstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cours-de-latin/nlg"
)

const frenchSample = `language: fr
defaults:
  conjunction: et
  passive_preposition: par
words:
  - {base: chien, category: noun, gender: masculine}
  - {base: cheval, category: noun, gender: masculine, forms: {plural: chevaux}}
  - {base: le, category: determiner, forms: {feminine: la, plural: les}}
  - {id: il, base: il, category: pronoun, person: "3", number: singular, gender: masculine, function: subject}
  - {id: elle_subj, base: elle, category: pronoun, person: "3", number: singular, gender: feminine, function: subject}
  - {id: ils, base: ils, category: pronoun, person: "3", number: plural, gender: masculine, function: subject}
`

const englishSample = `language: en
words:
  - {base: child, category: noun, forms: {plural: children}}
  - {base: run, category: verb, forms: {past: ran, past_participle: run}}
`

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func importString(t *testing.T, s *Store, data, source string) int {
	t.Helper()
	lf, err := nlg.ParseLexiconFile(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := s.Import(context.Background(), lf, source)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return n
}

func TestImportAndLookup(t *testing.T) {
	s := openStore(t)
	if n := importString(t, s, frenchSample, "fr.yaml"); n != 6 {
		t.Errorf("imported %d words, want 6", n)
	}
	lex := s.Lexicon(nlg.French)

	w := lex.Lookup("Chien", nlg.CatNoun)
	if w.Base != "chien" || w.Features().Gender != nlg.GenderMasculine {
		t.Errorf("Lookup(Chien) = %q %v", w.Base, w.Features().Gender)
	}
	if got := lex.Lookup("chat", nlg.CatNoun); got.Base != "chat" || got.Category() != nlg.CatNoun {
		t.Errorf("unknown word not synthesised: %+v", got)
	}
	if got := lex.LookupByVariant("chevaux", nlg.CatNoun); got.Base != "cheval" {
		t.Errorf("LookupByVariant(chevaux) = %q", got.Base)
	}
	if got := lex.LookupByVariant("la", nlg.CatAny); got.Base != "le" {
		t.Errorf("LookupByVariant(la) = %q", got.Base)
	}
	if got := lex.LookupByID("ils"); got == nil || got.Base != "ils" {
		t.Errorf("LookupByID(ils) = %v", got)
	}
	if got := lex.LookupByID("absent"); got != nil {
		t.Errorf("LookupByID(absent) = %v, want nil", got)
	}
	if d := lex.Defaults(); d.PassivePreposition != "par" {
		t.Errorf("Defaults = %+v", d)
	}
}

func TestLookupByFeatures(t *testing.T) {
	s := openStore(t)
	importString(t, s, frenchSample, "fr.yaml")
	lex := s.Lexicon(nlg.French)

	tests := []struct {
		q    nlg.WordQuery
		want string
	}{
		{nlg.WordQuery{Person: nlg.PersonThird, Number: nlg.NumberSingular, Gender: nlg.GenderFeminine, Function: nlg.FunctionSubject}, "elle"},
		{nlg.WordQuery{Person: nlg.PersonThird, Number: nlg.NumberPlural, Function: nlg.FunctionSubject}, "ils"},
		{nlg.WordQuery{Person: nlg.PersonThird, Number: nlg.NumberSingular, Gender: nlg.GenderMasculine}, "il"},
	}
	for _, tt := range tests {
		w, ok := lex.LookupByFeatures(nlg.CatPronoun, tt.q)
		if !ok || w.Base != tt.want {
			t.Errorf("LookupByFeatures(%+v) = %v, want %s", tt.q, w, tt.want)
		}
	}
}

func TestReimportReplacesSource(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	importString(t, s, frenchSample, "fr.yaml")
	importString(t, s, frenchSample, "fr.yaml")
	if n, _ := s.Count(ctx, nlg.French); n != 6 {
		t.Errorf("Count after re-import = %d, want 6", n)
	}

	importString(t, s, englishSample, "en.yaml")
	langs, err := s.Languages(ctx)
	if err != nil || len(langs) != 2 {
		t.Fatalf("Languages = %v, %v", langs, err)
	}

	removed, err := s.RemoveSource(ctx, "fr.yaml")
	if err != nil || removed != 6 {
		t.Errorf("RemoveSource = %d, %v", removed, err)
	}
	if got := s.Lexicon(nlg.French).LookupByVariant("chevaux", nlg.CatNoun); got.Base != "chevaux" {
		t.Errorf("variant survived removal: %q", got.Base)
	}
}

func TestImportFS(t *testing.T) {
	fsys := fstest.MapFS{
		"fr/base.yaml":        {Data: []byte(frenchSample)},
		"en/extra/more.yaml":  {Data: []byte(englishSample)},
		"notes/readme.txt":    {Data: []byte("not a lexicon")},
		"fr/drafts/skip.json": {Data: []byte("{}")},
	}
	paths, err := Discover(fsys, []string{"**/*.yaml", "fr/*.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Errorf("Discover = %v, want two yaml files", paths)
	}

	s := openStore(t)
	n, err := s.ImportFS(context.Background(), fsys, []string{"**/*.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("ImportFS stored %d words, want 8", n)
	}
	if w := s.Lexicon(nlg.English).LookupByVariant("children", nlg.CatNoun); w.Base != "child" {
		t.Errorf("LookupByVariant(children) = %q", w.Base)
	}
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "lexicon.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	importString(t, s, englishSample, "en.yaml")
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if w := s.Lexicon(nlg.English).Lookup("run", nlg.CatVerb); w.Forms["past"] != "ran" {
		t.Errorf("entry not persisted: %+v", w)
	}
}

func TestRealiseWithStore(t *testing.T) {
	s := openStore(t)
	importString(t, s, frenchSample, "fr.yaml")

	r, err := nlg.New(nlg.WithLexicon(s.Lexicon(nlg.French)), nlg.WithLanguage(nlg.French))
	if err != nil {
		t.Fatal(err)
	}
	f := r.Factory(nlg.French)
	np := f.NounPhrase("le", "cheval")
	np.Features().Number = nlg.NumberPlural
	if got := r.RealiseString(np); got != "les chevaux" {
		t.Errorf("got %q, want %q", got, "les chevaux")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	if err := os.WriteFile(path, []byte(englishSample), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openStore(t)
	if _, err := s.ImportFS(context.Background(), os.DirFS(dir), []string{"*.yaml"}); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(s, dir, []string{"*.yaml"}, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	reloaded := make(chan []string, 4)
	w.OnReload = func(paths []string) {
		select {
		case reloaded <- paths:
		default:
		}
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	updated := englishSample + "  - {base: ox, category: noun, forms: {plural: oxen}}\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for s.Lexicon(nlg.English).LookupByVariant("oxen", nlg.CatNoun).Base != "ox" {
		select {
		case paths := <-reloaded:
			t.Logf("reloaded %v", paths)
		case <-deadline:
			t.Fatal("new entry not visible after the file was rewritten")
		}
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	deadline = time.After(5 * time.Second)
	for {
		if n, _ := s.Count(context.Background(), nlg.English); n == 0 {
			return
		}
		select {
		case <-reloaded:
		case <-deadline:
			t.Fatal("entries not removed after the file was deleted")
		}
	}
}
