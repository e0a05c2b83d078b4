package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cours-de-latin/nlg"
)

type realiseResponse struct {
	Text     string `json:"text"`
	Language string `json:"lang"`
}

type conjugationResponse struct {
	Verb     string              `json:"verb"`
	Language string              `json:"lang"`
	Model    string              `json:"model,omitempty"`
	Cells    map[string][]string `json:"cells"`
}

type lookupResponse struct {
	Language string    `json:"lang"`
	Known    bool      `json:"known"`
	Entry    nlg.Entry `json:"entry"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// language resolves the lang query parameter, defaulting to the
// realiser's language.
func (s *Server) language(r *http.Request) (nlg.Language, error) {
	tag := r.URL.Query().Get("lang")
	if tag == "" {
		return s.realiser.Language(), nil
	}
	return s.realiser.Registry().Resolve(tag)
}

// handleRealise realises a JSON or YAML specification document.
func (s *Server) handleRealise(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	spec, err := nlg.ParseSpec(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if spec.Lang == "" {
		lang, err := s.language(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		spec.Lang = string(lang)
	}
	text, err := s.realiser.RealiseSpec(spec)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, nlg.ErrBadSpec) || errors.Is(err, nlg.ErrUnsupportedLanguage) {
			status = http.StatusBadRequest
		} else {
			s.log.Error("realise", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, realiseResponse{Text: text, Language: spec.Lang})
}

func (s *Server) handleConjugate(w http.ResponseWriter, r *http.Request) {
	verb := strings.TrimSpace(r.URL.Query().Get("verb"))
	if verb == "" {
		writeError(w, http.StatusBadRequest, "missing 'verb' query parameter")
		return
	}
	lang, err := s.language(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	table, err := s.realiser.Conjugate(nlg.NewWord(verb, nlg.CatVerb, lang))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conjugationResponse{
		Verb:     table.Word.Base,
		Language: string(lang),
		Model:    table.Model,
		Cells:    table.ByKey(),
	})
}

// handleLookup returns the lexicon entry for base, or for an inflected
// form when form is given instead.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base, form := strings.TrimSpace(q.Get("base")), strings.TrimSpace(q.Get("form"))
	if base == "" && form == "" {
		writeError(w, http.StatusBadRequest, "missing 'base' or 'form' query parameter")
		return
	}
	cat := nlg.CatAny
	if c := q.Get("category"); c != "" {
		var ok bool
		if cat, ok = nlg.ParseCategory(c); !ok || !(cat.IsLexical() || cat == nlg.CatAny) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", c))
			return
		}
	}
	lang, err := s.language(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lex := s.realiser.Lexicon(lang)
	var word *nlg.Word
	if form != "" {
		word = lex.LookupByVariant(form, cat)
	} else {
		word = lex.Lookup(base, cat)
	}
	known := !word.Synthesised
	status := http.StatusOK
	if !known {
		status = http.StatusNotFound
	}
	writeJSON(w, status, lookupResponse{Language: string(lang), Known: known, Entry: nlg.EntryOf(word)})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs := s.realiser.Registry().Languages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	writeJSON(w, http.StatusOK, languagesResponse{Languages: out, Default: string(s.realiser.Language())})
}
