package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r, err := nlg.New()
	if err != nil {
		t.Fatalf("nlg.New: %v", err)
	}
	cfg := config.Config{CORSOrigins: []string{"https://example.org"}, MaxBodyBytes: 1 << 16}
	srv := httptest.NewServer(NewServer(r, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg))
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	decode(t, resp, &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v", resp.StatusCode, body)
	}
}

const clauseJSON = `{
  "type": "clause",
  "subjects": [{"type": "np", "specifier": {"base": "the"}, "head": {"base": "man"}}],
  "head": {"base": "greet"},
  "object": {"type": "np", "specifier": {"base": "the"}, "head": {"base": "crowd"}}
}`

const clauseYAML = `type: clause
lang: en
features: {tense: past, negated: true}
subjects:
  - {type: np, specifier: {base: the}, head: {base: man}}
head: {base: greet}
object: {type: np, specifier: {base: the}, head: {base: crowd}}
`

func TestRealise(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json", clauseJSON, "The man greets the crowd."},
		{"yaml", clauseYAML, "The man did not greet the crowd."},
	}
	for _, tt := range tests {
		resp, err := http.Post(srv.URL+"/api/realise", "application/json", strings.NewReader(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		var out realiseResponse
		decode(t, resp, &out)
		if resp.StatusCode != http.StatusOK || out.Text != tt.want {
			t.Errorf("%s: got %d %q, want %q", tt.name, resp.StatusCode, out.Text, tt.want)
		}
	}
}

func TestRealiseBadRequest(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{
		``,
		`{"type": "gizmo"}`,
		`{"type": "clause", "lang": "tlh", "head": {"base": "greet"}}`,
		`{"type": "clause", "features": {"tense": "someday"}, "head": {"base": "greet"}}`,
	} {
		resp, err := http.Post(srv.URL+"/api/realise", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		var out errorResponse
		decode(t, resp, &out)
		if resp.StatusCode != http.StatusBadRequest || out.Error == "" {
			t.Errorf("body %q: got %d %q, want 400", body, resp.StatusCode, out.Error)
		}
	}
}

func TestConjugate(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/conjugate?verb=parler&lang=fr")
	if err != nil {
		t.Fatal(err)
	}
	var out conjugationResponse
	decode(t, resp, &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	for key, want := range map[string]string{"present1s": "parle", "present1p": "parlons", "past_participle": "parlé"} {
		if got := out.Cells[key]; len(got) == 0 || got[0] != want {
			t.Errorf("%s = %v, want %s", key, got, want)
		}
	}

	resp, err = http.Get(srv.URL + "/api/conjugate")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing verb: status %d", resp.StatusCode)
	}
}

func TestLookup(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		query  string
		status int
		base   string
	}{
		{"base=chien&lang=fr", http.StatusOK, "chien"},
		{"form=men&category=noun", http.StatusOK, "man"},
		{"base=zorglub&lang=fr-CA", http.StatusNotFound, "zorglub"},
		{"base=man&category=gizmo", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + "/api/lexicon/lookup?" + tt.query)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("%s: status %d, want %d", tt.query, resp.StatusCode, tt.status)
		}
		if tt.base == "" {
			resp.Body.Close()
			continue
		}
		var out lookupResponse
		decode(t, resp, &out)
		if out.Entry.Base != tt.base {
			t.Errorf("%s: base %q, want %q", tt.query, out.Entry.Base, tt.base)
		}
	}
}

func TestLanguagesAndCORS(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/languages", nil)
	req.Header.Set("Origin", "https://example.org")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	var out languagesResponse
	decode(t, resp, &out)
	if strings.Join(out.Languages, ",") != "en,fr" || out.Default != "en" {
		t.Errorf("languages = %+v", out)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/languages", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}
