package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NLG_CONFIG", "")
	t.Setenv("PORT", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.Language != "en" {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nlg.yaml")
	data := "port: \"9000\"\nlanguage: fr\nlexicon_dir: /srv/lex\nwatch: true\nwatch_debounce: 2s\ncors_origins: [https://example.org]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NLG_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("NLG_LEXICON_GLOBS", "fr/*.yaml, extra/**/*.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, environment should win", cfg.Port)
	}
	if cfg.Language != "fr" || !cfg.Watch || cfg.WatchDebounce != 2*time.Second {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !slices.Equal(cfg.LexiconGlobs, []string{"fr/*.yaml", "extra/**/*.yaml"}) {
		t.Errorf("LexiconGlobs = %v", cfg.LexiconGlobs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NLG_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Port = "http" }},
		{"language", func(c *Config) { c.Language = "" }},
		{"glob", func(c *Config) { c.LexiconGlobs = []string{"[a-"} }},
		{"watch without dir", func(c *Config) { c.Watch = true }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		cfg := defaults()
		tt.modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}
