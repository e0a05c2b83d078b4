// Package config loads the server and CLI settings from the environment,
// optionally overlaid on a YAML file named by NLG_CONFIG.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Default language of specification documents without one.
	Language string `yaml:"language"`

	// Lexicon sources
	LexiconDir   string   `yaml:"lexicon_dir"`
	LexiconGlobs []string `yaml:"lexicon_globs"`
	DBPath       string   `yaml:"db_path"`

	// Hot reload of lexicon files
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	CORSOrigins  []string `yaml:"cors_origins"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:          "8080",
		Language:      "en",
		LexiconGlobs:  []string{"**/*.yaml"},
		WatchDebounce: 300 * time.Millisecond,
		CORSOrigins:   []string{"*"},
		MaxBodyBytes:  1 << 20,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads the file named by NLG_CONFIG, when set, and lets the
// environment override it.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("NLG_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.Language = envOr("NLG_LANGUAGE", cfg.Language)
	cfg.LexiconDir = envOr("NLG_LEXICON_DIR", cfg.LexiconDir)
	cfg.LexiconGlobs = envList("NLG_LEXICON_GLOBS", cfg.LexiconGlobs)
	cfg.DBPath = envOr("NLG_DB_PATH", cfg.DBPath)
	cfg.Watch = envBool("NLG_WATCH", cfg.Watch)
	cfg.WatchDebounce = envDuration("NLG_WATCH_DEBOUNCE", cfg.WatchDebounce)
	cfg.CORSOrigins = envList("NLG_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MaxBodyBytes = envInt64("NLG_MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.LogLevel = envOr("NLG_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("NLG_LOG_FORMAT", cfg.LogFormat)

	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 300 * time.Millisecond
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not a number", c.Port)
	}
	if c.Language == "" {
		return fmt.Errorf("language is required")
	}
	for _, g := range c.LexiconGlobs {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("lexicon glob %q is invalid", g)
		}
	}
	if c.Watch && c.LexiconDir == "" {
		return fmt.Errorf("watching requires a lexicon directory")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", c.LogFormat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envList splits a comma-separated variable.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
