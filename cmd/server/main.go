// Command server exposes the realiser as a JSON REST API.
//
// Endpoints:
//
//	POST /api/realise            body: specification document (JSON or YAML)
//	GET  /api/conjugate?verb=<infinitive>[&lang=fr]
//	GET  /api/lexicon/lookup?base=<word>|form=<form>[&category=noun][&lang=fr]
//	GET  /api/languages
//	GET  /health
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/api"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/cours-de-latin/nlg/internal/lexstore"
	"github.com/cours-de-latin/nlg/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	level, lerr := logger.ParseLevel(cfg.LogLevel)
	logger.Init(logger.Config{Level: level, Format: cfg.LogFormat, Output: os.Stdout})
	log := logger.ForComponent("server")
	if lerr != nil {
		log.Warn("falling back to info logging", "error", lerr)
	}
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []nlg.Option{nlg.WithLogger(logger.ForComponent("realiser"))}
	var store *lexstore.Store
	var watcher *lexstore.Watcher
	if cfg.DBPath != "" {
		store, err = lexstore.Open(cfg.DBPath)
		if err != nil {
			log.Error("open lexicon store", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		if cfg.LexiconDir != "" {
			n, err := store.ImportFS(ctx, os.DirFS(cfg.LexiconDir), cfg.LexiconGlobs)
			if err != nil {
				log.Error("import lexicons", "dir", cfg.LexiconDir, "error", err)
				os.Exit(1)
			}
			log.Info("lexicons imported", "dir", cfg.LexiconDir, "words", n)
		}
		storeOpts, err := store.Options(ctx)
		if err != nil {
			log.Error("read lexicon store", "error", err)
			os.Exit(1)
		}
		opts = append(opts, storeOpts...)

		if cfg.Watch {
			watcher, err = lexstore.NewWatcher(store, cfg.LexiconDir, cfg.LexiconGlobs, cfg.WatchDebounce)
			if err == nil {
				err = watcher.Start(ctx)
			}
			if err != nil {
				log.Error("watch lexicons", "dir", cfg.LexiconDir, "error", err)
				os.Exit(1)
			}
		}
	}

	lang, err := nlg.DefaultRegistry().Resolve(cfg.Language)
	if err != nil {
		log.Error("default language", "error", err)
		os.Exit(1)
	}
	opts = append(opts, nlg.WithLanguage(lang))

	r, err := nlg.New(opts...)
	if err != nil {
		log.Error("create realiser", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(r, logger.ForComponent("api"), cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		var closers []closer
		if watcher != nil {
			closers = append(closers, closer{"watcher", watcher})
		}
		if store != nil {
			closers = append(closers, closer{"lexicon store", store})
		}
		shutdown(shutdownCtx, log, httpServer, closers...)
	}()

	log.Info("starting nlg server", "port", cfg.Port, "language", lang)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// closer is a resource released after the HTTP server stops.
type closer struct {
	name string
	c    io.Closer
}

// shutdown stops srv, then closes each resource in order. Failures are
// logged and do not stop the remaining steps.
func shutdown(ctx context.Context, log *slog.Logger, srv interface{ Shutdown(context.Context) error }, closers ...closer) {
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	for _, c := range closers {
		if err := c.c.Close(); err != nil {
			log.Error("close "+c.name, "error", err)
		}
	}
}
