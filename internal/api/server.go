// Package api exposes the realiser as a JSON HTTP service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	handler  http.Handler
	realiser *nlg.Realiser
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(r *nlg.Realiser, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		realiser: r,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/realise", s.handleRealise)
		r.Get("/conjugate", s.handleConjugate)
		r.Get("/lexicon/lookup", s.handleLookup)
		r.Get("/languages", s.handleLanguages)
	})

	s.router = r
	s.handler = cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
