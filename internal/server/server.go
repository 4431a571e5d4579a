// Package server exposes the compiler and checker over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"specgen/internal/config"
	"specgen/internal/observability"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// Server is the HTTP API server for specgen.
type Server struct {
	router chi.Router
	log    zerolog.Logger
	cfg    *config.Config
}

// New creates and configures the HTTP server.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{log: log, cfg: cfg}
	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(observability.RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(limitBody)

		r.Post("/build", s.handleBuild)
		r.Post("/layout", s.handleLayout)
		r.Post("/check", s.handleCheck)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
