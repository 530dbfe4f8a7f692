package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/merger"
	"github.com/dgallion1/docsplit/internal/splitter"
)

// Server is the HTTP API for docsplit. It operates on paths visible to the
// server process; file upload is not part of this surface.
type Server struct {
	router   chi.Router
	splitter *splitter.Splitter
	merger   *merger.Merger
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sp *splitter.Splitter, mg *merger.Merger, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		splitter: sp,
		merger:   mg,
		log:      log,
		cfg:      cfg,
	}
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
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/split", s.handleSplit)
		r.Post("/api/merge", s.handleMerge)
		r.Post("/api/analyze", s.handleAnalyze)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
