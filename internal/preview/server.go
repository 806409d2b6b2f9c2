package preview

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves emitted API reference pages for local preview.
type Server struct {
	router chi.Router
	dir    string // docs routes dir, one sub-directory per package id
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(dir string, log *slog.Logger) *Server {
	s := &Server{
		dir: dir,
		log: log,
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

	r.Get("/api", s.handleListPages)
	r.Get("/api/{pkgID}", s.handlePage)
	r.Get("/api/{pkgID}/api.json", s.handleAPIJSON)
	r.Get("/api/{pkgID}/toc", s.handleTOC)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
