package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docnav.
type Server struct {
	router  chi.Router
	catalog *catalog.Catalog
	mcp     http.Handler
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. A non-nil mcp handler is
// mounted at /mcp behind the same authentication as the REST routes.
func NewServer(cat *catalog.Catalog, mcp http.Handler, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		catalog: cat,
		mcp:     mcp,
		log:     log,
		cfg:     cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/stats/load", s.handleLoadStats)
		if s.mcp != nil {
			r.Handle("/mcp", s.mcp)
		}

		r.Route("/api/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleUploadDocument)

			r.Route("/{doc}", func(r chi.Router) {
				r.Delete("/", s.handleDeleteDocument)
				r.Get("/raw", s.handleRawDocument)
				r.Get("/settings", s.handleSettings)

				r.Get("/forests/{forest}", s.handleRenderForest)
				r.Get("/forests/{forest}/flatten", s.handleFlattenForest)
				r.Get("/forests/{forest}/find", s.handleFindByTarget)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
