// Package handlers exposes the HTTP API: box CRUD, paginated listing,
// spreadsheet export, process listing, and admin maintenance routes.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boxtrack/internal/db"
)

// Server holds the handler dependencies.
type Server struct {
	repo        *db.BoxRepository
	logger      *slog.Logger
	corsOrigins []string
}

// New creates a Server. An empty corsOrigins list allows all origins.
func New(repo *db.BoxRepository, logger *slog.Logger, corsOrigins []string) *Server {
	return &Server{
		repo:        repo,
		logger:      logger,
		corsOrigins: corsOrigins,
	}
}

// Router builds the HTTP router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/boxes", func(r chi.Router) {
		r.Get("/", s.handleListBoxes)
		r.Post("/", s.handleCreateBox)
		r.Get("/export/excel", s.handleExportExcel)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetBox)
			r.Put("/", s.handleUpdateBox)
			r.Delete("/", s.handleDeleteBox)
		})
	})

	r.Get("/processes", s.handleListProcesses)

	r.Post("/admin/normalize-processes", s.handleNormalizeProcesses)

	return r
}

// handleHealth is the liveness probe. It always answers 200; the
// database field reports store reachability without failing the probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := s.repo.Ping(r.Context()); err != nil {
		dbStatus = "unreachable"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": dbStatus,
	})
}
