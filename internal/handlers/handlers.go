package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"boxtrack/internal/db"
	"boxtrack/internal/models"
	"boxtrack/internal/validate"
)

// Paging bounds for list queries.
const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// handleCreateBox registers a new box.
func (s *Server) handleCreateBox(w http.ResponseWriter, r *http.Request) {
	var payload models.BoxCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	payload, err := validate.Create(payload)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	box, err := s.repo.Insert(r.Context(), payload)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, box)
}

// handleListBoxes returns a filtered, paginated page of boxes.
func (s *Server) handleListBoxes(w http.ResponseWriter, r *http.Request) {
	opts, err := parseQueryOptions(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	page, err := s.repo.Query(r.Context(), opts)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleGetBox fetches a single box by id.
func (s *Server) handleGetBox(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	box, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, box)
}

// handleUpdateBox applies a partial update. Fields absent from the
// payload are left untouched; explicit nulls clear optional fields.
func (s *Server) handleUpdateBox(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var payload models.BoxUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	payload, err := validate.Update(payload)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	box, err := s.repo.Update(r.Context(), id, payload)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, box)
}

// handleDeleteBox permanently removes a box.
func (s *Server) handleDeleteBox(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListProcesses returns the sorted distinct process names.
func (s *Server) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	processes, err := s.repo.ListProcesses(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, processes)
}

// parseID extracts the {id} path parameter. Writes a 400 and returns
// false when it is not an integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid box id")
		return 0, false
	}
	return id, true
}

// parseQueryOptions reads page, page_size, search, and process from the
// query string, enforcing page >= 1 and 1 <= page_size <= 1000.
func parseQueryOptions(r *http.Request) (db.QueryOptions, error) {
	opts := db.QueryOptions{
		Search:   r.URL.Query().Get("search"),
		Process:  r.URL.Query().Get("process"),
		Page:     1,
		PageSize: defaultPageSize,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return opts, errBadPage
		}
		opts.Page = page
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > maxPageSize {
			return opts, errBadPageSize
		}
		opts.PageSize = size
	}

	return opts, nil
}

var (
	errBadPage     = &paramError{"page must be a positive integer"}
	errBadPageSize = &paramError{"page_size must be between 1 and 1000"}
)

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }
