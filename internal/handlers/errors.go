package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"boxtrack/internal/db"
	"boxtrack/internal/validate"
)

// Error is the structured error response body.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes surfaced to clients.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeMissingRequired = "missing_required"
	ErrCodeInvalidFormat   = "invalid_format"
	ErrCodeDuplicateKey    = "duplicate_key"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternal        = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write; the connection may be gone
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{Status: status, Code: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeDomainError maps validation and store errors onto client
// responses. Anything unrecognized is a 500 and gets logged.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var fieldErr *validate.FieldError

	switch {
	case errors.Is(err, db.ErrNotFound):
		writeNotFound(w, "box not found")
	case errors.Is(err, db.ErrDuplicateMAC):
		writeError(w, http.StatusBadRequest, ErrCodeDuplicateKey, "MAC address already registered")
	case errors.As(err, &fieldErr):
		code := ErrCodeInvalidFormat
		if errors.Is(fieldErr.Err, validate.ErrMissingRequired) {
			code = ErrCodeMissingRequired
		}
		writeError(w, http.StatusBadRequest, code, fieldErr.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
