package handlers

import "net/http"

// handleNormalizeProcesses rewrites stored process names to uppercase
// and reports how many rows changed. Safe to run repeatedly; after the
// first successful run it reports zero.
func (s *Server) handleNormalizeProcesses(w http.ResponseWriter, r *http.Request) {
	updated, err := s.repo.NormalizeProcesses(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("processes normalized", "updated", updated)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"updated": updated,
	})
}
