package api

import (
	"net/http"
)

func (s *Server) handleLoadStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": len(s.catalog.List()),
		"stats":     s.catalog.Stats().Snapshot(),
	})
}
