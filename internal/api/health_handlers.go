package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
)

// handleHealth is the liveness probe; it answers as long as the process runs.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady answers 503 until the database responds to a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed - database: %v", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
