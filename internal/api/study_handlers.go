package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/models"
)

type reviewRequest struct {
	Response    models.Response `json:"response" validate:"required,oneof=again hard good easy"`
	TimeSeconds float64         `json:"time_seconds" validate:"gte=0"`
}

type sessionResponse struct {
	Active  bool                `json:"active"`
	Session *models.SessionView `json:"session,omitempty"`
}

type startSessionResponse struct {
	Started bool                `json:"started"`
	Session *models.SessionView `json:"session,omitempty"`
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.StudyService.DueCards(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.StartSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if view == nil {
		writeJSON(w, r, http.StatusOK, startSessionResponse{Started: false})
		return
	}
	writeJSON(w, r, http.StatusCreated, startSessionResponse{Started: true, Session: view})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view := s.StudyService.Session(r.Context())
	writeJSON(w, r, http.StatusOK, sessionResponse{Active: view != nil, Session: view})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	s.StudyService.EndSession(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleAnswer(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.ToggleAnswer(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{Active: true, Session: view})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	result, err := s.StudyService.Review(r.Context(), req.Response, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.Stats(r.Context(), r.URL.Query().Get("deck_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
