package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/models"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.ListDecks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if decks == nil {
		decks = []models.DeckSummary{}
	}
	writeJSON(w, r, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var in models.DeckInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.DeckService.CreateDeck(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	var in models.DeckInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.DeckService.UpdateDeck(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.DeckService.DeleteDeck(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var in models.NewCard
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.DeckService.AddCard(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.DeckService.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
