package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Put("/decks/{id}", s.handleUpdateDeck)
		r.Delete("/decks/{id}", s.handleDeleteDeck)
		r.Post("/decks/{id}/cards", s.handleAddCard)
		r.Get("/decks/{id}/due", s.handleDueCards)
		r.Post("/decks/{id}/session", s.handleStartSession)
		r.Delete("/cards/{id}", s.handleDeleteCard)

		r.Get("/session", s.handleGetSession)
		r.Delete("/session", s.handleEndSession)
		r.Post("/session/answer", s.handleToggleAnswer)
		r.Post("/session/review", s.handleReview)

		r.Get("/stats", s.handleStats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	return r
}
