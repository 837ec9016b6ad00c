package models

import "time"

// SessionView is the read-only snapshot of an active study session handed
// to callers for rendering.
type SessionView struct {
	DeckID         string `json:"deck_id"`
	QueueLength    int    `json:"queue_length"`
	CurrentIndex   int    `json:"current_index"`
	TotalCards     int    `json:"total_cards"`
	CompletedCards int    `json:"completed_cards"`
	AnswerRevealed bool   `json:"answer_revealed"`
	CurrentCard    *Card  `json:"current_card,omitempty"`
	HasNext        bool   `json:"has_next"`
}

// ReviewResult is what the study service returns after a response was applied.
type ReviewResult struct {
	Card         Card         `json:"card"`
	Response     Response     `json:"response"`
	Completed    bool         `json:"completed"`
	SessionEnded bool         `json:"session_ended"`
	// CardRemoved is set when the card was deleted while the session ran; it
	// has been taken out of the queue and nothing was stored.
	CardRemoved  bool         `json:"card_removed,omitempty"`
	Session      *SessionView `json:"session"`
}

type ReviewHistory struct {
	ID          string    `json:"id"`
	CardID      string    `json:"card_id"`
	DeckID      string    `json:"deck_id"`
	Response    Response  `json:"response"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}
