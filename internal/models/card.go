package models

import "time"

// Difficulty is the tag a card carries after its most recent review.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known tags.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Response is the learner's self-assessment for one card.
type Response string

const (
	ResponseAgain Response = "again"
	ResponseHard  Response = "hard"
	ResponseGood  Response = "good"
	ResponseEasy  Response = "easy"
)

// Valid reports whether r is one of again, hard, good or easy.
func (r Response) Valid() bool {
	switch r {
	case ResponseAgain, ResponseHard, ResponseGood, ResponseEasy:
		return true
	}
	return false
}

type Card struct {
	ID            string     `json:"id"`
	DeckID        string     `json:"deck_id"`
	Front         string     `json:"front"`
	Back          string     `json:"back"`
	Pronunciation string     `json:"pronunciation,omitempty"`
	Examples      []string   `json:"examples,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	// NextReviewDate is zero when the stored value was missing or could not
	// be parsed. Such cards are always due.
	NextReviewDate time.Time `json:"next_review_date"`
	ReviewCount    int       `json:"review_count"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a copy of c that shares no slices with it.
func (c Card) Clone() Card {
	if c.Examples != nil {
		c.Examples = append([]string(nil), c.Examples...)
	}
	return c
}

type NewCard struct {
	Front         string   `json:"front" validate:"required,max=500"`
	Back          string   `json:"back" validate:"required,max=500"`
	Pronunciation string   `json:"pronunciation" validate:"max=200"`
	Examples      []string `json:"examples" validate:"max=10,dive,max=500"`
}
