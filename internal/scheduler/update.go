package scheduler

import (
	"math"
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

// Default settings for new cards.
const (
	InitialEaseFactor = 2.5
	InitialInterval   = 1
	MaxEaseFactor     = 2.5
	easyEaseBonus     = 0.15
)

// ApplyResponse applies one response to card as of now and returns the
// updated copy. Only ResponseEasy moves the card's long-term schedule; the
// other responses only retag it.
func ApplyResponse(card models.Card, resp models.Response, now time.Time) models.Card {
	card.ReviewCount++
	card.UpdatedAt = now

	switch resp {
	case models.ResponseAgain, models.ResponseHard:
		card.Difficulty = models.DifficultyHard
	case models.ResponseGood:
		card.Difficulty = models.DifficultyMedium
	case models.ResponseEasy:
		card.Difficulty = models.DifficultyEasy
		card.EaseFactor = math.Min(MaxEaseFactor, card.EaseFactor+easyEaseBonus)
		card.IntervalDays = max(1, int(math.Ceil(float64(card.IntervalDays)*card.EaseFactor)))
		card.NextReviewDate = now.AddDate(0, 0, card.IntervalDays)
	}
	return card
}
