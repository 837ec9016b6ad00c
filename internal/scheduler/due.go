package scheduler

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// IsDue reports whether card should be reviewed at now. A card without a
// usable review date is due; anomalous reports that case.
func IsDue(card models.Card, now time.Time) (due bool, anomalous bool) {
	if card.NextReviewDate.IsZero() {
		return true, true
	}
	return !card.NextReviewDate.After(now), false
}

// DueCards returns the cards of a deck that are due at now, in their
// original order. It does not modify its input. Anomalies are logged
// through the logger carried by ctx.
func DueCards(ctx context.Context, cards []models.Card, now time.Time) []models.Card {
	log := logger.FromContext(ctx).WithPrefix("scheduler")

	due := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		ok, anomalous := IsDue(c, now)
		if anomalous {
			log.Warn("card has no valid next review date, treating as due: card_id=%s deck_id=%s", c.ID, c.DeckID)
		}
		if ok {
			due = append(due, c.Clone())
		}
	}
	return due
}
