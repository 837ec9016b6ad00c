package repository

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

// DeckRepository handles deck data access. Get and Delete report a missing
// deck as (nil, nil) and false respectively; Update reports it as sql.ErrNoRows.
type DeckRepository interface {
	Get(ctx context.Context, id string) (*models.Deck, error)
	List(ctx context.Context) ([]models.DeckSummary, error)
	Insert(ctx context.Context, deck models.Deck) error
	// InsertWithCards stores a deck and its cards atomically.
	InsertWithCards(ctx context.Context, deck models.Deck, cards []models.Card) error
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CardRepository handles card data access
type CardRepository interface {
	Get(ctx context.Context, id string) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID string) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) error
	InsertBatch(ctx context.Context, cards []models.Card) error
	// ReplaceDeckCards swaps every card of a deck for cards in one transaction.
	ReplaceDeckCards(ctx context.Context, deckID string, cards []models.Card) error
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ReviewHistoryRepository records every answered response
type ReviewHistoryRepository interface {
	Insert(ctx context.Context, entry models.ReviewHistory) error
	ListByCard(ctx context.Context, cardID string, limit int) ([]models.ReviewHistory, error)
}

// StatsRepository aggregates study statistics. An empty deckID covers every deck.
type StatsRepository interface {
	StudyStats(ctx context.Context, deckID string, dayStart time.Time) (*models.StudyStats, error)
}
