package services

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	// Stats covers every deck when deckID is empty.
	Stats(ctx context.Context, deckID string) (*models.StudyStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	deckRepo  repository.DeckRepository
	now       func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, deckRepo repository.DeckRepository) StatsService {
	return &statsService{statsRepo: statsRepo, deckRepo: deckRepo, now: time.Now}
}

// startOfDay is local midnight of the day t falls on.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *statsService) Stats(ctx context.Context, deckID string) (*models.StudyStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting study stats: deck_id=%s", deckID)

	if deckID != "" {
		deck, err := s.deckRepo.Get(ctx, deckID)
		if err != nil {
			log.Error("failed to get deck: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if deck == nil {
			return nil, errors.NewNotFoundError("deck", deckID)
		}
	}

	stats, err := s.statsRepo.StudyStats(ctx, deckID, startOfDay(s.now()))
	if err != nil {
		log.Error("failed to get study stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
