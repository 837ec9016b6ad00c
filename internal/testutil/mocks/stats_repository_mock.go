package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) StudyStats(ctx context.Context, deckID string, dayStart time.Time) (*models.StudyStats, error) {
	args := m.Called(ctx, deckID, dayStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyStats), args.Error(1)
}
