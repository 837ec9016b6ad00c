package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) InsertBatch(ctx context.Context, cards []models.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCardRepository) ReplaceDeckCards(ctx context.Context, deckID string, cards []models.Card) error {
	args := m.Called(ctx, deckID, cards)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
