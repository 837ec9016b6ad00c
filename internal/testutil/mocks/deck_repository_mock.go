package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckRepository) List(ctx context.Context) ([]models.DeckSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DeckSummary), args.Error(1)
}

func (m *MockDeckRepository) Insert(ctx context.Context, deck models.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) InsertWithCards(ctx context.Context, deck models.Deck, cards []models.Card) error {
	args := m.Called(ctx, deck, cards)
	return args.Error(0)
}

func (m *MockDeckRepository) Update(ctx context.Context, deck models.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeckRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
