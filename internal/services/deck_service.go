package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/scheduler"
)

// DeckService handles deck and card management
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.DeckSummary, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
	CreateDeck(ctx context.Context, in models.DeckInput) (*models.Deck, error)
	UpdateDeck(ctx context.Context, id string, in models.DeckInput) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	AddCard(ctx context.Context, deckID string, in models.NewCard) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{deckRepo: deckRepo, cardRepo: cardRepo}
}

// newCard builds a card that is due immediately with the initial schedule.
func newCard(deckID string, in models.NewCard, now time.Time) models.Card {
	return models.Card{
		ID:             uuid.NewString(),
		DeckID:         deckID,
		Front:          strings.TrimSpace(in.Front),
		Back:           strings.TrimSpace(in.Back),
		Pronunciation:  strings.TrimSpace(in.Pronunciation),
		Examples:       append([]string(nil), in.Examples...),
		Difficulty:     models.DifficultyMedium,
		NextReviewDate: now,
		EaseFactor:     scheduler.InitialEaseFactor,
		IntervalDays:   scheduler.InitialInterval,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks")

	decks, err := s.deckRepo.List(ctx)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%s", id)

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}

	cards, err := s.cardRepo.ListByDeck(ctx, id)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	deck.Cards = cards
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, in models.DeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	now := time.Now()
	deck := models.Deck{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	log.Debug("creating deck: id=%s, name=%s", deck.ID, deck.Name)

	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &deck, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id string, in models.DeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%s", id)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}

	deck.Name = name
	deck.Description = strings.TrimSpace(in.Description)
	deck.UpdatedAt = time.Now()

	if err := s.deckRepo.Update(ctx, *deck); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("deck", id)
		}
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%s", id)

	ok, err := s.deckRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("deck", id)
	}
	return nil
}

func (s *deckService) AddCard(ctx context.Context, deckID string, in models.NewCard) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding card: deck_id=%s", deckID)

	if strings.TrimSpace(in.Front) == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if strings.TrimSpace(in.Back) == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	card := newCard(deckID, in, time.Now())
	if err := s.cardRepo.Insert(ctx, card); err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *deckService) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s", id)

	ok, err := s.cardRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("card", id)
	}
	return nil
}
