package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/jobs"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/scheduler"
)

// StudyService drives the single study session of the process.
type StudyService interface {
	DueCards(ctx context.Context, deckID string) ([]models.Card, error)
	// StartSession returns nil when the deck has nothing due.
	StartSession(ctx context.Context, deckID string) (*models.SessionView, error)
	// Session returns nil when no session is active.
	Session(ctx context.Context) *models.SessionView
	ToggleAnswer(ctx context.Context) (*models.SessionView, error)
	Review(ctx context.Context, resp models.Response, timeSeconds float64) (*models.ReviewResult, error)
	EndSession(ctx context.Context)
}

type studyService struct {
	mu          sync.Mutex
	sched       *scheduler.Scheduler
	deckRepo    repository.DeckRepository
	cardRepo    repository.CardRepository
	historyRepo repository.ReviewHistoryRepository
	queue       jobs.JobQueue
	now         func() time.Time
}

// NewStudyService creates a new StudyService. queue may be nil, in which case
// review history is written inline.
func NewStudyService(
	sched *scheduler.Scheduler,
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	historyRepo repository.ReviewHistoryRepository,
	queue jobs.JobQueue,
) StudyService {
	return &studyService{
		sched:       sched,
		deckRepo:    deckRepo,
		cardRepo:    cardRepo,
		historyRepo: historyRepo,
		queue:       queue,
		now:         time.Now,
	}
}

func (s *studyService) loadDeckCards(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *studyService) DueCards(ctx context.Context, deckID string) ([]models.Card, error) {
	logger.FromContext(ctx).Debug("listing due cards: deck_id=%s", deckID)

	cards, err := s.loadDeckCards(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return scheduler.DueCards(ctx, cards, s.now()), nil
}

func (s *studyService) StartSession(ctx context.Context, deckID string) (*models.SessionView, error) {
	log := logger.FromContext(ctx)

	cards, err := s.loadDeckCards(ctx, deckID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sched.StartSession(ctx, deckID, cards) {
		log.Info("nothing due, no session started: deck_id=%s", deckID)
		return nil, nil
	}
	view, _ := s.sched.View()
	log.Info("study session started: deck_id=%s, cards=%d", deckID, view.TotalCards)
	return &view, nil
}

func (s *studyService) Session(ctx context.Context) *models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.sched.View()
	if !ok {
		return nil
	}
	return &view
}

func (s *studyService) ToggleAnswer(ctx context.Context) (*models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sched.Active() {
		return nil, errors.NewConflictError("no active study session")
	}
	s.sched.ToggleAnswer()
	view, _ := s.sched.View()
	return &view, nil
}

func (s *studyService) Review(ctx context.Context, resp models.Response, timeSeconds float64) (*models.ReviewResult, error) {
	log := logger.FromContext(ctx)

	if !resp.Valid() {
		return nil, errors.NewValidationError("response", "must be one of again, hard, good, easy")
	}
	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.sched.Review(resp)
	if stderrors.Is(err, scheduler.ErrInvalidResponse) {
		return nil, errors.NewValidationError("response", "must be one of again, hard, good, easy")
	}
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if out == nil {
		return nil, errors.NewConflictError("no active study session")
	}
	log.Debug("review applied: card_id=%s, response=%s, completed=%t", out.Card.ID, resp, out.Completed)

	result := &models.ReviewResult{
		Card:         out.Card,
		Response:     out.Response,
		Completed:    out.Completed,
		SessionEnded: out.SessionEnded,
	}

	// The session has already advanced; a failed write is reported but not undone.
	err = s.cardRepo.Update(ctx, out.Card)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		s.dropDeletedCard(ctx, out.Card)
		result.CardRemoved = true
		result.SessionEnded = !s.sched.Active()
	case err != nil:
		log.Error("failed to persist reviewed card: card_id=%s, err=%v", out.Card.ID, err)
		return nil, errors.NewInternalError(err)
	default:
		s.recordHistory(ctx, models.ReviewHistory{
			ID:          uuid.NewString(),
			CardID:      out.Card.ID,
			DeckID:      out.Card.DeckID,
			Response:    resp,
			TimeSeconds: timeSeconds,
			ReviewedAt:  s.now(),
		})
	}

	if view, ok := s.sched.View(); ok {
		result.Session = &view
	}
	if result.SessionEnded {
		log.Info("study session finished: deck_id=%s", out.Card.DeckID)
	}
	return result, nil
}

// dropDeletedCard takes a card that vanished from storage out of the
// session, and ends the session when its whole deck is gone.
func (s *studyService) dropDeletedCard(ctx context.Context, card models.Card) {
	log := logger.FromContext(ctx)
	log.Warn("reviewed card no longer exists, removing it from the session: card_id=%s", card.ID)
	s.sched.Remove(card.ID)

	if !s.sched.Active() {
		return
	}
	deck, err := s.deckRepo.Get(ctx, card.DeckID)
	if err != nil {
		log.Warn("could not check deck of removed card: deck_id=%s, err=%v", card.DeckID, err)
		return
	}
	if deck == nil {
		log.Warn("deck no longer exists, ending study session: deck_id=%s", card.DeckID)
		s.sched.EndSession()
	}
}

// recordHistory never fails the review it belongs to.
func (s *studyService) recordHistory(ctx context.Context, entry models.ReviewHistory) {
	log := logger.FromContext(ctx)

	if s.queue != nil {
		err := s.queue.EnqueueReviewHistory(entry)
		if err == nil {
			return
		}
		log.Warn("could not queue review history, writing inline: %v", err)
	}
	if err := s.historyRepo.Insert(ctx, entry); err != nil {
		log.Warn("failed to store review history: %v", err)
	}
}

func (s *studyService) EndSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched.Active() {
		logger.FromContext(ctx).Info("study session ended early")
	}
	s.sched.EndSession()
}
