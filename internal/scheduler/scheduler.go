// Package scheduler decides which cards are due, in what order they come up
// during a study session, and how each response changes a card.
//
// A session drills its cards until every one of them has been answered
// "easy". Cards answered again/hard/good are pushed back a few positions in
// the queue, nearer for weaker answers. Only an "easy" answer removes a card
// from the session and moves its long-term review date.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// ErrInvalidResponse is returned by Review for a response other than
// again, hard, good or easy.
var ErrInvalidResponse = errors.New("scheduler: invalid response")

// Rand is the source of the requeue jitter. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// requeueOffset places a card base+[0,spread) positions after its old slot.
type requeueOffset struct {
	base   int
	spread int
}

var requeueOffsets = map[models.Response]requeueOffset{
	models.ResponseAgain: {base: 1, spread: 2},
	models.ResponseHard:  {base: 2, spread: 3},
	models.ResponseGood:  {base: 4, spread: 4},
}

// Session is one study pass over the due cards of a deck.
type Session struct {
	DeckID           string
	CardsToReview    []models.Card
	CurrentCardIndex int
	TotalCards       int
	CompletedCards   int
}

func (s *Session) clone() *Session {
	c := *s
	c.CardsToReview = make([]models.Card, len(s.CardsToReview))
	for i, card := range s.CardsToReview {
		c.CardsToReview[i] = card.Clone()
	}
	return &c
}

// Outcome describes the effect of one Review call.
type Outcome struct {
	Card         models.Card // updated card, to be persisted by the caller
	Response     models.Response
	Completed    bool // card left the session
	SessionEnded bool
}

// Scheduler owns at most one active Session. It is not safe for concurrent
// use; callers serialize access.
type Scheduler struct {
	rng            Rand
	now            func() time.Time
	log            *logger.Logger
	session        *Session
	answerRevealed bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRand sets the jitter source used when requeueing cards.
func WithRand(r Rand) Option {
	return func(s *Scheduler) {
		s.rng = r
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithLogger sets the logger used for session events.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// New creates a new Scheduler with no active session.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
		log: logger.Default().WithPrefix("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession opens a session over the cards of deckID that are due now.
// It reports false, leaving no session active, when nothing is due. An
// already active session is replaced.
func (s *Scheduler) StartSession(ctx context.Context, deckID string, cards []models.Card) bool {
	due := DueCards(ctx, cards, s.now())
	s.answerRevealed = false

	if len(due) == 0 {
		s.log.Debug("nothing to study: deck_id=%s", deckID)
		s.session = nil
		return false
	}

	s.session = &Session{
		DeckID:           deckID,
		CardsToReview:    due,
		CurrentCardIndex: 0,
		TotalCards:       len(due),
		CompletedCards:   0,
	}
	s.checkInvariants()
	s.log.Debug("session started: deck_id=%s, cards=%d", deckID, len(due))
	return true
}

// EndSession discards the active session, if any.
func (s *Scheduler) EndSession() {
	if s.session != nil {
		s.log.Debug("session ended: deck_id=%s, completed=%d/%d",
			s.session.DeckID, s.session.CompletedCards, s.session.TotalCards)
	}
	s.session = nil
	s.answerRevealed = false
}

// ToggleAnswer flips the answer-revealed flag and returns its new value.
// Without an active session it does nothing and returns false.
func (s *Scheduler) ToggleAnswer() bool {
	if s.session == nil {
		return false
	}
	s.answerRevealed = !s.answerRevealed
	return s.answerRevealed
}

func (s *Scheduler) Active() bool {
	return s.session != nil
}

func (s *Scheduler) AnswerRevealed() bool {
	return s.answerRevealed
}

// Session returns a copy of the active session, or nil.
func (s *Scheduler) Session() *Session {
	if s.session == nil {
		return nil
	}
	return s.session.clone()
}

// View returns the caller-facing snapshot of the active session.
func (s *Scheduler) View() (models.SessionView, bool) {
	if s.session == nil {
		return models.SessionView{}, false
	}
	sess := s.session
	current := sess.CardsToReview[sess.CurrentCardIndex].Clone()
	return models.SessionView{
		DeckID:         sess.DeckID,
		QueueLength:    len(sess.CardsToReview),
		CurrentIndex:   sess.CurrentCardIndex,
		TotalCards:     sess.TotalCards,
		CompletedCards: sess.CompletedCards,
		AnswerRevealed: s.answerRevealed,
		CurrentCard:    &current,
		HasNext:        len(sess.CardsToReview) > 1,
	}, true
}

// Review applies resp to the current card and reorders the queue. Without
// an active session it is a no-op and returns a nil Outcome.
func (s *Scheduler) Review(resp models.Response) (*Outcome, error) {
	if s.session == nil {
		s.log.Debug("review ignored, no active session: response=%s", resp)
		return nil, nil
	}
	if !resp.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResponse, resp)
	}
	s.checkInvariants()

	sess := s.session
	idx := sess.CurrentCardIndex
	card := ApplyResponse(sess.CardsToReview[idx], resp, s.now())
	out := &Outcome{Card: card.Clone(), Response: resp}

	queue := slices.Delete(sess.CardsToReview, idx, idx+1)
	if resp == models.ResponseEasy {
		sess.CompletedCards++
		out.Completed = true
		if idx >= len(queue) && len(queue) > 0 {
			idx = 0
		}
	} else {
		off := requeueOffsets[resp]
		pos := min(idx+off.base+s.rng.Intn(off.spread), len(queue))
		queue = slices.Insert(queue, pos, card)
		if idx >= len(queue) {
			idx = 0
		}
	}
	sess.CardsToReview = queue
	sess.CurrentCardIndex = idx
	s.answerRevealed = false

	s.log.Debug("card reviewed: card_id=%s, response=%s, queue=%d, index=%d, completed=%d",
		card.ID, resp, len(queue), idx, sess.CompletedCards)

	if len(queue) == 0 {
		s.log.Info("session finished: deck_id=%s, cards=%d", sess.DeckID, sess.TotalCards)
		s.session = nil
		out.SessionEnded = true
		return out, nil
	}
	s.checkInvariants()
	return out, nil
}

// Remove drops cardID from the active session without counting it as
// completed. The session ends when its queue runs empty. It reports whether
// the card was queued.
func (s *Scheduler) Remove(cardID string) bool {
	if s.session == nil {
		return false
	}
	sess := s.session
	i := slices.IndexFunc(sess.CardsToReview, func(c models.Card) bool { return c.ID == cardID })
	if i < 0 {
		return false
	}

	sess.CardsToReview = slices.Delete(sess.CardsToReview, i, i+1)
	if i < sess.CurrentCardIndex {
		sess.CurrentCardIndex--
	} else if i == sess.CurrentCardIndex {
		s.answerRevealed = false
	}
	if sess.CurrentCardIndex >= len(sess.CardsToReview) {
		sess.CurrentCardIndex = 0
	}
	s.log.Debug("card removed from session: card_id=%s, queue=%d", cardID, len(sess.CardsToReview))

	if len(sess.CardsToReview) == 0 {
		s.log.Info("session emptied: deck_id=%s", sess.DeckID)
		s.session = nil
		s.answerRevealed = false
		return true
	}
	s.checkInvariants()
	return true
}

// checkInvariants panics when the queue bookkeeping is broken. That can only
// happen through a bug in Review, never through caller input.
func (s *Scheduler) checkInvariants() {
	sess := s.session
	n := len(sess.CardsToReview)
	if n == 0 {
		panic("scheduler: active session has an empty queue")
	}
	if sess.CurrentCardIndex < 0 || sess.CurrentCardIndex >= n {
		panic(fmt.Sprintf("scheduler: current index %d outside queue of %d cards", sess.CurrentCardIndex, n))
	}
	seen := make(map[string]struct{}, n)
	for _, c := range sess.CardsToReview {
		if _, dup := seen[c.ID]; dup {
			panic(fmt.Sprintf("scheduler: card %s queued more than once", c.ID))
		}
		seen[c.ID] = struct{}{}
	}
}
