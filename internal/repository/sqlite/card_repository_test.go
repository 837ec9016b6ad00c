package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db.DB)
	s.Require().NoError(sqlite.NewDeckRepository(s.db.DB).Insert(context.Background(), newDeck("d1", "Deck", t0)))
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) TestInsertAndGet_RoundTripsFields() {
	ctx := context.Background()
	card := newCard("c1", "d1", t0.Add(72*time.Hour))
	card.Pronunciation = "/həˈloʊ/"
	card.Examples = []string{"Hello there.", "Say hello."}
	card.ReviewCount = 4
	card.EaseFactor = 2.15
	card.IntervalDays = 9

	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(card.Front, got.Front)
	s.Assert().Equal(card.Pronunciation, got.Pronunciation)
	s.Assert().Equal(card.Examples, got.Examples)
	s.Assert().Equal(models.DifficultyMedium, got.Difficulty)
	s.Assert().True(card.NextReviewDate.Equal(got.NextReviewDate))
	s.Assert().Equal(4, got.ReviewCount)
	s.Assert().InDelta(2.15, got.EaseFactor, 1e-9)
	s.Assert().Equal(9, got.IntervalDays)
}

func (s *CardRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *CardRepositorySuite) TestListByDeck_KeepsInsertionOrder() {
	ctx := context.Background()
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.Card{
		newCard("b", "d1", t0),
		newCard("a", "d1", t0),
		newCard("c", "d1", t0),
	}))

	cards, err := s.repo.ListByDeck(ctx, "d1")
	s.Require().NoError(err)
	s.Require().Len(cards, 3)
	s.Assert().Equal("b", cards[0].ID)
	s.Assert().Equal("a", cards[1].ID)
	s.Assert().Equal("c", cards[2].ID)

	empty, err := s.repo.ListByDeck(ctx, "other")
	s.Require().NoError(err)
	s.Assert().Empty(empty)
}

func (s *CardRepositorySuite) TestInsertBatch_RollsBackOnFailure() {
	ctx := context.Background()
	err := s.repo.InsertBatch(ctx, []models.Card{
		newCard("ok", "d1", t0),
		newCard("orphan", "no-such-deck", t0),
	})
	s.Require().Error(err)

	got, err := s.repo.Get(ctx, "ok")
	s.Require().NoError(err)
	s.Assert().Nil(got, "first card should be rolled back")
}

func (s *CardRepositorySuite) TestUpdate() {
	ctx := context.Background()
	card := newCard("c1", "d1", t0)
	s.Require().NoError(s.repo.Insert(ctx, card))

	card.Difficulty = models.DifficultyEasy
	card.IntervalDays = 3
	card.NextReviewDate = t0.AddDate(0, 0, 3)
	card.ReviewCount = 1
	card.UpdatedAt = t0.Add(time.Minute)
	s.Require().NoError(s.repo.Update(ctx, card))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal(models.DifficultyEasy, got.Difficulty)
	s.Assert().Equal(3, got.IntervalDays)
	s.Assert().True(t0.AddDate(0, 0, 3).Equal(got.NextReviewDate))
	s.Assert().Equal(1, got.ReviewCount)

	s.Assert().ErrorIs(s.repo.Update(ctx, newCard("missing", "d1", t0)), sql.ErrNoRows)
}

func (s *CardRepositorySuite) TestUnreadableNextReviewDateScansAsZero() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, newCard("c1", "d1", t0)))
	_, err := s.db.ExecContext(ctx, `UPDATE cards SET next_review_date = 'not a date' WHERE id = 'c1'`)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().True(got.NextReviewDate.IsZero())
}

func (s *CardRepositorySuite) TestZeroNextReviewDateRoundTrips() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, newCard("c1", "d1", time.Time{})))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().True(got.NextReviewDate.IsZero())
}

func (s *CardRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, newCard("c1", "d1", t0)))

	ok, err := s.repo.Delete(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().True(ok)

	ok, err = s.repo.Delete(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *CardRepositorySuite) TestReplaceDeckCards() {
	ctx := context.Background()
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.Card{newCard("old1", "d1", t0), newCard("old2", "d1", t0)}))

	s.Require().NoError(s.repo.ReplaceDeckCards(ctx, "d1", []models.Card{newCard("new1", "d1", t0)}))

	cards, err := s.repo.ListByDeck(ctx, "d1")
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal("new1", cards[0].ID)

	err = s.repo.ReplaceDeckCards(ctx, "d1", []models.Card{newCard("x", "d1", t0), newCard("x", "d1", t0)})
	s.Require().Error(err)
	cards, err = s.repo.ListByDeck(ctx, "d1")
	s.Require().NoError(err)
	s.Assert().Len(cards, 1, "a failed replace keeps the previous cards")
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
