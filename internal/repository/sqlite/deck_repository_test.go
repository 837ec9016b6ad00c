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

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newDeck(id, name string, created time.Time) models.Deck {
	return models.Deck{ID: id, Name: name, Description: name + " description", CreatedAt: created, UpdatedAt: created}
}

func newCard(id, deckID string, due time.Time) models.Card {
	return models.Card{
		ID:             id,
		DeckID:         deckID,
		Front:          "front " + id,
		Back:           "back " + id,
		Difficulty:     models.DifficultyMedium,
		NextReviewDate: due,
		EaseFactor:     2.5,
		IntervalDays:   1,
		CreatedAt:      t0,
		UpdatedAt:      t0,
	}
}

type DeckRepositorySuite struct {
	suite.Suite
	db    *db.DB
	repo  repository.DeckRepository
	cards repository.CardRepository
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db.DB)
	s.cards = sqlite.NewCardRepository(s.db.DB)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, newDeck("d1", "Verbs", t0)))

	got, err := s.repo.Get(ctx, "d1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Verbs", got.Name)
	s.Assert().Equal("Verbs description", got.Description)
	s.Assert().True(t0.Equal(got.CreatedAt))
}

func (s *DeckRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *DeckRepositorySuite) TestList_CountsCards() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, newDeck("d1", "First", t0)))
	s.Require().NoError(s.repo.Insert(ctx, newDeck("d2", "Second", t0.Add(time.Minute))))
	s.Require().NoError(s.cards.InsertBatch(ctx, []models.Card{
		newCard("c1", "d1", t0),
		newCard("c2", "d1", t0),
	}))

	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 2)
	s.Assert().Equal("First", decks[0].Name)
	s.Assert().Equal(2, decks[0].CardCount)
	s.Assert().Equal("Second", decks[1].Name)
	s.Assert().Equal(0, decks[1].CardCount)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *DeckRepositorySuite) TestUpdate() {
	ctx := context.Background()
	deck := newDeck("d1", "Old", t0)
	s.Require().NoError(s.repo.Insert(ctx, deck))

	deck.Name = "New"
	deck.UpdatedAt = t0.Add(time.Hour)
	s.Require().NoError(s.repo.Update(ctx, deck))

	got, err := s.repo.Get(ctx, "d1")
	s.Require().NoError(err)
	s.Assert().Equal("New", got.Name)
	s.Assert().True(t0.Add(time.Hour).Equal(got.UpdatedAt))

	err = s.repo.Update(ctx, newDeck("missing", "x", t0))
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *DeckRepositorySuite) TestDelete_CascadesCards() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, newDeck("d1", "Deck", t0)))
	s.Require().NoError(s.cards.Insert(ctx, newCard("c1", "d1", t0)))

	ok, err := s.repo.Delete(ctx, "d1")
	s.Require().NoError(err)
	s.Assert().True(ok)

	card, err := s.cards.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Nil(card)

	ok, err = s.repo.Delete(ctx, "d1")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *DeckRepositorySuite) TestInsertWithCards() {
	ctx := context.Background()
	s.Require().NoError(s.repo.InsertWithCards(ctx, newDeck("d1", "Verbs", t0), []models.Card{
		newCard("c1", "d1", t0),
		newCard("c2", "d1", t0),
	}))

	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 1)
	s.Assert().Equal(2, decks[0].CardCount)
}

func (s *DeckRepositorySuite) TestInsertWithCards_FailureLeavesNoDeck() {
	ctx := context.Background()
	err := s.repo.InsertWithCards(ctx, newDeck("d1", "Verbs", t0), []models.Card{
		newCard("c1", "d1", t0),
		newCard("c1", "d1", t0),
	})
	s.Require().Error(err)

	got, err := s.repo.Get(ctx, "d1")
	s.Require().NoError(err)
	s.Assert().Nil(got, "a failed card insert must not leave an empty deck behind")
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
