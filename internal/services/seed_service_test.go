package services_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/testutil"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

func TestSeedService_SeedsMissingDecksOnce(t *testing.T) {
	ctx := context.Background()
	d := testutil.NewTestDB(t)
	defer testutil.MustClose(t, d)

	deckRepo := sqlite.NewDeckRepository(d.DB)
	cardRepo := sqlite.NewCardRepository(d.DB)
	seed := services.NewSeedService(deckRepo, cardRepo)

	require.NoError(t, deckRepo.Insert(ctx, models.Deck{ID: "mine", Name: "Verb Tenses"}))

	created, err := seed.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created, "existing deck names are left alone")

	decks, err := deckRepo.List(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, deck := range decks {
		counts[deck.Name] = deck.CardCount
	}
	assert.Equal(t, map[string]int{
		"Verb Tenses":             0,
		"Irregular Verbs (1-15)":  15,
		"Business English":        3,
		"Irregular Verbs (16-30)": 15,
	}, counts)

	again, err := seed.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestSeedService_SeededCardsAreDue(t *testing.T) {
	ctx := context.Background()
	d := testutil.NewTestDB(t)
	defer testutil.MustClose(t, d)

	deckRepo := sqlite.NewDeckRepository(d.DB)
	cardRepo := sqlite.NewCardRepository(d.DB)
	_, err := services.NewSeedService(deckRepo, cardRepo).SeedDefaults(ctx)
	require.NoError(t, err)

	decks, err := deckRepo.List(ctx)
	require.NoError(t, err)
	study := services.NewStudyService(nil, deckRepo, cardRepo, sqlite.NewReviewHistoryRepository(d.DB), nil)
	for _, deck := range decks {
		due, err := study.DueCards(ctx, deck.ID)
		require.NoError(t, err)
		assert.Len(t, due, deck.CardCount, deck.Name)
	}
}

func TestSeedService_RenamesLegacyDecksAndRefillsVerbDecks(t *testing.T) {
	ctx := context.Background()
	d := testutil.NewTestDB(t)
	defer testutil.MustClose(t, d)

	deckRepo := sqlite.NewDeckRepository(d.DB)
	cardRepo := sqlite.NewCardRepository(d.DB)
	decks := services.NewDeckService(deckRepo, cardRepo)

	short, err := decks.CreateDeck(ctx, models.DeckInput{Name: "Irregular Verbs"})
	require.NoError(t, err)
	_, err = decks.AddCard(ctx, short.ID, models.NewCard{Front: "ir", Back: "go - went - gone"})
	require.NoError(t, err)

	full, err := decks.CreateDeck(ctx, models.DeckInput{Name: "More Irregular Verbs"})
	require.NoError(t, err)
	var keptIDs []string
	for i := 0; i < 15; i++ {
		card, err := decks.AddCard(ctx, full.ID, models.NewCard{Front: fmt.Sprintf("verb %d", i), Back: "x"})
		require.NoError(t, err)
		keptIDs = append(keptIDs, card.ID)
	}

	created, err := services.NewSeedService(deckRepo, cardRepo).SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created, "only Verb Tenses and Business English are new")

	renamed, err := decks.GetDeck(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, "Irregular Verbs (1-15)", renamed.Name)
	require.Len(t, renamed.Cards, 15, "a verb deck of the wrong size is refilled")
	assert.Equal(t, "arise - arose - arisen", renamed.Cards[0].Back)

	moved, err := decks.GetDeck(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, "Irregular Verbs (16-30)", moved.Name)
	var gotIDs []string
	for _, c := range moved.Cards {
		gotIDs = append(gotIDs, c.ID)
	}
	assert.Equal(t, keptIDs, gotIDs, "a full verb deck keeps its cards and progress")

	summaries, err := deckRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 4)
}

func TestSeedService_LegacyDeckKeptWhenNewNameTaken(t *testing.T) {
	ctx := context.Background()
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)

	var present []models.DeckSummary
	for _, name := range []string{"Irregular Verbs", "Irregular Verbs (1-15)", "Verb Tenses", "Business English", "Irregular Verbs (16-30)"} {
		size := 3
		if name != "Verb Tenses" && name != "Business English" {
			size = 15
		}
		present = append(present, models.DeckSummary{Deck: models.Deck{ID: name, Name: name}, CardCount: size})
	}
	deckRepo.On("List", mock.Anything).Return(present, nil)

	created, err := services.NewSeedService(deckRepo, cardRepo).SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	deckRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cardRepo.AssertNotCalled(t, "ReplaceDeckCards", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeedService_FailedInsertStopsSeeding(t *testing.T) {
	ctx := context.Background()
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)

	deckRepo.On("List", mock.Anything).Return([]models.DeckSummary{}, nil)
	deckRepo.On("InsertWithCards", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("disk full")).Once()

	created, err := services.NewSeedService(deckRepo, cardRepo).SeedDefaults(ctx)
	requireAppError(t, err, errors.ErrCodeInternal)
	assert.Zero(t, created)

	deckRepo.AssertNumberOfCalls(t, "InsertWithCards", 1)
	deckRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	cardRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}
