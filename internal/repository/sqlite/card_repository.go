package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

var cardColumns = []string{
	"id", "deck_id", "front", "back", "pronunciation", "examples", "difficulty",
	"next_review_date", "review_count", "ease_factor", "interval_days", "created_at", "updated_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(log *logger.Logger, row rowScanner) (models.Card, error) {
	var (
		c                                models.Card
		examples, difficulty, nextReview string
		createdAt, updatedAt             string
	)
	err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Pronunciation, &examples, &difficulty,
		&nextReview, &c.ReviewCount, &c.EaseFactor, &c.IntervalDays, &createdAt, &updatedAt)
	if err != nil {
		return c, err
	}
	c.Examples = decodeExamples(examples)
	c.Difficulty = models.Difficulty(difficulty)
	var ok bool
	if c.NextReviewDate, ok = parseTime(nextReview); !ok {
		log.Warn("card has unreadable next review date, treating as due: id=%s, value=%q", c.ID, nextReview)
	}
	c.CreatedAt, _ = parseTime(createdAt)
	c.UpdatedAt, _ = parseTime(updatedAt)
	return c, nil
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	query, args, err := sqlBuilder.Select(cardColumns...).From("cards").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(log, r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%s", deckID)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("created_at ASC", "rowid ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(log, rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	return r.InsertBatch(ctx, []models.Card{c})
}

func (r *cardRepository) InsertBatch(ctx context.Context, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	if len(cards) == 0 {
		return nil
	}
	log.Debug("inserting %d cards", len(cards))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		return insertCards(ctx, tx, cards)
	})
}

func (r *cardRepository) ReplaceDeckCards(ctx context.Context, deckID string, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("replacing cards of deck: deck_id=%s, cards=%d", deckID, len(cards))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, deckID); err != nil {
			log.Error("failed to clear deck cards: %v", err)
			return err
		}
		return insertCards(ctx, tx, cards)
	})
}

// insertCards writes cards inside an open transaction.
func insertCards(ctx context.Context, tx *sql.Tx, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	for _, c := range cards {
		examples, err := encodeExamples(c.Examples)
		if err != nil {
			return err
		}
		query, args, err := sqlBuilder.Insert("cards").
			Columns(cardColumns...).
			Values(c.ID, c.DeckID, c.Front, c.Back, c.Pronunciation, examples, string(c.Difficulty),
				formatTime(c.NextReviewDate), c.ReviewCount, c.EaseFactor, c.IntervalDays,
				formatTime(c.CreatedAt), formatTime(c.UpdatedAt)).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to insert card: id=%s, err=%v", c.ID, err)
			return err
		}
	}
	return nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%s, difficulty=%s, interval=%d, ease=%.2f", c.ID, c.Difficulty, c.IntervalDays, c.EaseFactor)

	examples, err := encodeExamples(c.Examples)
	if err != nil {
		return err
	}
	query, args, err := sqlBuilder.Update("cards").
		SetMap(map[string]any{
			"front":            c.Front,
			"back":             c.Back,
			"pronunciation":    c.Pronunciation,
			"examples":         examples,
			"difficulty":       string(c.Difficulty),
			"next_review_date": formatTime(c.NextReviewDate),
			"review_count":     c.ReviewCount,
			"ease_factor":      c.EaseFactor,
			"interval_days":    c.IntervalDays,
			"updated_at":       formatTime(c.UpdatedAt),
		}).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return err
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return false, err
	}
	return affected(res)
}
