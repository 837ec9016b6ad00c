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

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	var (
		d                    models.Deck
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at, updated_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	d.CreatedAt, _ = parseTime(createdAt)
	d.UpdatedAt, _ = parseTime(updatedAt)
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	query, args, err := sqlBuilder.
		Select("d.id", "d.name", "d.description", "d.created_at", "d.updated_at", "COUNT(c.id)").
		From("decks d").
		LeftJoin("cards c ON c.deck_id = d.id").
		GroupBy("d.id").
		OrderBy("d.created_at ASC", "d.name ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckSummary
	for rows.Next() {
		var (
			s                    models.DeckSummary
			createdAt, updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &createdAt, &updatedAt, &s.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		s.CreatedAt, _ = parseTime(createdAt)
		s.UpdatedAt, _ = parseTime(updatedAt)
		decks = append(decks, s)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	return r.InsertWithCards(ctx, d, nil)
}

func (r *deckRepository) InsertWithCards(ctx context.Context, d models.Deck, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s, cards=%d", d.ID, d.Name, len(cards))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO decks (id, name, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`, d.ID, d.Name, d.Description, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
		if err != nil {
			log.Error("failed to insert deck: %v", err)
			return err
		}
		return insertCards(ctx, tx, cards)
	})
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%s", d.ID)

	query, args, err := sqlBuilder.Update("decks").
		Set("name", d.Name).
		Set("description", d.Description).
		Set("updated_at", formatTime(d.UpdatedAt)).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update deck: %v", err)
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

func (r *deckRepository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return false, err
	}
	return affected(res)
}

func (r *deckRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks`).Scan(&count); err != nil {
		logger.FromContext(ctx).WithPrefix("deck_repo").Error("failed to count decks: %v", err)
		return 0, err
	}
	return count, nil
}
