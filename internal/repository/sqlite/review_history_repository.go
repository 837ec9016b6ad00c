package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

type reviewHistoryRepository struct {
	db *sql.DB
}

// NewReviewHistoryRepository creates a new ReviewHistoryRepository implementation
func NewReviewHistoryRepository(db *sql.DB) repository.ReviewHistoryRepository {
	return &reviewHistoryRepository{db: db}
}

func (r *reviewHistoryRepository) Insert(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting review history: card_id=%s, response=%s, time=%.2fs", h.CardID, h.Response, h.TimeSeconds)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (id, card_id, deck_id, response, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, h.ID, h.CardID, h.DeckID, string(h.Response), h.TimeSeconds, formatTime(h.ReviewedAt))
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func (r *reviewHistoryRepository) ListByCard(ctx context.Context, cardID string, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	if limit <= 0 {
		limit = 50
	}
	query, args, err := sqlBuilder.
		Select("id", "card_id", "deck_id", "response", "time_seconds", "reviewed_at").
		From("review_history").
		Where(squirrel.Eq{"card_id": cardID}).
		OrderBy("reviewed_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewHistory
	for rows.Next() {
		var (
			h                    models.ReviewHistory
			response, reviewedAt string
		)
		if err := rows.Scan(&h.ID, &h.CardID, &h.DeckID, &response, &h.TimeSeconds, &reviewedAt); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, err
		}
		h.Response = models.Response(response)
		h.ReviewedAt, _ = parseTime(reviewedAt)
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
