package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) StudyStats(ctx context.Context, deckID string, dayStart time.Time) (*models.StudyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching study stats: deck_id=%s, day_start=%s", deckID, dayStart.Format(time.RFC3339))

	today := formatTime(dayStart)
	query := sqlBuilder.Select("COUNT(*)").
		Column("COALESCE(SUM(CASE WHEN updated_at >= ? THEN 1 ELSE 0 END), 0)", today).
		Column("COALESCE(SUM(CASE WHEN interval_days < ? THEN 1 ELSE 0 END), 0)", models.MatureIntervalDays).
		Column("COALESCE(SUM(CASE WHEN interval_days >= ? THEN 1 ELSE 0 END), 0)", models.MatureIntervalDays).
		From("cards")
	if deckID != "" {
		query = query.Where(squirrel.Eq{"deck_id": deckID})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var s models.StudyStats
	err = r.db.QueryRowContext(ctx, stmt, args...).Scan(&s.TotalCards, &s.ReviewedToday, &s.CardsLearning, &s.CardsMature)
	if err != nil {
		log.Error("failed to query study stats: %v", err)
		return nil, err
	}
	log.Debug("study stats: total=%d, today=%d, learning=%d, mature=%d", s.TotalCards, s.ReviewedToday, s.CardsLearning, s.CardsMature)
	return &s, nil
}
