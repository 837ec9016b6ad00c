package worker

import (
	"context"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// RecordReviewJob writes one answered response to the review history.
type RecordReviewJob struct {
	Repo  repository.ReviewHistoryRepository
	Entry models.ReviewHistory
}

func (j *RecordReviewJob) Name() string { return "record_review" }

func (j *RecordReviewJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"card_id":  j.Entry.CardID,
		"response": j.Entry.Response,
	})
	if err := j.Repo.Insert(ctx, j.Entry); err != nil {
		log.Error("failed to record review: %v", err)
		return err
	}
	log.Debug("review recorded")
	return nil
}
