package jobs

import (
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	historyPool *worker.Pool
	historyRepo repository.ReviewHistoryRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(historyPool *worker.Pool, historyRepo repository.ReviewHistoryRepository) JobQueue {
	return &WorkerQueue{
		historyPool: historyPool,
		historyRepo: historyRepo,
	}
}

func (q *WorkerQueue) EnqueueReviewHistory(entry models.ReviewHistory) error {
	return q.historyPool.Submit(&worker.RecordReviewJob{
		Repo:  q.historyRepo,
		Entry: entry,
	})
}
