package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
	"github.com/vytor/flashdeck/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}})
		require.NoError(t, err)
	}

	pool.Stop()
	assert.Equal(t, int32(5), ran.Load(), "stop drains queued jobs")
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	err := pool.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)

	assert.NotPanics(t, pool.Stop, "second stop is a no-op")
}

func TestPool_SubmitWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	pool.Start(context.Background())

	blocking := funcJob{name: "block", fn: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.NoError(t, pool.Submit(blocking))
	<-started
	require.NoError(t, pool.Submit(funcJob{name: "queued", fn: func(context.Context) error { return nil }}))

	err := pool.Submit(funcJob{name: "overflow", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrQueueFull)

	close(release)
	pool.Stop()
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("kaboom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "after", fn: func(context.Context) error {
		wg.Done()
		return nil
	}}))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not recover from failing jobs")
	}
	pool.Stop()
}

func TestRecordReviewJob(t *testing.T) {
	repo := new(mocks.MockReviewHistoryRepository)
	entry := models.ReviewHistory{ID: "h1", CardID: "c1", DeckID: "d1", Response: models.ResponseGood, TimeSeconds: 3}
	repo.On("Insert", mock.Anything, entry).Return(nil).Once()

	job := &worker.RecordReviewJob{Repo: repo, Entry: entry}

	assert.Equal(t, "record_review", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	repo.AssertExpectations(t)
}

func TestRecordReviewJob_PropagatesError(t *testing.T) {
	repo := new(mocks.MockReviewHistoryRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	job := &worker.RecordReviewJob{Repo: repo, Entry: models.ReviewHistory{ID: "h1"}}

	assert.EqualError(t, job.Run(context.Background()), "disk full")
}
