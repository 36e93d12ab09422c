package worker

import (
	"context"
	"fmt"

	"github.com/derya/frtutor/internal/jobs"
	"github.com/derya/frtutor/internal/repository"
)

// HistoryQueue writes review history through the worker pool so a slow
// or failing disk never blocks a review response.
type HistoryQueue struct {
	pool *Pool
	repo repository.ProgressRepository
}

// NewHistoryQueue creates a HistoryQueue backed by the given pool.
func NewHistoryQueue(pool *Pool, repo repository.ProgressRepository) jobs.JobQueue {
	return &HistoryQueue{pool: pool, repo: repo}
}

func (q *HistoryQueue) EnqueueReviewHistory(profileID int64, cardID string, known bool, timeSeconds float64) error {
	job := &reviewHistoryJob{
		repo:        q.repo,
		profileID:   profileID,
		cardID:      cardID,
		known:       known,
		timeSeconds: timeSeconds,
	}
	if !q.pool.TrySubmit(job) {
		return fmt.Errorf("history queue full, dropped %s", job.Name())
	}
	return nil
}

type reviewHistoryJob struct {
	repo        repository.ProgressRepository
	profileID   int64
	cardID      string
	known       bool
	timeSeconds float64
}

func (j *reviewHistoryJob) Name() string {
	return fmt.Sprintf("review-history profile=%d card=%s", j.profileID, j.cardID)
}

func (j *reviewHistoryJob) Run(ctx context.Context) error {
	return j.repo.InsertReviewHistory(ctx, j.profileID, j.cardID, j.known, j.timeSeconds)
}
