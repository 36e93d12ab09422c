package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/derya/frtutor/internal/testutil/mocks"
	"github.com/derya/frtutor/internal/worker"
)

func TestHistoryQueue_WritesThroughPool(t *testing.T) {
	done := make(chan struct{})
	repo := new(mocks.MockProgressRepository)
	repo.On("InsertReviewHistory", mock.Anything, int64(1), "u1-bonjour", true, 2.5).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	queue := worker.NewHistoryQueue(pool, repo)
	require.NoError(t, queue.EnqueueReviewHistory(1, "u1-bonjour", true, 2.5))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("history job was not executed")
	}
	pool.Stop()
	repo.AssertExpectations(t)
}

func TestHistoryQueue_FullQueueReturnsError(t *testing.T) {
	repo := new(mocks.MockProgressRepository)

	// No workers started, so the single buffered slot fills up.
	pool := worker.NewPool(1, 1)
	queue := worker.NewHistoryQueue(pool, repo)

	require.NoError(t, queue.EnqueueReviewHistory(1, "a", true, 1))
	err := queue.EnqueueReviewHistory(1, "b", false, 1)
	assert.Error(t, err)
}
