package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReviewHistory(profileID int64, cardID string, known bool, timeSeconds float64) error {
	args := m.Called(profileID, cardID, known, timeSeconds)
	return args.Error(0)
}
