package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/derya/frtutor/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, profileID int64, cardID string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, profileID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, rec models.ProgressRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockProgressRepository) InsertReviewHistory(ctx context.Context, profileID int64, cardID string, known bool, timeSeconds float64) error {
	args := m.Called(ctx, profileID, cardID, known, timeSeconds)
	return args.Error(0)
}
