package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/derya/frtutor/internal/models"
)

// MockPlacementRepository is a mock implementation of repository.PlacementRepository
type MockPlacementRepository struct {
	mock.Mock
}

func (m *MockPlacementRepository) Insert(ctx context.Context, rec models.PlacementRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockPlacementRepository) Latest(ctx context.Context, profileID int64) (*models.PlacementRecord, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlacementRecord), args.Error(1)
}
