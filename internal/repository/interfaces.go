package repository

import (
	"context"

	"github.com/derya/frtutor/internal/models"
)

// ProfileRepository handles learner profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, name string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// ProgressRepository handles per-card memory state persistence
type ProgressRepository interface {
	Get(ctx context.Context, profileID int64, cardID string) (*models.ProgressRecord, error)
	List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error)
	Upsert(ctx context.Context, rec models.ProgressRecord) error
	InsertReviewHistory(ctx context.Context, profileID int64, cardID string, known bool, timeSeconds float64) error
}

// PlacementRepository handles persisted placement outcomes
type PlacementRepository interface {
	Insert(ctx context.Context, rec models.PlacementRecord) error
	Latest(ctx context.Context, profileID int64) (*models.PlacementRecord, error)
}
