package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/repository"
)

type placementRepository struct {
	db *sql.DB
}

// NewPlacementRepository creates a new PlacementRepository implementation
func NewPlacementRepository(db *sql.DB) repository.PlacementRepository {
	return &placementRepository{db: db}
}

func (r *placementRepository) Insert(ctx context.Context, rec models.PlacementRecord) error {
	log := logger.FromContext(ctx).WithPrefix("placement_repo")
	log.Debug("inserting placement result: id=%s, profile_id=%d, correct=%d/%d", rec.ID, rec.ProfileID, rec.Correct, rec.Total)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO placement_results (id, profile_id, completed_at, total, correct, suggested_course, suggested_unit, type_stats, unit_stats)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.ProfileID, rec.CompletedAt.UTC(), rec.Total, rec.Correct,
		rec.SuggestedCourse, rec.SuggestedUnit, rec.TypeStatsJSON, rec.UnitStatsJSON)
	if err != nil {
		log.Error("failed to insert placement result: %v", err)
	}
	return err
}

func (r *placementRepository) Latest(ctx context.Context, profileID int64) (*models.PlacementRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("placement_repo")
	log.Debug("fetching latest placement result: profile_id=%d", profileID)

	var rec models.PlacementRecord
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, completed_at, total, correct, suggested_course, suggested_unit, type_stats, unit_stats
FROM placement_results
WHERE profile_id = ?
ORDER BY completed_at DESC
LIMIT 1
`, profileID).Scan(&rec.ID, &rec.ProfileID, &rec.CompletedAt, &rec.Total, &rec.Correct,
		&rec.SuggestedCourse, &rec.SuggestedUnit, &rec.TypeStatsJSON, &rec.UnitStatsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no placement result for profile_id=%d", profileID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get placement result: %v", err)
		return nil, err
	}
	return &rec, nil
}
