package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const progressColumns = "id, profile_id, card_id, course, unit, known, review_count, stability, difficulty, retrievability, last_review_at, next_review_at, last_seen_at"

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, profileID int64, cardID string) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching progress: profile_id=%d, card_id=%s", profileID, cardID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM progress
WHERE profile_id = ? AND card_id = ?
`, profileID, cardID)

	rec, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress for card_id=%s", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return rec, nil
}

func (r *progressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: profile_id=%d, course=%s, unit=%d", filter.ProfileID, filter.Course, filter.Unit)

	query := sqlBuilder.Select(progressColumns).From("progress")
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Course != "" {
		query = query.Where(squirrel.Eq{"course": filter.Course})
	}
	if filter.Unit != 0 {
		query = query.Where(squirrel.Eq{"unit": filter.Unit})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"next_review_at": *filter.DueBefore})
	}
	query = query.OrderBy("card_id")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build progress query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		records = append(records, *rec)
	}
	log.Debug("found %d progress records", len(records))
	return records, rows.Err()
}

func (r *progressRepository) Upsert(ctx context.Context, rec models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: profile_id=%d, card_id=%s, s=%.4f, d=%.4f", rec.ProfileID, rec.CardID, rec.State.Stability, rec.State.Difficulty)

	var lastReviewAt any
	if rec.State.LastReviewAt != nil {
		lastReviewAt = rec.State.LastReviewAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO progress (profile_id, card_id, course, unit, known, review_count, stability, difficulty, retrievability, last_review_at, next_review_at, last_seen_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (profile_id, card_id) DO UPDATE SET
    course = excluded.course,
    unit = excluded.unit,
    known = excluded.known,
    review_count = excluded.review_count,
    stability = excluded.stability,
    difficulty = excluded.difficulty,
    retrievability = excluded.retrievability,
    last_review_at = excluded.last_review_at,
    next_review_at = excluded.next_review_at,
    last_seen_at = excluded.last_seen_at
`, rec.ProfileID, rec.CardID, rec.Course, rec.Unit, rec.Known, rec.ReviewCount,
		rec.State.Stability, rec.State.Difficulty, rec.State.Retrievability,
		lastReviewAt, rec.NextReviewAt.UTC(), rec.LastSeenAt.UTC())
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) InsertReviewHistory(ctx context.Context, profileID int64, cardID string, known bool, timeSeconds float64) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting review history: profile_id=%d, card_id=%s, known=%v", profileID, cardID, known)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (profile_id, card_id, known, time_seconds)
VALUES (?, ?, ?, ?)
`, profileID, cardID, known, timeSeconds)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	var lastReviewAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.ProfileID, &rec.CardID, &rec.Course, &rec.Unit,
		&rec.Known, &rec.ReviewCount,
		&rec.State.Stability, &rec.State.Difficulty, &rec.State.Retrievability,
		&lastReviewAt, &rec.NextReviewAt, &rec.LastSeenAt)
	if err != nil {
		return nil, err
	}
	if lastReviewAt.Valid {
		t := lastReviewAt.Time
		rec.State.LastReviewAt = &t
	}
	return &rec, nil
}
