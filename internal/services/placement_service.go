package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/derya/frtutor/internal/curriculum"
	"github.com/derya/frtutor/internal/errors"
	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/placement"
	"github.com/derya/frtutor/internal/repository"
)

// PlacementService builds placement tests and scores submitted answers
type PlacementService interface {
	BuildTest(ctx context.Context, course string) ([]placement.Question, error)
	ScoreTest(ctx context.Context, profileID int64, questions []placement.Question, answers []int) (*placement.Result, error)
	LatestResult(ctx context.Context, profileID int64) (*models.PlacementRecord, error)
}

type placementService struct {
	curriculum    *curriculum.Loader
	placementRepo repository.PlacementRepository
	rng           *rand.Rand
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(loader *curriculum.Loader, placementRepo repository.PlacementRepository) PlacementService {
	return &placementService{
		curriculum:    loader,
		placementRepo: placementRepo,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *placementService) BuildTest(ctx context.Context, course string) ([]placement.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("building placement test: course=%s", course)

	pool := s.curriculum.CourseCards(course)
	questions := placement.BuildQuestions(pool, s.rng)
	if len(questions) == 0 {
		return nil, errors.NewUnavailableError("placement test unavailable: no course content loaded")
	}

	log.Debug("built placement test with %d questions", len(questions))
	return questions, nil
}

func (s *placementService) ScoreTest(ctx context.Context, profileID int64, questions []placement.Question, answers []int) (*placement.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("scoring placement test: profile_id=%d, questions=%d, answers=%d", profileID, len(questions), len(answers))

	result := placement.Score(questions, answers, time.Now())

	typeStats, err := json.Marshal(result.TypeStats)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	unitStats, err := json.Marshal(result.UnitStats)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	rec := models.PlacementRecord{
		ID:              uuid.NewString(),
		ProfileID:       profileID,
		CompletedAt:     result.CompletedAt,
		Total:           result.Total,
		Correct:         result.Correct,
		SuggestedCourse: result.SuggestedCourse,
		SuggestedUnit:   result.SuggestedUnit,
		TypeStatsJSON:   string(typeStats),
		UnitStatsJSON:   string(unitStats),
	}

	// The score is already computed; losing the record is worth a
	// warning but not a failed request.
	if err := s.placementRepo.Insert(ctx, rec); err != nil {
		log.Warn("failed to persist placement result: %v", err)
	}

	return &result, nil
}

func (s *placementService) LatestResult(ctx context.Context, profileID int64) (*models.PlacementRecord, error) {
	log := logger.FromContext(ctx)

	rec, err := s.placementRepo.Latest(ctx, profileID)
	if err != nil {
		log.Error("failed to load placement result: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("placement result", "latest")
	}
	return rec, nil
}
