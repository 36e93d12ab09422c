package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/derya/frtutor/internal/curriculum"
	"github.com/derya/frtutor/internal/errors"
	"github.com/derya/frtutor/internal/jobs"
	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/repository"
	"github.com/derya/frtutor/internal/session"
	"github.com/derya/frtutor/internal/srs"
)

// unknownRetryDelay is how soon a failed card comes due again. The
// due-date policy lives here, not in the memory model: the model owns
// stability, the service turns it into a calendar date.
const unknownRetryDelay = 10 * time.Minute

// SessionStart is the initial working set for one lesson session.
type SessionStart struct {
	Course     string                     `json:"course"`
	Unit       int                        `json:"unit"`
	TotalCards int                        `json:"total_cards"`
	Queue      session.Queue              `json:"queue"`
	Counters   session.Counters           `json:"counters"`
	States     map[string]srs.MemoryState `json:"states"`
}

// ReviewOutcome is everything a caller needs after one answer: the new
// memory state (already persisted), the due date, and the re-sequenced
// session.
type ReviewOutcome struct {
	State        srs.MemoryState  `json:"state"`
	NextReviewAt time.Time        `json:"next_review_at"`
	Queue        session.Queue    `json:"queue"`
	Counters     session.Counters `json:"counters"`
	Complete     bool             `json:"complete"`
}

// LessonService handles study-session business logic
type LessonService interface {
	StartSession(ctx context.Context, profileID int64, unitID string) (*SessionStart, error)
	Review(ctx context.Context, profileID int64, unitID, cardID string, known bool, queue session.Queue, counters session.Counters, timeSeconds float64) (*ReviewOutcome, error)
	Progress(ctx context.Context, profileID int64, course string) ([]models.ProgressRecord, error)
	DueCards(ctx context.Context, profileID int64, limit int) ([]models.ProgressRecord, error)
}

type lessonService struct {
	curriculum   *curriculum.Loader
	progressRepo repository.ProgressRepository
	jobQueue     jobs.JobQueue
	rng          *rand.Rand
}

// NewLessonService creates a new LessonService
func NewLessonService(loader *curriculum.Loader, progressRepo repository.ProgressRepository, jobQueue jobs.JobQueue) LessonService {
	return &lessonService{
		curriculum:   loader,
		progressRepo: progressRepo,
		jobQueue:     jobQueue,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *lessonService) StartSession(ctx context.Context, profileID int64, unitID string) (*SessionStart, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: profile_id=%d, unit=%s", profileID, unitID)

	cards := s.curriculum.UnitCards(unitID)
	if len(cards) == 0 {
		return nil, errors.NewNotFoundError("unit", unitID)
	}

	records, err := s.progressRepo.List(ctx, models.ProgressFilter{
		ProfileID: profileID,
		Course:    cards[0].Course,
		Unit:      cards[0].Unit,
	})
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	states := make(map[string]srs.MemoryState, len(records))
	for _, rec := range records {
		states[rec.CardID] = rec.State
	}

	now := time.Now()
	queue := session.InitialOrder(cards, states, now, s.rng)

	log.Debug("session ready: %d cards, %d with prior state", len(queue), len(states))
	return &SessionStart{
		Course:     cards[0].Course,
		Unit:       cards[0].Unit,
		TotalCards: len(cards),
		Queue:      queue,
		Counters:   session.Counters{},
		States:     states,
	}, nil
}

func (s *lessonService) Review(ctx context.Context, profileID int64, unitID, cardID string, known bool, queue session.Queue, counters session.Counters, timeSeconds float64) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: profile_id=%d, card_id=%s, known=%v", profileID, cardID, known)

	if cardID == "" {
		return nil, errors.NewValidationError("card_id", "cannot be empty")
	}

	card, ok := s.findCard(unitID, cardID)
	if !ok {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	rec, err := s.progressRepo.Get(ctx, profileID, cardID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var prior *srs.MemoryState
	reviewCount := 1
	if rec != nil {
		prior = &rec.State
		reviewCount = rec.ReviewCount + 1
	}

	now := time.Now()
	state := srs.ReviewUpdate(prior, known, now)
	nextReviewAt := nextReviewDate(state, known, now)

	log.Debug("applied review: s=%.4f, d=%.4f, r=%.4f, due=%s", state.Stability, state.Difficulty, state.Retrievability, nextReviewAt.Format(time.RFC3339))

	if err := s.progressRepo.Upsert(ctx, models.ProgressRecord{
		ProfileID:    profileID,
		CardID:       card.ID,
		Course:       card.Course,
		Unit:         card.Unit,
		Known:        known,
		ReviewCount:  reviewCount,
		State:        state,
		NextReviewAt: nextReviewAt,
		LastSeenAt:   now,
	}); err != nil {
		log.Error("failed to save progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// History is best-effort; a full queue must not fail the review.
	if err := s.jobQueue.EnqueueReviewHistory(profileID, card.ID, known, timeSeconds); err != nil {
		log.Warn("failed to enqueue review history: %v", err)
	}

	if counters == nil {
		counters = session.Counters{}
	}
	if known {
		queue, counters = queue.OnKnown(counters, card)
	} else {
		queue, counters = queue.OnUnknown(counters, card)
	}

	return &ReviewOutcome{
		State:        state,
		NextReviewAt: nextReviewAt,
		Queue:        queue,
		Counters:     counters,
		Complete:     session.IsComplete(queue),
	}, nil
}

func (s *lessonService) Progress(ctx context.Context, profileID int64, course string) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading progress: profile_id=%d, course=%s", profileID, course)

	records, err := s.progressRepo.List(ctx, models.ProgressFilter{ProfileID: profileID, Course: course})
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *lessonService) DueCards(ctx context.Context, profileID int64, limit int) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading due cards: profile_id=%d, limit=%d", profileID, limit)

	now := time.Now()
	records, err := s.progressRepo.List(ctx, models.ProgressFilter{ProfileID: profileID, DueBefore: &now, Limit: limit})
	if err != nil {
		log.Error("failed to load due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *lessonService) findCard(unitID, cardID string) (models.Card, bool) {
	for _, card := range s.curriculum.UnitCards(unitID) {
		if card.ID == cardID {
			return card, true
		}
	}
	return models.Card{}, false
}

// nextReviewDate derives the due date from the updated state: a known
// card comes back after its full stability interval, an unknown card
// after a short fixed retry delay.
func nextReviewDate(state srs.MemoryState, known bool, now time.Time) time.Time {
	if !known {
		return now.Add(unknownRetryDelay)
	}
	return now.Add(time.Duration(state.Stability * 24 * float64(time.Hour)))
}
