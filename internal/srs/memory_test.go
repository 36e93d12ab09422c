package srs_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/frtutor/internal/srs"
)

func TestRetrievabilityAt_DecaysMonotonically(t *testing.T) {
	state := srs.MemoryState{Stability: 2.0}

	prev := 2.0 // above any valid retrievability
	for _, days := range []float64{0, 0.5, 1, 2, 4, 8, 30} {
		r := srs.RetrievabilityAt(state, days)
		assert.Greater(t, r, 0.0, "retrievability must stay positive at %v days", days)
		assert.LessOrEqual(t, r, 1.0, "retrievability must not exceed 1 at %v days", days)
		assert.Less(t, r, prev, "retrievability must strictly decrease at %v days", days)
		prev = r
	}
}

func TestRetrievabilityAt_EFoldAtStability(t *testing.T) {
	state := srs.MemoryState{Stability: 3.0}

	// At t == stability the curve is at 1/e (~0.37).
	r := srs.RetrievabilityAt(state, 3.0)
	assert.InDelta(t, 0.3679, r, 0.001)
}

func TestRetrievabilityAt_ZeroStabilityGuard(t *testing.T) {
	state := srs.MemoryState{Stability: 0}

	r := srs.RetrievabilityAt(state, 1.0)
	assert.False(t, r != r, "must not be NaN")
	assert.Greater(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)
}

func TestCurrentRetrievability_NeverReviewed(t *testing.T) {
	state := srs.NewMemoryState()
	assert.Equal(t, 0.5, srs.CurrentRetrievability(state, time.Now()))
}

func TestCurrentRetrievability_DecaysFromLastReview(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	reviewed := now.Add(-48 * time.Hour)
	state := srs.MemoryState{Stability: 2.0, Difficulty: 5.0, LastReviewAt: &reviewed}

	// Two days elapsed with stability 2 → e^-1.
	r := srs.CurrentRetrievability(state, now)
	assert.InDelta(t, 0.3679, r, 0.001)
}

func TestCurrentRetrievability_ClockSkew(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	reviewed := now.Add(2 * time.Hour) // last review "in the future"
	state := srs.MemoryState{Stability: 1.0, LastReviewAt: &reviewed}

	r := srs.CurrentRetrievability(state, now)
	assert.Equal(t, 1.0, r, "negative elapsed time clamps to zero decay")
}

func TestReviewUpdate_FirstEncounter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	next := srs.ReviewUpdate(nil, true, now)

	// r for an unseen card is the 0.5 prior, so s grows by 1 + 0.9*0.5.
	assert.InDelta(t, 1.45, next.Stability, 1e-9)
	assert.InDelta(t, 4.85, next.Difficulty, 1e-9)
	assert.Equal(t, 0.5, next.Retrievability)
	require.NotNil(t, next.LastReviewAt)
	assert.Equal(t, now, *next.LastReviewAt)
}

func TestReviewUpdate_Known(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	reviewed := now.Add(-24 * time.Hour)
	prior := &srs.MemoryState{Stability: 4.0, Difficulty: 5.0, Retrievability: 0.9, LastReviewAt: &reviewed}

	next := srs.ReviewUpdate(prior, true, now)

	assert.GreaterOrEqual(t, next.Stability, prior.Stability, "stability must not shrink on success")
	assert.LessOrEqual(t, next.Difficulty, prior.Difficulty, "difficulty must not grow on success")
	rAtReview := srs.CurrentRetrievability(*prior, now)
	assert.Equal(t, rAtReview, next.Retrievability, "r must snapshot the pre-review value")
	assert.Equal(t, now, *next.LastReviewAt)
}

func TestReviewUpdate_Unknown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	reviewed := now.Add(-24 * time.Hour)
	prior := &srs.MemoryState{Stability: 4.0, Difficulty: 5.0, Retrievability: 0.9, LastReviewAt: &reviewed}

	next := srs.ReviewUpdate(prior, false, now)

	assert.InDelta(t, 0.8, next.Stability, 1e-9, "stability collapses to s*0.2")
	assert.InDelta(t, 5.3, next.Difficulty, 1e-9)
	assert.LessOrEqual(t, next.Stability, prior.Stability)
	assert.GreaterOrEqual(t, next.Difficulty, prior.Difficulty)
}

func TestReviewUpdate_RepeatedLapsesRespectFloor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := srs.NewMemoryState()

	for i := 0; i < 20; i++ {
		state = srs.ReviewUpdate(&state, false, now)
		now = now.Add(time.Hour)
		assert.GreaterOrEqual(t, state.Stability, srs.StabilityFloor)
		assert.LessOrEqual(t, state.Difficulty, srs.MaxDifficulty)
	}
	assert.Equal(t, srs.StabilityFloor, state.Stability)
	assert.Equal(t, srs.MaxDifficulty, state.Difficulty)
}

func TestReviewUpdate_RepeatedSuccessesRespectDifficultyFloor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := srs.NewMemoryState()

	for i := 0; i < 50; i++ {
		prev := state
		state = srs.ReviewUpdate(&state, true, now)
		assert.GreaterOrEqual(t, state.Stability, prev.Stability)
		assert.GreaterOrEqual(t, state.Difficulty, srs.MinDifficulty)
		now = now.Add(24 * time.Hour)
	}
	assert.Equal(t, srs.MinDifficulty, state.Difficulty)
}

func TestMemoryState_JSONFieldNames(t *testing.T) {
	reviewed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := srs.MemoryState{Stability: 1.45, Difficulty: 4.85, Retrievability: 0.5, LastReviewAt: &reviewed}

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "s")
	assert.Contains(t, decoded, "d")
	assert.Contains(t, decoded, "r")
	assert.Contains(t, decoded, "last_review_at")
	assert.Equal(t, 1.45, decoded["s"], "floats must round-trip without rounding")
}
