package srs

import (
	"math"
	"time"
)

// Tuning constants for the memory model. These are policy values and
// changing them changes scheduling behavior for every learner.
const (
	// GrowthFactor scales stability growth after a successful review.
	GrowthFactor = 0.9
	// DiffEaseDelta is subtracted from difficulty on a known answer.
	DiffEaseDelta = 0.15
	// LapseDecay multiplies stability after a failed review.
	LapseDecay = 0.2
	// StabilityFloor is the minimum stability in days.
	StabilityFloor = 0.1
	// DiffHardDelta is added to difficulty on an unknown answer.
	DiffHardDelta = 0.3
	// UnseenRetrievability is the prior recall probability for a card
	// that has never been reviewed.
	UnseenRetrievability = 0.5

	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

// MemoryState is the per-card, per-learner memory model.
//
// Retrievability holds the recall probability at the moment of the last
// review, not a live value. The live value is always recomputed from
// LastReviewAt via CurrentRetrievability; the two must not be conflated.
type MemoryState struct {
	Stability      float64    `json:"s"`
	Difficulty     float64    `json:"d"`
	Retrievability float64    `json:"r"`
	LastReviewAt   *time.Time `json:"last_review_at"`
}

// NewMemoryState returns the initial state for a card on first encounter.
func NewMemoryState() MemoryState {
	return MemoryState{
		Stability:      1.0,
		Difficulty:     5.0,
		Retrievability: 1.0,
		LastReviewAt:   nil,
	}
}

// RetrievabilityAt computes e^(-t/S): the probability of recall after
// elapsedDays given the state's stability. Stability is clamped to
// StabilityFloor so a corrupt zero value can never divide by zero.
func RetrievabilityAt(state MemoryState, elapsedDays float64) float64 {
	s := state.Stability
	if s < StabilityFloor {
		s = StabilityFloor
	}
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	return math.Exp(-elapsedDays / s)
}

// CurrentRetrievability returns the recall probability at now, decayed
// from the last review. A card that was never reviewed has no curve to
// decay along and gets the fixed UnseenRetrievability prior instead.
func CurrentRetrievability(state MemoryState, now time.Time) float64 {
	if state.LastReviewAt == nil {
		return UnseenRetrievability
	}
	elapsedDays := now.Sub(*state.LastReviewAt).Hours() / 24
	return RetrievabilityAt(state, elapsedDays)
}

// ReviewUpdate returns the next memory state after a review outcome.
// prior may be nil for a card seen for the first time.
//
// The returned Retrievability is the value at the time of this review
// (just before the outcome was applied), kept as a snapshot for display
// and diagnostics. The next decay calculation starts from LastReviewAt,
// never from this field.
func ReviewUpdate(prior *MemoryState, known bool, now time.Time) MemoryState {
	state := NewMemoryState()
	r := UnseenRetrievability
	if prior != nil {
		state = *prior
		r = CurrentRetrievability(state, now)
	}

	var s, d float64
	if known {
		s = state.Stability * (1 + GrowthFactor*(1-r))
		d = math.Max(MinDifficulty, state.Difficulty-DiffEaseDelta)
	} else {
		s = math.Max(StabilityFloor, state.Stability*LapseDecay)
		d = math.Min(MaxDifficulty, state.Difficulty+DiffHardDelta)
	}

	reviewedAt := now
	return MemoryState{
		Stability:      s,
		Difficulty:     d,
		Retrievability: r,
		LastReviewAt:   &reviewedAt,
	}
}
