package models

import (
	"time"

	"github.com/derya/frtutor/internal/srs"
)

// ProgressRecord is a learner's persisted state for one card. The
// embedded memory state is the long-term model; Known and ReviewCount
// summarize the review history for display.
type ProgressRecord struct {
	ID           int64           `json:"id"`
	ProfileID    int64           `json:"profile_id"`
	CardID       string          `json:"card_id"`
	Course       string          `json:"course"`
	Unit         int             `json:"unit"`
	Known        bool            `json:"known"`
	ReviewCount  int             `json:"review_count"`
	State        srs.MemoryState `json:"state"`
	NextReviewAt time.Time       `json:"next_review_at"`
	LastSeenAt   time.Time       `json:"last_seen_at"`
}

// ProgressFilter narrows progress queries. Zero values are ignored.
type ProgressFilter struct {
	ProfileID int64
	Course    string
	Unit      int
	DueBefore *time.Time
	Limit     int
}
