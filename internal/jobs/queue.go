package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueReviewHistory(profileID int64, cardID string, known bool, timeSeconds float64) error
}
