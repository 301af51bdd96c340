package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueSummaryRefresh(profileID int64, gameType string) error
}
