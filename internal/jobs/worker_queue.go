package jobs

import (
	"github.com/vytor/cognitrain/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	refresher worker.SummaryRefresher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, refresher worker.SummaryRefresher) *WorkerQueue {
	return &WorkerQueue{pool: pool, refresher: refresher}
}

func (q *WorkerQueue) EnqueueSummaryRefresh(profileID int64, gameType string) error {
	return q.pool.Submit(&worker.RefreshSummaryJob{
		Refresher: q.refresher,
		ProfileID: profileID,
		GameType:  gameType,
	})
}
