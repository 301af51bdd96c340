package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/worker"
)

type refresherFunc func(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error)

func (f refresherFunc) RefreshSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	return f(ctx, profileID, gameType)
}

func TestWorkerQueue_EnqueueSummaryRefresh(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	got := make(chan string, 1)
	var q JobQueue = NewWorkerQueue(pool, refresherFunc(func(_ context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
		got <- gameType
		return &models.ProgressSummary{ProfileID: profileID, GameType: gameType}, nil
	}))

	require.NoError(t, q.EnqueueSummaryRefresh(3, "sequence"))
	assert.Equal(t, "sequence", <-got)

	pool.Stop()
	assert.ErrorIs(t, q.EnqueueSummaryRefresh(3, "sequence"), worker.ErrPoolStopped)
}
