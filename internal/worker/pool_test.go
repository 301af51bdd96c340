package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/models"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool(3, 16)
	p.Start(context.Background())

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			ran.Add(1)
			return nil
		}}))
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_SubmitQueueFull(t *testing.T) {
	// Not started, so nothing drains the queue.
	p := NewPool(1, 1)
	noop := funcJob{name: "noop", fn: func(context.Context) error { return nil }}

	require.NoError(t, p.Submit(noop))
	assert.ErrorIs(t, p.Submit(noop), ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 4)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_StopDrainsQueue(t *testing.T) {
	p := NewPool(1, 8)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(funcJob{name: "slow", fn: func(context.Context) error {
			time.Sleep(time.Millisecond)
			ran.Add(1)
			return nil
		}}))
	}
	p.Start(context.Background())
	p.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	p := NewPool(1, 8)
	p.Start(context.Background())

	done := make(chan struct{})
	require.NoError(t, p.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, p.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("boom") }}))
	require.NoError(t, p.Submit(funcJob{name: "after", fn: func(context.Context) error {
		close(done)
		return nil
	}}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive earlier jobs")
	}
	p.Stop()
}

type fakeRefresher struct {
	profileID int64
	gameType  string
	err       error
}

func (f *fakeRefresher) RefreshSummary(_ context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	f.profileID, f.gameType = profileID, gameType
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProgressSummary{ProfileID: profileID, GameType: gameType, CurrentLevel: 2}, nil
}

func TestRefreshSummaryJob(t *testing.T) {
	r := &fakeRefresher{}
	job := &RefreshSummaryJob{Refresher: r, ProfileID: 7, GameType: "memory-match"}

	assert.Equal(t, "refresh_summary", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, int64(7), r.profileID)
	assert.Equal(t, "memory-match", r.gameType)

	r.err = errors.New("db down")
	assert.EqualError(t, job.Run(context.Background()), "db down")
}
