package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/errors"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/scoring"
	"github.com/vytor/cognitrain/internal/testutil/mocks"
	"github.com/vytor/cognitrain/internal/worker"
)

var fixedNow = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

type sessionFixture struct {
	profiles *mocks.MockProfileRepository
	sessions *mocks.MockSessionRepository
	queue    *mocks.MockJobQueue
	svc      *sessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		profiles: new(mocks.MockProfileRepository),
		sessions: new(mocks.MockSessionRepository),
		queue:    new(mocks.MockJobQueue),
	}
	f.svc = NewSessionService(f.profiles, f.sessions, scoring.NewCalculator(scoring.DefaultConfig()), f.queue).(*sessionService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *sessionFixture) assertExpectations(t *testing.T) {
	f.profiles.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.queue.AssertExpectations(t)
}

func sampleMetrics() models.SessionMetrics {
	return models.SessionMetrics{
		GameType:        "memory-match",
		DifficultyLevel: 1,
		TotalMoves:      20,
		CorrectMatches:  18,
		ErrorCount:      2,
		ElapsedSeconds:  45,
	}
}

func TestRecordSession_ScoresStoresAndEnqueues(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	f.profiles.On("Get", ctx, int64(1)).Return(&models.Profile{ID: 1, Username: "ana"}, nil)
	f.sessions.On("Append", ctx, mock.MatchedBy(func(s models.Session) bool {
		return s.ProfileID == 1 && s.Score.OverallScore == 94 && s.Metrics.CompletedAt.Equal(fixedNow)
	})).Return(int64(42), nil)
	f.queue.On("EnqueueSummaryRefresh", int64(1), "memory-match").Return(nil)

	session, err := f.svc.RecordSession(ctx, 1, sampleMetrics())
	require.NoError(t, err)

	assert.Equal(t, int64(42), session.ID)
	assert.Equal(t, 94, session.Score.OverallScore)
	assert.InDelta(t, 90.0, session.Score.AccuracyPercent, 1e-9)
	f.assertExpectations(t)
}

func TestRecordSession_EnqueueFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	f.profiles.On("Get", ctx, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.sessions.On("Append", ctx, mock.Anything).Return(int64(7), nil)
	f.queue.On("EnqueueSummaryRefresh", int64(1), "memory-match").Return(worker.ErrQueueFull)

	session, err := f.svc.RecordSession(ctx, 1, sampleMetrics())
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.ID)
	f.assertExpectations(t)
}

func TestRecordSession_KeepsCompletedAt(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	at := fixedNow.Add(-2 * time.Hour)

	f.profiles.On("Get", ctx, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.sessions.On("Append", ctx, mock.MatchedBy(func(s models.Session) bool {
		return s.Metrics.CompletedAt.Equal(at)
	})).Return(int64(1), nil)
	f.queue.On("EnqueueSummaryRefresh", int64(1), "memory-match").Return(nil)

	m := sampleMetrics()
	m.CompletedAt = at
	_, err := f.svc.RecordSession(ctx, 1, m)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestRecordSession_Validation(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name   string
		mutate func(*models.SessionMetrics)
	}{
		{"empty game type", func(m *models.SessionMetrics) { m.GameType = "  " }},
		{"level below range", func(m *models.SessionMetrics) { m.DifficultyLevel = 0 }},
		{"level above range", func(m *models.SessionMetrics) { m.DifficultyLevel = 6 }},
		{"negative moves", func(m *models.SessionMetrics) { m.TotalMoves = -1 }},
		{"negative correct", func(m *models.SessionMetrics) { m.CorrectMatches = -1 }},
		{"negative errors", func(m *models.SessionMetrics) { m.ErrorCount = -3 }},
		{"negative elapsed", func(m *models.SessionMetrics) { m.ElapsedSeconds = -5 }},
		{"negative reaction time", func(m *models.SessionMetrics) { m.ReactionTimeMs = &negative }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture()
			m := sampleMetrics()
			tt.mutate(&m)

			_, err := f.svc.RecordSession(context.Background(), 1, m)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeValidation, errors.AsAppError(err).Code)
			f.assertExpectations(t)
		})
	}
}

func TestRecordSession_UnknownProfile(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	f.profiles.On("Get", ctx, int64(9)).Return(nil, nil)

	_, err := f.svc.RecordSession(ctx, 9, sampleMetrics())
	assert.True(t, errors.IsNotFound(err))
	f.assertExpectations(t)
}

func TestRecordSession_StoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	f.profiles.On("Get", ctx, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.sessions.On("Append", ctx, mock.Anything).Return(int64(0), stderrors.New("disk full"))

	_, err := f.svc.RecordSession(ctx, 1, sampleMetrics())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.AsAppError(err).Code)
	f.queue.AssertNotCalled(t, "EnqueueSummaryRefresh", mock.Anything, mock.Anything)
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	filter := models.SessionFilter{ProfileID: 1, GameType: "sequence", Limit: 10}

	f.profiles.On("Get", ctx, int64(1)).Return(&models.Profile{ID: 1}, nil)
	f.sessions.On("History", ctx, filter).Return(nil, nil)

	sessions, err := f.svc.ListSessions(ctx, filter)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
	f.assertExpectations(t)

	_, err = f.svc.ListSessions(ctx, models.SessionFilter{ProfileID: 1, Limit: -1})
	assert.Equal(t, errors.ErrCodeValidation, errors.AsAppError(err).Code)
}

func TestGetSession_OtherProfileIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	f.sessions.On("Get", ctx, int64(5)).Return(&models.Session{ID: 5, ProfileID: 2}, nil)

	_, err := f.svc.GetSession(ctx, 1, 5)
	assert.True(t, errors.IsNotFound(err))

	session, err := f.svc.GetSession(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.ID)
}
