package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/cognitrain/internal/db"
	"github.com/vytor/cognitrain/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertProfile creates a profile row directly and returns its id.
func InsertProfile(t *testing.T, sqlDB *sql.DB, username string) int64 {
	t.Helper()
	res, err := sqlDB.ExecContext(context.Background(), `INSERT INTO profiles (username) VALUES (?)`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// Metrics builds a plausible session for tests.
func Metrics(gameType string, level, total, correct int, at time.Time) models.SessionMetrics {
	return models.SessionMetrics{
		GameType:        gameType,
		DifficultyLevel: level,
		TotalMoves:      total,
		CorrectMatches:  correct,
		ErrorCount:      total - correct,
		ElapsedSeconds:  60,
		CompletedAt:     at,
	}
}
