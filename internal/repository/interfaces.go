package repository

import (
	"context"

	"github.com/vytor/cognitrain/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// SessionRepository stores scored sessions. History is always returned
// oldest first.
type SessionRepository interface {
	Append(ctx context.Context, session models.Session) (int64, error)
	Get(ctx context.Context, id int64) (*models.Session, error)
	History(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	GameTypes(ctx context.Context, profileID int64) ([]string, error)
}

// SummaryRepository caches the latest decision and trend per profile and game type.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary models.ProgressSummary) error
	Get(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error)
	ListForProfile(ctx context.Context, profileID int64) ([]models.ProgressSummary, error)
}
