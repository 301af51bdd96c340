package worker

import (
	"context"

	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
)

// SummaryRefresher recomputes the cached progress summary for one game.
// Declared here so the worker package does not import services.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error)
}

type RefreshSummaryJob struct {
	Refresher SummaryRefresher
	ProfileID int64
	GameType  string
}

func (j *RefreshSummaryJob) Name() string { return "refresh_summary" }

func (j *RefreshSummaryJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": j.ProfileID,
		"game_type":  j.GameType,
	})
	summary, err := j.Refresher.RefreshSummary(ctx, j.ProfileID, j.GameType)
	if err != nil {
		return err
	}
	log.Debug("summary refreshed: level=%d, direction=%s", summary.CurrentLevel, summary.Decision.Direction)
	return nil
}
