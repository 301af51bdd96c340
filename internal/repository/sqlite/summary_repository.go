package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/repository"
)

var summaryColumns = []string{
	"profile_id", "game_type", "current_level", "recommended_level", "direction", "confidence",
	"reason_code", "improvement_percent", "velocity_per_week", "current_streak_days",
	"longest_streak_days", "session_count", "average_score", "updated_at",
}

type summaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new SummaryRepository implementation
func NewSummaryRepository(db *sql.DB) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Upsert(ctx context.Context, s models.ProgressSummary) error {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("upserting summary: profile_id=%d, game_type=%s", s.ProfileID, s.GameType)

	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	sqlStr, args, err := sqlBuilder.Insert("progress_summaries").Columns(summaryColumns...).Values(
		s.ProfileID, s.GameType, s.CurrentLevel, s.Decision.RecommendedLevel, string(s.Decision.Direction),
		s.Decision.Confidence, string(s.Decision.ReasonCode), s.Trend.ImprovementPercent, s.Trend.VelocityPerWeek,
		s.Trend.CurrentStreakDays, s.Trend.LongestStreakDays, s.Trend.SessionCount, s.Trend.AverageScore,
		updatedAt.UTC(),
	).Suffix(`ON CONFLICT(profile_id, game_type) DO UPDATE SET
    current_level = excluded.current_level,
    recommended_level = excluded.recommended_level,
    direction = excluded.direction,
    confidence = excluded.confidence,
    reason_code = excluded.reason_code,
    improvement_percent = excluded.improvement_percent,
    velocity_per_week = excluded.velocity_per_week,
    current_streak_days = excluded.current_streak_days,
    longest_streak_days = excluded.longest_streak_days,
    session_count = excluded.session_count,
    average_score = excluded.average_score,
    updated_at = excluded.updated_at`).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to upsert summary: %v", err)
		return err
	}
	return nil
}

// Get returns nil without error when no summary has been computed yet.
func (r *summaryRepository) Get(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("getting summary: profile_id=%d, game_type=%s", profileID, gameType)

	sqlStr, args, err := sqlBuilder.Select(summaryColumns...).From("progress_summaries").
		Where(squirrel.Eq{"profile_id": profileID, "game_type": gameType}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	s, err := scanSummary(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("summary not found: profile_id=%d, game_type=%s", profileID, gameType)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get summary: %v", err)
		return nil, err
	}
	return s, nil
}

func (r *summaryRepository) ListForProfile(ctx context.Context, profileID int64) ([]models.ProgressSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("listing summaries: profile_id=%d", profileID)

	sqlStr, args, err := sqlBuilder.Select(summaryColumns...).From("progress_summaries").
		Where(squirrel.Eq{"profile_id": profileID}).OrderBy("game_type ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list summaries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ProgressSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			log.Error("failed to scan summary row: %v", err)
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSummary(row rowScanner) (*models.ProgressSummary, error) {
	var (
		s         models.ProgressSummary
		direction string
		reason    string
	)
	err := row.Scan(&s.ProfileID, &s.GameType, &s.CurrentLevel, &s.Decision.RecommendedLevel, &direction,
		&s.Decision.Confidence, &reason, &s.Trend.ImprovementPercent, &s.Trend.VelocityPerWeek,
		&s.Trend.CurrentStreakDays, &s.Trend.LongestStreakDays, &s.Trend.SessionCount, &s.Trend.AverageScore,
		&s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Decision.Direction = models.Direction(direction)
	s.Decision.ReasonCode = models.ReasonCode(reason)
	return &s, nil
}
