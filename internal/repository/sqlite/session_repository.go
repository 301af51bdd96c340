package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/models"
	"github.com/vytor/cognitrain/internal/repository"
)

var sessionColumns = []string{
	"id", "profile_id", "game_type", "difficulty_level", "total_moves", "correct_matches",
	"error_count", "elapsed_seconds", "reaction_time_ms", "optimal_moves", "completed_at",
	"accuracy_percent", "efficiency_percent", "speed_score", "consistency_percent",
	"difficulty_bonus", "time_adjustment", "overall_score", "created_at",
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Append(ctx context.Context, s models.Session) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("appending session: profile_id=%d, game_type=%s, level=%d, score=%d",
		s.ProfileID, s.Metrics.GameType, s.Metrics.DifficultyLevel, s.Score.OverallScore)

	m, b := s.Metrics, s.Score
	query := sqlBuilder.Insert("sessions").Columns(
		"profile_id", "game_type", "difficulty_level", "total_moves", "correct_matches",
		"error_count", "elapsed_seconds", "reaction_time_ms", "optimal_moves", "completed_at",
		"accuracy_percent", "efficiency_percent", "speed_score", "consistency_percent",
		"difficulty_bonus", "time_adjustment", "overall_score",
	).Values(
		s.ProfileID, m.GameType, m.DifficultyLevel, m.TotalMoves, m.CorrectMatches,
		m.ErrorCount, m.ElapsedSeconds, nullFloat(m.ReactionTimeMs), nullInt(m.OptimalMoves), m.CompletedAt.UTC(),
		b.AccuracyPercent, b.EfficiencyPercent, nullFloat(b.SpeedScore), b.ConsistencyPercent,
		b.DifficultyBonus, b.TimeAdjustment, b.OverallScore,
	)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session appended: id=%d", id)
	return id, nil
}

// Get returns nil without error when the session does not exist.
func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	sqlStr, args, err := sqlBuilder.Select(sessionColumns...).From("sessions").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	s, err := scanSession(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) History(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("loading history: profile_id=%d, game_type=%s, limit=%d", filter.ProfileID, filter.GameType, filter.Limit)

	query := sqlBuilder.Select(sessionColumns...).From("sessions").
		Where(squirrel.Eq{"profile_id": filter.ProfileID})
	if filter.GameType != "" {
		query = query.Where(squirrel.Eq{"game_type": filter.GameType})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": filter.Since.UTC()})
	}
	// Newest first so LIMIT keeps the most recent sessions; reversed below.
	query = query.OrderBy("completed_at DESC", "id DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, nil
}

func (r *sessionRepository) GameTypes(ctx context.Context, profileID int64) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing game types: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT game_type
FROM sessions
WHERE profile_id = ?
ORDER BY game_type ASC
`, profileID)
	if err != nil {
		log.Error("failed to list game types: %v", err)
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var gt string
		if err := rows.Scan(&gt); err != nil {
			log.Error("failed to scan game type: %v", err)
			return nil, err
		}
		types = append(types, gt)
	}
	return types, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		s        models.Session
		reaction sql.NullFloat64
		optimal  sql.NullInt64
		speed    sql.NullFloat64
	)
	m, b := &s.Metrics, &s.Score
	err := row.Scan(&s.ID, &s.ProfileID, &m.GameType, &m.DifficultyLevel, &m.TotalMoves, &m.CorrectMatches,
		&m.ErrorCount, &m.ElapsedSeconds, &reaction, &optimal, &m.CompletedAt,
		&b.AccuracyPercent, &b.EfficiencyPercent, &speed, &b.ConsistencyPercent,
		&b.DifficultyBonus, &b.TimeAdjustment, &b.OverallScore, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.ReactionTimeMs = floatPtr(reaction)
	m.OptimalMoves = intPtr(optimal)
	b.SpeedScore = floatPtr(speed)
	return &s, nil
}
