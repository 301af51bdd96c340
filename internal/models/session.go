package models

import "time"

// SessionMetrics is the raw telemetry of one completed game or activity attempt.
type SessionMetrics struct {
	GameType        string    `json:"game_type"`
	DifficultyLevel int       `json:"difficulty_level"`
	TotalMoves      int       `json:"total_moves"`
	CorrectMatches  int       `json:"correct_matches"`
	ErrorCount      int       `json:"error_count"`
	ElapsedSeconds  int       `json:"elapsed_seconds"`
	ReactionTimeMs  *float64  `json:"reaction_time_ms,omitempty"`
	OptimalMoves    *int      `json:"optimal_moves,omitempty"` // per-game optimum, when the game knows one
	CompletedAt     time.Time `json:"completed_at"`
}

// ScoreBreakdown holds the normalized sub-scores derived from a SessionMetrics.
type ScoreBreakdown struct {
	AccuracyPercent    float64  `json:"accuracy_percent"`
	EfficiencyPercent  float64  `json:"efficiency_percent"`
	SpeedScore         *float64 `json:"speed_score,omitempty"` // nil when the game has no reaction component
	ConsistencyPercent float64  `json:"consistency_percent"`
	DifficultyBonus    float64  `json:"difficulty_bonus"`
	TimeAdjustment     float64  `json:"time_adjustment"`
	OverallScore       int      `json:"overall_score"`
}

// ScoredSession pairs a session's telemetry with its score.
type ScoredSession struct {
	Metrics SessionMetrics `json:"metrics"`
	Score   ScoreBreakdown `json:"score"`
}

// Session is a persisted, scored session owned by a profile.
type Session struct {
	ID        int64 `json:"id"`
	ProfileID int64 `json:"profile_id"`
	ScoredSession
	CreatedAt time.Time `json:"created_at"`
}

type SessionFilter struct {
	ProfileID int64
	GameType  string
	Since     *time.Time
	Limit     int // most recent N; results are still oldest first
}
