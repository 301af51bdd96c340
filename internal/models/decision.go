package models

import "time"

// Direction is the way a difficulty decision moves the level.
type Direction string

const (
	DirectionIncrease Direction = "Increase"
	DirectionMaintain Direction = "Maintain"
	DirectionDecrease Direction = "Decrease"
)

// ReasonCode is the closed set of reasons behind a difficulty decision.
type ReasonCode string

const (
	ReasonInsufficientData  ReasonCode = "InsufficientData"
	ReasonStrongPerformance ReasonCode = "StrongPerformance"
	ReasonWeakPerformance   ReasonCode = "WeakPerformance"
	ReasonSteadyPerformance ReasonCode = "SteadyPerformance"
)

type DifficultyDecision struct {
	RecommendedLevel int        `json:"recommended_level"`
	Direction        Direction  `json:"direction"`
	Confidence       float64    `json:"confidence"`
	ReasonCode       ReasonCode `json:"reason_code"`
}

type TrendSummary struct {
	ImprovementPercent float64 `json:"improvement_percent"`
	VelocityPerWeek    float64 `json:"velocity_per_week"`
	CurrentStreakDays  int     `json:"current_streak_days"`
	LongestStreakDays  int     `json:"longest_streak_days"`
	SessionCount       int     `json:"session_count"`
	AverageScore       float64 `json:"average_score"`
}

// ProgressSummary is the cached decision and trend for one profile and game type.
type ProgressSummary struct {
	ProfileID    int64              `json:"profile_id"`
	GameType     string             `json:"game_type"`
	CurrentLevel int                `json:"current_level"`
	Decision     DifficultyDecision `json:"decision"`
	Trend        TrendSummary       `json:"trend"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Recommendation is a decision enriched for display.
type Recommendation struct {
	GameType       string             `json:"game_type"`
	CurrentLevel   int                `json:"current_level"`
	Decision       DifficultyDecision `json:"decision"`
	ReadyToAdvance bool               `json:"ready_to_advance"`
	Message        string             `json:"message,omitempty"`
	SampleSize     int                `json:"sample_size"`
}
