package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/scoring"
)

// Tuning is the TOML file that overrides scoring and difficulty defaults.
// Unset keys keep their defaults.
type Tuning struct {
	Scoring    ScoringTuning    `toml:"scoring"`
	Difficulty DifficultyTuning `toml:"difficulty"`
}

type ScoringTuning struct {
	MinLevel                *int               `toml:"min_level"`
	MaxLevel                *int               `toml:"max_level"`
	AccuracyWeight          *float64           `toml:"accuracy_weight"`
	EfficiencyWeight        *float64           `toml:"efficiency_weight"`
	SpeedWeight             *float64           `toml:"speed_weight"`
	ConsistencyWeight       *float64           `toml:"consistency_weight"`
	EfficiencyFromAccuracy  *bool              `toml:"efficiency_from_accuracy"`
	SpeedBaselines          []scoring.Baseline `toml:"speed_baselines"`
	SpeedPenaltyPerBaseline *float64           `toml:"speed_penalty_per_baseline"`
	MaxDifficultyBonus      *float64           `toml:"max_difficulty_bonus"`
	MaxTimeBonus            *float64           `toml:"max_time_bonus"`
	BaseSeconds             *float64           `toml:"base_seconds"`
	PerLevelSeconds         *float64           `toml:"per_level_seconds"`
}

type DifficultyTuning struct {
	MinLevel               *int     `toml:"min_level"`
	MaxLevel               *int     `toml:"max_level"`
	IncreaseThreshold      *float64 `toml:"increase_threshold"`
	DecreaseThreshold      *float64 `toml:"decrease_threshold"`
	TrendDecreaseThreshold *float64 `toml:"trend_decrease_threshold"`
	MinSamplesForDecision  *int     `toml:"min_samples_for_decision"`
	SteadyConfidence       *float64 `toml:"steady_confidence"`
	ReadyConfidence        *float64 `toml:"ready_confidence"`
}

// LoadTuning reads a tuning file. A missing file is not an error.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return Tuning{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Tuning{}, nil
		}
		return Tuning{}, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	var t Tuning
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to decode tuning file: %w", err)
	}
	return t, nil
}

// Apply layers the tuning over the defaults and validates the result.
// When only the scoring range is set, the difficulty range follows it.
func (t Tuning) Apply() (scoring.Config, difficulty.Config, error) {
	sc := scoring.DefaultConfig()
	s := t.Scoring
	setInt(&sc.MinLevel, s.MinLevel)
	setInt(&sc.MaxLevel, s.MaxLevel)
	setFloat(&sc.AccuracyWeight, s.AccuracyWeight)
	setFloat(&sc.EfficiencyWeight, s.EfficiencyWeight)
	setFloat(&sc.SpeedWeight, s.SpeedWeight)
	setFloat(&sc.ConsistencyWeight, s.ConsistencyWeight)
	if s.EfficiencyFromAccuracy != nil {
		sc.EfficiencyFromAccuracy = *s.EfficiencyFromAccuracy
	}
	if len(s.SpeedBaselines) > 0 {
		sc.SpeedBaselines = s.SpeedBaselines
	}
	setFloat(&sc.SpeedPenaltyPerBaseline, s.SpeedPenaltyPerBaseline)
	setFloat(&sc.MaxDifficultyBonus, s.MaxDifficultyBonus)
	setFloat(&sc.MaxTimeBonus, s.MaxTimeBonus)
	setFloat(&sc.BaseSeconds, s.BaseSeconds)
	setFloat(&sc.PerLevelSeconds, s.PerLevelSeconds)

	dc := difficulty.DefaultConfig()
	dc.MinLevel, dc.MaxLevel = sc.MinLevel, sc.MaxLevel
	d := t.Difficulty
	setInt(&dc.MinLevel, d.MinLevel)
	setInt(&dc.MaxLevel, d.MaxLevel)
	setFloat(&dc.IncreaseThreshold, d.IncreaseThreshold)
	setFloat(&dc.DecreaseThreshold, d.DecreaseThreshold)
	setFloat(&dc.TrendDecreaseThreshold, d.TrendDecreaseThreshold)
	setInt(&dc.MinSamplesForDecision, d.MinSamplesForDecision)
	setFloat(&dc.SteadyConfidence, d.SteadyConfidence)
	setFloat(&dc.ReadyConfidence, d.ReadyConfidence)

	if err := sc.Validate(); err != nil {
		return sc, dc, err
	}
	if err := dc.Validate(); err != nil {
		return sc, dc, err
	}
	if dc.MinLevel < sc.MinLevel || dc.MaxLevel > sc.MaxLevel {
		return sc, dc, fmt.Errorf("difficulty range [%d,%d] exceeds scoring range [%d,%d]",
			dc.MinLevel, dc.MaxLevel, sc.MinLevel, sc.MaxLevel)
	}
	return sc, dc, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
