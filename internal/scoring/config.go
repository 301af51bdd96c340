package scoring

import (
	"fmt"
	"sort"
)

// Baseline is the reaction time, in milliseconds, that earns a mid-range
// speed score at a given difficulty level.
type Baseline struct {
	Level  int     `toml:"level"`
	Millis float64 `toml:"millis"`
}

// Config holds every tunable of the score blend.
type Config struct {
	MinLevel int
	MaxLevel int

	// Primary weights are relative; they are rebalanced over whichever
	// components a session actually reports.
	AccuracyWeight   float64
	EfficiencyWeight float64
	SpeedWeight      float64

	// ConsistencyWeight is a fixed share of the blend in [0,1].
	ConsistencyWeight float64

	// EfficiencyFromAccuracy scores efficiency as correct/total when the
	// game does not report an optimal move count.
	EfficiencyFromAccuracy bool

	SpeedBaselines []Baseline
	// SpeedPenaltyPerBaseline is the number of points lost for each
	// baseline-length of reaction time.
	SpeedPenaltyPerBaseline float64

	MaxDifficultyBonus float64
	MaxTimeBonus       float64
	BaseSeconds        float64
	PerLevelSeconds    float64
}

func DefaultConfig() Config {
	return Config{
		MinLevel:               1,
		MaxLevel:               5,
		AccuracyWeight:         3,
		EfficiencyWeight:       3,
		SpeedWeight:            2,
		ConsistencyWeight:      0.2,
		EfficiencyFromAccuracy: true,
		SpeedBaselines: []Baseline{
			{Level: 1, Millis: 3000},
			{Level: 5, Millis: 1000},
		},
		SpeedPenaltyPerBaseline: 50,
		MaxDifficultyBonus:      20,
		MaxTimeBonus:            10,
		BaseSeconds:             30,
		PerLevelSeconds:         15,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if c.MinLevel < 1 {
		return fmt.Errorf("scoring: min level must be >= 1, got %d", c.MinLevel)
	}
	if c.MaxLevel < c.MinLevel {
		return fmt.Errorf("scoring: max level %d is below min level %d", c.MaxLevel, c.MinLevel)
	}
	if c.MaxLevel > 10 {
		return fmt.Errorf("scoring: max level must be <= 10, got %d", c.MaxLevel)
	}
	if c.AccuracyWeight < 0 || c.EfficiencyWeight < 0 || c.SpeedWeight < 0 {
		return fmt.Errorf("scoring: weights must be non-negative")
	}
	if c.AccuracyWeight == 0 {
		return fmt.Errorf("scoring: accuracy weight must be positive")
	}
	if c.ConsistencyWeight < 0 || c.ConsistencyWeight > 1 {
		return fmt.Errorf("scoring: consistency weight must be within [0,1], got %.2f", c.ConsistencyWeight)
	}
	if len(c.SpeedBaselines) == 0 {
		return fmt.Errorf("scoring: at least one speed baseline is required")
	}
	seen := make(map[int]bool, len(c.SpeedBaselines))
	for _, b := range c.SpeedBaselines {
		if b.Millis <= 0 {
			return fmt.Errorf("scoring: baseline for level %d must be positive", b.Level)
		}
		if seen[b.Level] {
			return fmt.Errorf("scoring: duplicate baseline for level %d", b.Level)
		}
		seen[b.Level] = true
	}
	if c.SpeedPenaltyPerBaseline < 0 || c.MaxDifficultyBonus < 0 || c.MaxTimeBonus < 0 {
		return fmt.Errorf("scoring: penalty and bonus caps must be non-negative")
	}
	if c.BaseSeconds < 0 || c.PerLevelSeconds < 0 {
		return fmt.Errorf("scoring: expected time parameters must be non-negative")
	}
	return nil
}

func sortedBaselines(in []Baseline) []Baseline {
	out := make([]Baseline, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}
