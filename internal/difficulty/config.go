package difficulty

import "fmt"

// Config bounds the level range and sets the score thresholds that drive
// level changes. Call sites with different level ranges use different
// configs rather than different rules.
type Config struct {
	MinLevel               int
	MaxLevel               int
	IncreaseThreshold      float64 // average score strictly above this may raise the level
	DecreaseThreshold      float64 // average score strictly below this may lower the level
	TrendDecreaseThreshold float64 // improvement percent strictly below this may lower the level
	MinSamplesForDecision  int
	SteadyConfidence       float64
	ReadyConfidence        float64 // confidence an increase needs to count as ready to advance
}

func DefaultConfig() Config {
	return Config{
		MinLevel:               1,
		MaxLevel:               5,
		IncreaseThreshold:      75,
		DecreaseThreshold:      40,
		TrendDecreaseThreshold: -10,
		MinSamplesForDecision:  3,
		SteadyConfidence:       0.7,
		ReadyConfidence:        0.7,
	}
}

func (c Config) Validate() error {
	if c.MinLevel < 1 {
		return fmt.Errorf("difficulty: min level must be >= 1, got %d", c.MinLevel)
	}
	if c.MaxLevel < c.MinLevel {
		return fmt.Errorf("difficulty: max level %d is below min level %d", c.MaxLevel, c.MinLevel)
	}
	if c.IncreaseThreshold <= 0 || c.IncreaseThreshold >= 100 {
		return fmt.Errorf("difficulty: increase threshold must be within (0,100), got %.1f", c.IncreaseThreshold)
	}
	if c.DecreaseThreshold <= 0 || c.DecreaseThreshold > c.IncreaseThreshold {
		return fmt.Errorf("difficulty: decrease threshold must be within (0,%.1f], got %.1f", c.IncreaseThreshold, c.DecreaseThreshold)
	}
	if c.TrendDecreaseThreshold > 0 {
		return fmt.Errorf("difficulty: trend decrease threshold must not be positive, got %.1f", c.TrendDecreaseThreshold)
	}
	if c.MinSamplesForDecision < 1 {
		return fmt.Errorf("difficulty: min samples must be >= 1, got %d", c.MinSamplesForDecision)
	}
	if c.SteadyConfidence < 0 || c.SteadyConfidence > 1 || c.ReadyConfidence < 0 || c.ReadyConfidence > 1 {
		return fmt.Errorf("difficulty: confidences must be within [0,1]")
	}
	return nil
}

func (c Config) clampLevel(level int) int {
	return min(max(level, c.MinLevel), c.MaxLevel)
}
