package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Grader.validate(); err != nil {
		return fmt.Errorf("grader: %w", err)
	}
	if err := c.Learning.validate(); err != nil {
		return fmt.Errorf("learning: %w", err)
	}
	if err := c.Stats.validate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return nil
}

func (g *GraderConfig) validate() error {
	if g.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if g.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", g.Timeout)
	}
	if g.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (got %d)", g.RetryAttempts)
	}
	return nil
}

func (l *LearningConfig) validate() error {
	if l.DueLimitDefault <= 0 {
		return fmt.Errorf("due_limit_default must be > 0 (got %d)", l.DueLimitDefault)
	}
	if l.DueLimitMax < l.DueLimitDefault {
		return fmt.Errorf("due_limit_max must be >= due_limit_default (got %d < %d)", l.DueLimitMax, l.DueLimitDefault)
	}
	return nil
}

func (s *StatsConfig) validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	if s.WeekTarget <= 0 {
		return fmt.Errorf("week_target must be > 0 (got %d)", s.WeekTarget)
	}
	if s.StreakLookbackDays <= 0 {
		return fmt.Errorf("streak_lookback_days must be > 0 (got %d)", s.StreakLookbackDays)
	}
	if s.TrendDays <= 0 {
		return fmt.Errorf("trend_days must be > 0 (got %d)", s.TrendDays)
	}
	return nil
}
