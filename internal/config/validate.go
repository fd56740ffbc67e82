package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}

	if c.Gamification.MaxAwardAmount <= 0 {
		return fmt.Errorf("gamification: max_award_amount must be > 0 (got %d)", c.Gamification.MaxAwardAmount)
	}

	return nil
}

func (s *SRSConfig) validate() error {
	if s.MinEaseFactor <= 0 {
		return fmt.Errorf("min_ease_factor must be > 0 (got %v)", s.MinEaseFactor)
	}
	if s.DefaultEaseFactor < s.MinEaseFactor {
		return fmt.Errorf("default_ease_factor must be >= min_ease_factor (got %v < %v)",
			s.DefaultEaseFactor, s.MinEaseFactor)
	}
	if s.NewItemsPerDay < 0 {
		return fmt.Errorf("new_items_per_day must be >= 0 (got %d)", s.NewItemsPerDay)
	}
	if s.QueueLimit <= 0 {
		return fmt.Errorf("queue_limit must be > 0 (got %d)", s.QueueLimit)
	}
	if s.HistoryRetentionDays < 0 {
		return fmt.Errorf("history_retention_days must be >= 0 (got %d)", s.HistoryRetentionDays)
	}
	return nil
}
