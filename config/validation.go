package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags first, then the cross-field rules the tags
// cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := validateRateLimit(&cfg.Client.RateLimit); err != nil {
		return fmt.Errorf("rate limit config: %w", err)
	}
	if err := validateBreaker(&cfg.Client.Breaker); err != nil {
		return fmt.Errorf("breaker config: %w", err)
	}
	return nil
}

func validateRateLimit(cfg *RateLimitConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive when enabled")
	}
	if cfg.Burst <= 0 {
		return fmt.Errorf("burst must be positive when enabled")
	}
	return nil
}

func validateBreaker(cfg *BreakerConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.ConsecutiveFailures == 0 {
		return fmt.Errorf("consecutive_failures must be positive when enabled")
	}
	return nil
}
