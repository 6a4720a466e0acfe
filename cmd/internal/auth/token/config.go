package token

import (
	"os"
	"time"
)

// Config controls token freshness policy.
type Config struct {
	// FreshnessWindow is the maximum accepted token age, measured from the
	// issuance timestamp the client asserts.
	FreshnessWindow time.Duration

	// ClockSkew tolerates slightly future-dated issuance timestamps from
	// clients whose clocks run ahead.
	ClockSkew time.Duration
}

// DefaultConfig returns defaults matching the windows the old deployment used.
func DefaultConfig() Config {
	return Config{
		FreshnessWindow: 15 * time.Minute,
		ClockSkew:       30 * time.Second,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Optional (durations must be valid Go duration strings):
//   - TRADEBID_AUTH_TOKEN_FRESHNESS
//   - TRADEBID_AUTH_CLOCK_SKEW
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("TRADEBID_AUTH_TOKEN_FRESHNESS"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.FreshnessWindow = d
	}

	if v := os.Getenv("TRADEBID_AUTH_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.ClockSkew = d
	}

	return cfg, nil
}
