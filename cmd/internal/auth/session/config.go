package session

import (
	"os"
	"strconv"
	"time"
)

// Config defines runtime configuration for web sessions.
type Config struct {
	// TTL is the lifetime of a web session.
	TTL time.Duration

	// CookieSecure marks the session cookie Secure. Disable only for
	// local plain-HTTP development.
	CookieSecure bool

	// SessionIDBytes is the number of random bytes behind the opaque
	// session id.
	SessionIDBytes int
}

// DefaultConfig returns defaults suitable for development.
func DefaultConfig() Config {
	return Config{
		TTL:            30 * 24 * time.Hour,
		CookieSecure:   true,
		SessionIDBytes: 32,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional:
//   - TRADEBID_SESSION_TTL (Go duration)
//   - TRADEBID_SESSION_COOKIE_SECURE (bool)
//   - TRADEBID_SESSION_ID_BYTES (32..64)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("TRADEBID_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if v := os.Getenv("TRADEBID_SESSION_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, ErrConfig
		}
		cfg.CookieSecure = b
	}

	if v := os.Getenv("TRADEBID_SESSION_ID_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 64 {
			return Config{}, ErrConfig
		}
		cfg.SessionIDBytes = n
	}

	return cfg, nil
}
