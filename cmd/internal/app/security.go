package app

import (
	"errors"

	"tradebid/cmd/security/token"
)

// ValidateSecurityConfig enforces the startup security policy.
//
// Fail-fast: when the operator requires HMAC token derivation, the process
// refuses to start rather than silently serving the legacy unkeyed digest.
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireTokenHMAC {
		return nil
	}

	// Minimum 32 bytes for an HMAC-SHA256 secret, measured as raw bytes.
	if _, err := token.HMACKeyFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrHMACKeyMissing):
			return errors.New("security policy: TRADEBID_REQUIRE_TOKEN_HMAC=true but TRADEBID_TOKEN_HMAC_KEY is missing")
		case errors.Is(err, token.ErrHMACKeyTooShort):
			return errors.New("security policy: TRADEBID_REQUIRE_TOKEN_HMAC=true but TRADEBID_TOKEN_HMAC_KEY is too short (min 32 bytes)")
		default:
			return err
		}
	}

	// Hard assertion: the derivation module must actually be in HMAC mode.
	if !token.HMACEnabled() {
		return errors.New("security policy: TRADEBID_REQUIRE_TOKEN_HMAC=true but token derivation is not in HMAC mode")
	}

	return nil
}
