package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
)

const (
	// HMACEnvKey is the env var name for the token HMAC secret.
	// #nosec G101 -- not a credential; it's an environment variable name.
	HMACEnvKey = "TRADEBID_TOKEN_HMAC_KEY"

	// derivationVersion is baked into the digest input so a future scheme
	// change cannot collide with values derived today.
	derivationVersion = "v1"
)

// HashSHA256Hex returns a SHA-256 hex digest of s.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashHMACSHA256Hex returns an HMAC-SHA256 hex digest of s using key.
func HashHMACSHA256Hex(s string, key []byte) string {
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(s))
	return hex.EncodeToString(m.Sum(nil))
}

// HMACKeyFromEnv returns the configured HMAC key bytes (trimmed), enforcing a
// minimum byte length. Missing/blank -> ErrHMACKeyMissing; too short ->
// ErrHMACKeyTooShort.
func HMACKeyFromEnv(minBytes int) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(HMACEnvKey))
	if raw == "" {
		return nil, ErrHMACKeyMissing
	}
	b := []byte(raw)
	if minBytes > 0 && len(b) < minBytes {
		return nil, ErrHMACKeyTooShort
	}
	return b, nil
}

// HMACEnabled reports whether the env key is present (non-empty after trim).
// It does not enforce minimum length; use HMACKeyFromEnv for policy checks.
func HMACEnabled() bool {
	return strings.TrimSpace(os.Getenv(HMACEnvKey)) != ""
}

// DeriveOpaqueHex derives the opaque bearer value bound to a user id and an
// issuance timestamp in milliseconds.
//
// With TRADEBID_TOKEN_HMAC_KEY set, the digest is HMAC-SHA256; otherwise it
// falls back to the unkeyed SHA-256 form older clients already hold.
func DeriveOpaqueHex(userID int64, issuedAtMillis int64) string {
	input := derivationVersion + ":" +
		strconv.FormatInt(userID, 10) + ":" +
		strconv.FormatInt(issuedAtMillis, 10)

	key := strings.TrimSpace(os.Getenv(HMACEnvKey))
	if key == "" {
		return HashSHA256Hex(input)
	}
	return HashHMACSHA256Hex(input, []byte(key))
}

// EqualConstantTime compares two token values without leaking a prefix-match
// timing signal.
func EqualConstantTime(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
