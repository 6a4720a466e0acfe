package token

import "errors"

var (
	// ErrHMACKeyMissing is returned when HMAC mode is required but the env key is absent.
	ErrHMACKeyMissing = errors.New("token HMAC key missing")

	// ErrHMACKeyTooShort is returned when the configured key is below the minimum byte length.
	ErrHMACKeyTooShort = errors.New("token HMAC key too short")
)
