package token

import "errors"

var (
	// ErrInvalidToken is returned when the opaque value does not match the
	// asserted (user id, timestamp) pair.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token is older than the
	// freshness window, even if the opaque value matches.
	ErrExpiredToken = errors.New("expired token")

	// ErrUnknownUser is returned when the asserted user id has no record.
	ErrUnknownUser = errors.New("unknown user")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
