package session

import "errors"

var (
	// ErrUpstreamUnavailable is returned when a storage or session
	// collaborator failed or timed out. The routing layer maps it to a
	// 5xx-equivalent; it is never presented as an authentication verdict.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
