package identity

import "errors"

// Sentinel error kinds (stable for errors.Is and for mapping to API status codes).
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrNotFound     = errors.New("not_found")
	ErrAmbiguous    = errors.New("ambiguous_identifier")
	ErrUnavailable  = errors.New("upstream_unavailable")
)
