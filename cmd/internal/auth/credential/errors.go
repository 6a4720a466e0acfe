package credential

import "errors"

var (
	// ErrInvalidCredentials covers both "no such identifier" and "password
	// mismatch". The two are deliberately indistinguishable to callers so
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAmbiguousIdentifier is returned when a legacy alias resolves to
	// more than one user. It is a data problem, not a user error; callers
	// surface it as a generic failure but log it loudly.
	ErrAmbiguousIdentifier = errors.New("ambiguous identifier")
)
