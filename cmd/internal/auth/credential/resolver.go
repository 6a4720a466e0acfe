// Package credential resolves a login identifier and plaintext password to a
// user record, across every identifier form and hash scheme still in use.
package credential

import (
	"context"
	"errors"
	"log/slog"

	"tradebid/cmd/identity"
	"tradebid/cmd/security/password"
)

// Resolver implements the login-time credential check.
//
// Lookup order is username (exact, case-sensitive), then email, then legacy
// alias; the first hit wins. Password verification happens only after a hit,
// but a miss still burns a dummy verify so response timing does not reveal
// whether the identifier exists.
type Resolver struct {
	log   *slog.Logger
	users identity.Store

	// dummyRecord is verified against on lookup misses for timing
	// resistance. It is a throwaway modern record, never a real credential.
	dummyRecord string
}

// NewResolver constructs a Resolver.
func NewResolver(log *slog.Logger, users identity.Store) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	r := &Resolver{log: log, users: users}
	if rec, err := password.NewModern("dummy-password-for-timing-only"); err == nil {
		r.dummyRecord = rec
	}
	return r
}

// Resolve returns the user record matching (identifier, plain).
//
// Failures collapse to ErrInvalidCredentials except for ambiguity
// (ErrAmbiguousIdentifier) and upstream storage errors, which pass through
// for the caller to map to a 5xx-equivalent.
func (r *Resolver) Resolve(ctx context.Context, identifier, plain string) (identity.User, error) {
	u, found, err := r.lookup(ctx, identifier)
	if err != nil {
		return identity.User{}, err
	}
	if !found {
		if r.dummyRecord != "" {
			_, _ = password.Verify(r.dummyRecord, plain)
		}
		return identity.User{}, ErrInvalidCredentials
	}

	ok, err := password.Verify(u.PasswordRecord, plain)
	if err != nil {
		if errors.Is(err, password.ErrCorruptRecord) {
			// Fail closed, never crash the request. The record prefix is
			// enough to find the row; the full value stays out of logs.
			r.log.Error("auth.credential.corrupt_record",
				"user_id", u.ID,
				"record_prefix", password.Redact(u.PasswordRecord),
			)
			return identity.User{}, ErrInvalidCredentials
		}
		return identity.User{}, err
	}
	if !ok {
		return identity.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// lookup walks the identifier forms in priority order. Only "not found"
// moves on to the next form; ambiguity and upstream failures stop the walk.
func (r *Resolver) lookup(ctx context.Context, identifier string) (identity.User, bool, error) {
	u, err := r.users.FindByUsername(ctx, identifier)
	if err == nil {
		return u, true, nil
	}
	if stop, mapped := classifyLookupErr(err); stop {
		return identity.User{}, false, mapped
	}

	u, err = r.users.FindByEmail(ctx, identifier)
	if err == nil {
		return u, true, nil
	}
	if stop, mapped := classifyLookupErr(err); stop {
		return identity.User{}, false, mapped
	}

	u, err = r.users.FindByAlias(ctx, identifier)
	if err == nil {
		return u, true, nil
	}
	if errors.Is(err, identity.ErrAmbiguous) {
		r.log.Error("auth.credential.ambiguous_alias", "alias", identity.NormalizeAlias(identifier))
		return identity.User{}, false, ErrAmbiguousIdentifier
	}
	if stop, mapped := classifyLookupErr(err); stop {
		return identity.User{}, false, mapped
	}

	return identity.User{}, false, nil
}

// classifyLookupErr decides whether a lookup error ends the walk. NotFound
// and InvalidInput (an identifier form that cannot apply, e.g. an empty
// normalized alias) just mean "try the next form".
func classifyLookupErr(err error) (stop bool, mapped error) {
	switch {
	case errors.Is(err, identity.ErrNotFound), errors.Is(err, identity.ErrInvalidInput):
		return false, nil
	case errors.Is(err, identity.ErrAmbiguous):
		return true, err
	default:
		// Anything else is the credential store failing, not the caller.
		return true, identity.OpError{Op: "credential.lookup", Kind: identity.ErrUnavailable, Msg: err.Error()}
	}
}
