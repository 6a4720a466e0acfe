package token

import (
	"context"
	"errors"
	"time"

	"tradebid/cmd/identity"
	sectoken "tradebid/cmd/security/token"
)

// Issued is a token bound to a user id and its issuance time.
type Issued struct {
	UserID         int64
	IssuedAtMillis int64
	Value          string
}

// UserLookup is the slice of the identity store the validator needs.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (identity.User, error)
}

// Manager issues and validates bearer tokens. Issuance and the value check
// are pure functions of their inputs plus current time; only the
// user-existence check touches storage.
type Manager struct {
	cfg   Config
	users UserLookup
}

// NewManager constructs a Manager.
func NewManager(cfg Config, users UserLookup) *Manager {
	return &Manager{cfg: cfg, users: users}
}

// Issue binds a token to userID at the given wall-clock instant.
func (m *Manager) Issue(userID int64, now time.Time) Issued {
	millis := now.UnixMilli()
	return Issued{
		UserID:         userID,
		IssuedAtMillis: millis,
		Value:          sectoken.DeriveOpaqueHex(userID, millis),
	}
}

// Validate checks an asserted (userID, issuedAtMillis, value) triple.
//
// Order of checks: opaque value, then freshness, then user existence. An
// expired token fails even when the value matches; a matching fresh token
// for a deleted user fails with ErrUnknownUser.
func (m *Manager) Validate(ctx context.Context, userID int64, issuedAtMillis int64, value string, now time.Time) (identity.User, error) {
	expected := sectoken.DeriveOpaqueHex(userID, issuedAtMillis)
	if value == "" || !sectoken.EqualConstantTime(value, expected) {
		return identity.User{}, ErrInvalidToken
	}

	age := now.Sub(time.UnixMilli(issuedAtMillis))
	if age > m.cfg.FreshnessWindow {
		return identity.User{}, ErrExpiredToken
	}
	if age < -m.cfg.ClockSkew {
		// Issued "in the future" beyond tolerated skew. The value had to be
		// minted with knowledge of the derivation, but accepting it would
		// stretch the freshness window arbitrarily.
		return identity.User{}, ErrInvalidToken
	}

	u, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) || errors.Is(err, identity.ErrInvalidInput) {
			return identity.User{}, ErrUnknownUser
		}
		return identity.User{}, err
	}
	return u, nil
}
