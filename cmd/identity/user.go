package identity

import (
	"context"
	"time"
)

// Role is the account kind of a user.
type Role string

const (
	RoleHomeowner  Role = "homeowner"
	RoleContractor Role = "contractor"
	RoleAdmin      Role = "admin"
)

// User is tradebid's canonical security principal.
//
// IDs are positive integers assigned by the database and are never reused.
// PasswordRecord is the stored credential exactly as persisted; its scheme is
// derivable from its shape alone (see security/password).
type User struct {
	ID       int64
	Username string
	Email    *string

	// Alias is the normalized legacy login alias derived from the display
	// name. Old clients logged in with it and it must keep working.
	Alias *string

	DisplayName    *string
	PasswordRecord string
	Role           Role

	CreatedAt time.Time
}

// Store is the read-only user lookup boundary for authentication.
//
// All lookups return ErrNotFound (possibly wrapped) when no user matches.
// FindByAlias returns ErrAmbiguous when more than one user shares the alias;
// guessing between them is never acceptable.
type Store interface {
	// FindByUsername matches the stored username exactly, case included.
	// The case sensitivity is a deliberate carry-over from the live user
	// base; see NormalizeAlias for the asymmetry with alias matching.
	FindByUsername(ctx context.Context, username string) (User, error)

	// FindByEmail matches on the normalized email.
	FindByEmail(ctx context.Context, email string) (User, error)

	// FindByAlias matches on the normalized legacy alias.
	FindByAlias(ctx context.Context, alias string) (User, error)

	// FindByID resolves a user by its numeric id.
	FindByID(ctx context.Context, id int64) (User, error)
}
