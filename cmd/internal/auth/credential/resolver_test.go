package credential

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradebid/cmd/identity"
	"tradebid/cmd/security/password"
)

func ptr(s string) *string { return &s }

func seedStore(t *testing.T) *identity.MemoryStore {
	t.Helper()
	s := identity.NewMemoryStore()

	s.Put(identity.User{
		ID:             7,
		Username:       "contractor10",
		Email:          ptr("c10@example.com"),
		Alias:          ptr("Carl Contractor"),
		DisplayName:    ptr("Carl  Contractor"),
		PasswordRecord: password.EncodeLegacy("password", "grains"),
		Role:           identity.RoleContractor,
		CreatedAt:      time.Now(),
	})

	modern, err := password.NewModern("hunter2hunter2")
	if err != nil {
		t.Fatalf("NewModern: %v", err)
	}
	s.Put(identity.User{
		ID:             12,
		Username:       "homeowner3",
		Email:          ptr("h3@example.com"),
		PasswordRecord: modern,
		Role:           identity.RoleHomeowner,
	})

	return s
}

func TestResolve_LegacyAndModernSchemes(t *testing.T) {
	r := NewResolver(nil, seedStore(t))
	ctx := context.Background()

	u, err := r.Resolve(ctx, "contractor10", "password")
	if err != nil {
		t.Fatalf("legacy login: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("legacy login resolved user %d", u.ID)
	}

	u, err = r.Resolve(ctx, "homeowner3", "hunter2hunter2")
	if err != nil {
		t.Fatalf("modern login: %v", err)
	}
	if u.ID != 12 {
		t.Fatalf("modern login resolved user %d", u.ID)
	}
}

func TestResolve_UsernameCaseSensitive(t *testing.T) {
	r := NewResolver(nil, seedStore(t))

	_, err := r.Resolve(context.Background(), "CONTRACTOR10", "password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("case variant must not resolve via username, got %v", err)
	}
}

func TestResolve_EmailAndAliasPaths(t *testing.T) {
	r := NewResolver(nil, seedStore(t))
	ctx := context.Background()

	u, err := r.Resolve(ctx, "C10@Example.COM", "password")
	if err != nil || u.ID != 7 {
		t.Fatalf("email path: user=%d err=%v", u.ID, err)
	}

	u, err = r.Resolve(ctx, "  carl   contractor ", "password")
	if err != nil || u.ID != 7 {
		t.Fatalf("alias path: user=%d err=%v", u.ID, err)
	}
}

func TestResolve_MissAndMismatchIndistinguishable(t *testing.T) {
	r := NewResolver(nil, seedStore(t))
	ctx := context.Background()

	_, errMiss := r.Resolve(ctx, "nobody", "password")
	_, errMismatch := r.Resolve(ctx, "contractor10", "wrong")

	if !errors.Is(errMiss, ErrInvalidCredentials) || !errors.Is(errMismatch, ErrInvalidCredentials) {
		t.Fatalf("miss=%v mismatch=%v, both must be ErrInvalidCredentials", errMiss, errMismatch)
	}
	if errMiss.Error() != errMismatch.Error() {
		t.Fatalf("error text differs: %q vs %q", errMiss, errMismatch)
	}
}

func TestResolve_AmbiguousAlias(t *testing.T) {
	s := seedStore(t)
	s.Put(identity.User{ID: 20, Username: "carl2", Alias: ptr("carl  CONTRACTOR")})

	r := NewResolver(nil, s)
	_, err := r.Resolve(context.Background(), "carl contractor", "password")
	if !errors.Is(err, ErrAmbiguousIdentifier) {
		t.Fatalf("want ErrAmbiguousIdentifier, got %v", err)
	}
}

func TestResolve_CorruptRecordFailsClosed(t *testing.T) {
	s := seedStore(t)
	s.Put(identity.User{ID: 30, Username: "broken", PasswordRecord: "???definitely-not-a-record"})

	r := NewResolver(nil, s)
	for _, plain := range []string{"", "password", "???definitely-not-a-record"} {
		_, err := r.Resolve(context.Background(), "broken", plain)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("corrupt record with plain %q: got %v, want ErrInvalidCredentials", plain, err)
		}
	}
}

func TestResolve_UpstreamCancellation(t *testing.T) {
	r := NewResolver(nil, seedStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "contractor10", "password")
	if !errors.Is(err, identity.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
