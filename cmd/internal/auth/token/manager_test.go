package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradebid/cmd/identity"
	sectoken "tradebid/cmd/security/token"
)

func newFixture(t *testing.T) (*Manager, *identity.MemoryStore) {
	t.Helper()
	t.Setenv(sectoken.HMACEnvKey, "")

	users := identity.NewMemoryStore()
	users.Put(identity.User{ID: 7, Username: "contractor10", Role: identity.RoleContractor})

	return NewManager(DefaultConfig(), users), users
}

func TestIssueAndValidate(t *testing.T) {
	mgr, _ := newFixture(t)

	now := time.Now().UTC()
	issued := mgr.Issue(7, now)

	u, err := mgr.Validate(context.Background(), issued.UserID, issued.IssuedAtMillis, issued.Value, now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("wrong user: %d", u.ID)
	}
}

func TestValidate_FreshnessBoundary(t *testing.T) {
	mgr, _ := newFixture(t)
	cfg := DefaultConfig()

	t0 := time.Now().UTC()
	issued := mgr.Issue(7, t0)

	if _, err := mgr.Validate(context.Background(), 7, issued.IssuedAtMillis, issued.Value, t0.Add(cfg.FreshnessWindow-time.Millisecond)); err != nil {
		t.Fatalf("token inside window rejected: %v", err)
	}

	_, err := mgr.Validate(context.Background(), 7, issued.IssuedAtMillis, issued.Value, t0.Add(cfg.FreshnessWindow+time.Millisecond))
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("want ErrExpiredToken, got %v", err)
	}
}

func TestValidate_TamperedValue(t *testing.T) {
	mgr, _ := newFixture(t)

	now := time.Now().UTC()
	issued := mgr.Issue(7, now)

	// Flip one hex digit.
	tampered := []byte(issued.Value)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	_, err := mgr.Validate(context.Background(), 7, issued.IssuedAtMillis, string(tampered), now)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestValidate_WrongUserID(t *testing.T) {
	mgr, users := newFixture(t)
	users.Put(identity.User{ID: 8, Username: "contractor11"})

	now := time.Now().UTC()
	issued := mgr.Issue(7, now)

	// Same value presented for a different user id must not validate.
	_, err := mgr.Validate(context.Background(), 8, issued.IssuedAtMillis, issued.Value, now)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestValidate_UnknownUser(t *testing.T) {
	mgr, _ := newFixture(t)

	now := time.Now().UTC()
	issued := mgr.Issue(99, now) // no such record

	_, err := mgr.Validate(context.Background(), 99, issued.IssuedAtMillis, issued.Value, now)
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("want ErrUnknownUser, got %v", err)
	}
}

func TestValidate_FutureDatedBeyondSkew(t *testing.T) {
	mgr, _ := newFixture(t)
	cfg := DefaultConfig()

	now := time.Now().UTC()
	future := now.Add(cfg.ClockSkew + time.Minute)
	issued := mgr.Issue(7, future)

	_, err := mgr.Validate(context.Background(), 7, issued.IssuedAtMillis, issued.Value, now)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for future-dated token, got %v", err)
	}

	// Within skew it is accepted.
	nearFuture := now.Add(cfg.ClockSkew / 2)
	issued = mgr.Issue(7, nearFuture)
	if _, err := mgr.Validate(context.Background(), 7, issued.IssuedAtMillis, issued.Value, now); err != nil {
		t.Fatalf("token within skew rejected: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TRADEBID_AUTH_TOKEN_FRESHNESS", "5m")
	t.Setenv("TRADEBID_AUTH_CLOCK_SKEW", "10s")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.FreshnessWindow != 5*time.Minute || cfg.ClockSkew != 10*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv("TRADEBID_AUTH_TOKEN_FRESHNESS", "nope")
	if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("want ErrConfig, got %v", err)
	}
}
