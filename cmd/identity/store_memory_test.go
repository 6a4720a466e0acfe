package identity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func ptr(s string) *string { return &s }

func TestMemoryStore_UsernameIsCaseSensitive(t *testing.T) {
	s := NewMemoryStore()
	s.Put(User{ID: 7, Username: "contractor10", Role: RoleContractor, CreatedAt: time.Now()})

	ctx := context.Background()

	if _, err := s.FindByUsername(ctx, "contractor10"); err != nil {
		t.Fatalf("exact match failed: %v", err)
	}
	if _, err := s.FindByUsername(ctx, "Contractor10"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("case variant should not match, got err=%v", err)
	}
}

func TestMemoryStore_AliasAmbiguity(t *testing.T) {
	s := NewMemoryStore()
	s.Put(User{ID: 1, Username: "bob1", Alias: ptr("Bob the Builder")})
	s.Put(User{ID: 2, Username: "bob2", Alias: ptr("bob  THE builder")})

	_, err := s.FindByAlias(context.Background(), "bob the builder")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("want ErrAmbiguous, got %v", err)
	}
}

func TestMemoryStore_AliasNormalizedMatch(t *testing.T) {
	s := NewMemoryStore()
	s.Put(User{ID: 3, Username: "alice", Alias: ptr("Alice  Quotes")})

	u, err := s.FindByAlias(context.Background(), "  alice quotes ")
	if err != nil {
		t.Fatalf("FindByAlias: %v", err)
	}
	if u.ID != 3 {
		t.Fatalf("wrong user: %d", u.ID)
	}
}

func TestMemoryStore_ContextCancellation(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.FindByID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
