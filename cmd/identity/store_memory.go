package identity

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and DB-less development mode.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]User)}
}

// Put inserts or replaces a user snapshot.
func (s *MemoryStore) Put(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.FindByUsername"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		// Exact, case-sensitive match by contract.
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, OpError{Op: op, Kind: ErrNotFound}
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	norm := NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email != nil && NormalizeEmail(*u.Email) == norm && norm != "" {
			return u, nil
		}
	}
	return User{}, OpError{Op: op, Kind: ErrNotFound}
}

func (s *MemoryStore) FindByAlias(ctx context.Context, alias string) (User, error) {
	const op = "identity.FindByAlias"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	norm := NormalizeAlias(alias)
	if norm == "" {
		return User{}, OpError{Op: op, Kind: ErrNotFound}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []User
	for _, u := range s.users {
		if u.Alias != nil && NormalizeAlias(*u.Alias) == norm {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return User{}, OpError{Op: op, Kind: ErrNotFound}
	case 1:
		return matches[0], nil
	default:
		return User{}, OpError{Op: op, Kind: ErrAmbiguous, Msg: "alias resolves to multiple users"}
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (User, error) {
	const op = "identity.FindByID"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return User{}, OpError{Op: op, Kind: ErrNotFound}
}
