package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	sectoken "tradebid/cmd/security/token"
)

// MemoryStore is an in-memory Store for tests and DB-less development mode.
type MemoryStore struct {
	cfg Config

	mu   sync.RWMutex
	rows map[string]memoryRow // keyed by sid hash
}

type memoryRow struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{cfg: cfg, rows: make(map[string]memoryRow)}
}

func (s *MemoryStore) CurrentUserID(ctx context.Context, r *http.Request) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, false, nil
	}

	s.mu.RLock()
	row, ok := s.rows[sectoken.HashSHA256Hex(c.Value)]
	s.mu.RUnlock()
	if !ok || row.revoked || !row.expiresAt.After(time.Now().UTC()) {
		return 0, false, nil
	}
	return row.userID, true, nil
}

func (s *MemoryStore) Establish(ctx context.Context, w http.ResponseWriter, userID int64, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw := make([]byte, s.cfg.SessionIDBytes)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	sid := base64.RawURLEncoding.EncodeToString(raw)
	expiresAt := now.Add(s.cfg.TTL)

	s.mu.Lock()
	s.rows[sectoken.HashSHA256Hex(sid)] = memoryRow{userID: userID, expiresAt: expiresAt}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request, _ time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		h := sectoken.HashSHA256Hex(c.Value)
		s.mu.Lock()
		if row, ok := s.rows[h]; ok {
			row.revoked = true
			s.rows[h] = row
		}
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
