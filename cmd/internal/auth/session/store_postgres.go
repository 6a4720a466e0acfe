package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	sectoken "tradebid/cmd/security/token"
)

// PostgresStore implements Store over PostgreSQL (tradebid.web_sessions).
//
// The pool is owned by the caller. Only the SHA-256 hex of the cookie value
// is stored; the plain value exists in the cookie and nowhere else.
type PostgresStore struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewPostgresStore creates a Postgres-backed web-session store.
func NewPostgresStore(pool *pgxpool.Pool, cfg Config) *PostgresStore {
	return &PostgresStore{pool: pool, cfg: cfg}
}

// CurrentUserID resolves the request's cookie to a live session row.
func (s *PostgresStore) CurrentUserID(ctx context.Context, r *http.Request) (int64, bool, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, false, nil
	}

	var (
		userID    int64
		expiresAt time.Time
		revokedAt *time.Time
	)
	err = s.pool.QueryRow(ctx, `
		SELECT user_id, expires_at, revoked_at
		FROM tradebid.web_sessions
		WHERE sid_hash = $1
	`, sectoken.HashSHA256Hex(c.Value)).Scan(&userID, &expiresAt, &revokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	now := time.Now().UTC()
	if revokedAt != nil || !expiresAt.After(now) {
		return 0, false, nil
	}
	return userID, true, nil
}

// Establish inserts a session row and sets the cookie.
func (s *PostgresStore) Establish(ctx context.Context, w http.ResponseWriter, userID int64, now time.Time) error {
	raw := make([]byte, s.cfg.SessionIDBytes)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	sid := base64.RawURLEncoding.EncodeToString(raw)
	expiresAt := now.Add(s.cfg.TTL)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tradebid.web_sessions (
			id, user_id, sid_hash, created_at, expires_at, revoked_at
		) VALUES ($1, $2, $3, $4, $5, NULL)
	`, ulid.Make().String(), userID, sectoken.HashSHA256Hex(sid), now, expiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(sid, expiresAt))
	return nil
}

// Clear revokes the request's session row (idempotent) and expires the cookie.
func (s *PostgresStore) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request, now time.Time) error {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		_, err := s.pool.Exec(ctx, `
			UPDATE tradebid.web_sessions
			SET revoked_at = COALESCE(revoked_at, $2)
			WHERE sid_hash = $1
		`, sectoken.HashSHA256Hex(c.Value), now)
		if err != nil {
			return err
		}
	}

	expired := s.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	return nil
}

func (s *PostgresStore) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
