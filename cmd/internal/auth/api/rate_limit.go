package authapi

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Login throttling counts recent auth.login.failed audit rows. Without a DB
// pool (dev mode) throttling is disabled.

func (h *Handler) checkLoginIPThrottle(ctx context.Context, ip net.IP, now time.Time) (bool, time.Duration, error) {
	if h.pool == nil || ip == nil || h.cfg.LoginIPMax <= 0 {
		return false, 0, nil
	}
	cut := now.Add(-h.cfg.LoginIPWindow)
	count, err := countLoginFailuresByIP(ctx, h.pool, ip, cut)
	if err != nil {
		return false, 0, err
	}
	if count >= h.cfg.LoginIPMax {
		return true, h.cfg.LoginIPWindow, nil
	}
	return false, 0, nil
}

func (h *Handler) checkLoginIdentifierThrottle(ctx context.Context, identifier string, now time.Time) (bool, time.Duration, error) {
	if h.pool == nil || strings.TrimSpace(identifier) == "" || h.cfg.LoginIdentifierMax <= 0 {
		return false, 0, nil
	}
	cut := now.Add(-h.cfg.LoginIdentifierWindow)
	count, err := countLoginFailuresByIdentifier(ctx, h.pool, identifier, cut)
	if err != nil {
		return false, 0, err
	}
	if count >= h.cfg.LoginIdentifierMax {
		return true, h.cfg.LoginIdentifierWindow, nil
	}
	return false, 0, nil
}

func countLoginFailuresByIP(ctx context.Context, pool *pgxpool.Pool, ip net.IP, since time.Time) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
		SELECT count(*)
		FROM tradebid.audit_log
		WHERE action = 'auth.login.failed'
		  AND ip = $1
		  AND created_at >= $2
	`, ip.String(), since).Scan(&n)
	return n, err
}

func countLoginFailuresByIdentifier(ctx context.Context, pool *pgxpool.Pool, identifier string, since time.Time) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
		SELECT count(*)
		FROM tradebid.audit_log
		WHERE action = 'auth.login.failed'
		  AND meta->>'identifier' = $1
		  AND created_at >= $2
	`, identifier, since).Scan(&n)
	return n, err
}
