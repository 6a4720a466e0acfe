package authapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tradebid/cmd/identity"
	"tradebid/cmd/internal/auth/credential"
	"tradebid/cmd/internal/auth/session"
)

// Handler wires HTTP auth endpoints to the session manager.
//
// All login failures produce the same 401 response regardless of cause so
// that responses never reveal whether an identifier exists.
type Handler struct {
	log     *slog.Logger
	cfg     Config
	manager *session.Manager

	// pool backs the audit log and login throttling; nil in dev mode,
	// which disables both.
	pool *pgxpool.Pool
}

// NewHandler constructs an auth Handler. pool may be nil.
func NewHandler(log *slog.Logger, cfg Config, manager *session.Manager, pool *pgxpool.Pool) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, manager: manager, pool: pool}
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/logout", h.handleLogout)
	mux.HandleFunc("/me", h.handleMe)
}

type ctxKey int

const userKey ctxKey = 0

// UserFromContext returns the user attached by RequireUser.
func UserFromContext(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(userKey).(identity.User)
	return u, ok
}

// RequireUser guards a handler behind request authentication. The resolved
// user is attached to the request context.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := h.manager.AuthenticateRequest(r.Context(), r)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
			return
		}
		observeDecision(d.Channel.String(), decisionOutcome(d))
		if !d.Resolved {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, d.User)))
	})
}

// ---- handlers ----

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "identifier and password are required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	ip := clientIP(r, h.cfg.TrustProxy)
	ua := strings.TrimSpace(r.UserAgent())
	throttleKey := strings.ToLower(identifier)

	// Throttle before touching credential storage.
	if blocked, retryAfter, err := h.checkLoginIPThrottle(ctx, ip, now); err != nil {
		h.log.Error("auth.login.throttle_ip.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	} else if blocked {
		h.auditLoginRateLimited(ctx, ip, ua, throttleKey, retryAfter)
		observeLogin("rate_limited")
		writeRateLimited(w, retryAfter)
		return
	}
	if blocked, retryAfter, err := h.checkLoginIdentifierThrottle(ctx, throttleKey, now); err != nil {
		h.log.Error("auth.login.throttle_identifier.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	} else if blocked {
		h.auditLoginRateLimited(ctx, ip, ua, throttleKey, retryAfter)
		observeLogin("rate_limited")
		writeRateLimited(w, retryAfter)
		return
	}

	u, err := h.manager.Login(ctx, w, identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrUpstreamUnavailable):
			observeLogin("unavailable")
			writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		case errors.Is(err, credential.ErrAmbiguousIdentifier):
			// Same body as any other failure; only the audit trail differs.
			h.auditLoginFailed(ctx, nil, ip, ua, throttleKey, "ambiguous_identifier")
			observeLogin("failed")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		default:
			h.auditLoginFailed(ctx, nil, ip, ua, throttleKey, "invalid_credentials")
			observeLogin("failed")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		}
		return
	}

	h.auditLoginSuccess(ctx, u.ID, ip, ua, throttleKey)
	observeLogin("success")
	writeJSON(w, http.StatusOK, loginResponse{User: toUserResponse(u)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Best-effort attribution for the audit trail; logout itself does not
	// require a live session.
	if d, err := h.manager.AuthenticateRequest(ctx, r); err == nil && d.Resolved {
		h.auditLogout(ctx, d.User.ID, clientIP(r, h.cfg.TrustProxy), strings.TrimSpace(r.UserAgent()))
	}

	if err := h.manager.Logout(ctx, w, r); err != nil {
		h.log.Error("auth.logout.fail", "err", err)
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	d, err := h.manager.AuthenticateRequest(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
		return
	}
	observeDecision(d.Channel.String(), decisionOutcome(d))
	if !d.Resolved {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		User:    toUserResponse(d.User),
		Channel: d.Channel.String(),
	})
}

func decisionOutcome(d session.Decision) string {
	if d.Resolved {
		return "resolved"
	}
	return "anonymous"
}
