package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tradebid/cmd/identity"
	"tradebid/cmd/internal/auth/credential"
	"tradebid/cmd/internal/auth/extract"
	"tradebid/cmd/internal/auth/token"
)

// Decision is the terminal outcome of authenticating one request. Resolved
// and anonymous are final: the manager never retries and never falls back
// from a failed assertion to another channel.
type Decision struct {
	User     identity.User
	Resolved bool

	// Channel records which assertion variant produced the decision,
	// mostly for logs and metrics.
	Channel extract.Kind
}

// Anonymous is the decision for requests with no usable identity.
func Anonymous(channel extract.Kind) Decision {
	return Decision{Channel: channel}
}

// Manager owns the request-scoped authentication decision and the login path.
type Manager struct {
	log       *slog.Logger
	users     identity.Store
	sessions  Store
	tokens    *token.Manager
	resolver  *credential.Resolver
	extractor *extract.Extractor
	now       func() time.Time
}

// NewManager wires the authentication components together.
func NewManager(log *slog.Logger, users identity.Store, sessions Store, tokens *token.Manager, resolver *credential.Resolver) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		log:       log,
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		resolver:  resolver,
		extractor: extract.New(sessions),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AuthenticateRequest answers "who is this request, if anyone".
//
// Session identity is trusted as-is apart from a liveness check on the user
// record; bearer assertions go through the token validator. All
// authentication failures collapse to an anonymous decision; only upstream
// collaborator failures surface as an error (ErrUpstreamUnavailable), which
// the routing layer turns into a 5xx-equivalent.
func (m *Manager) AuthenticateRequest(ctx context.Context, r *http.Request) (Decision, error) {
	a, err := m.extractor.Extract(ctx, r)
	if err != nil {
		return Decision{}, m.upstream("extract", err)
	}

	switch a.Kind {
	case extract.KindSession:
		u, err := m.users.FindByID(ctx, a.SessionUserID)
		if err != nil {
			if errors.Is(err, identity.ErrNotFound) || errors.Is(err, identity.ErrInvalidInput) {
				// Stale session: the user is gone. Anonymous, not an error.
				m.log.Info("auth.session.stale", "user_id", a.SessionUserID)
				return Anonymous(a.Kind), nil
			}
			return Decision{}, m.upstream("session_user", err)
		}
		return Decision{User: u, Resolved: true, Channel: a.Kind}, nil

	case extract.KindHeader, extract.KindQuery:
		u, err := m.tokens.Validate(ctx, a.UserID, a.IssuedAtMillis, a.Token, m.now())
		if err != nil {
			switch {
			case errors.Is(err, token.ErrInvalidToken),
				errors.Is(err, token.ErrExpiredToken),
				errors.Is(err, token.ErrUnknownUser):
				m.log.Info("auth.token.rejected", "channel", a.Kind.String(), "reason", err.Error())
				return Anonymous(a.Kind), nil
			default:
				return Decision{}, m.upstream("token_validate", err)
			}
		}
		return Decision{User: u, Resolved: true, Channel: a.Kind}, nil

	default:
		return Anonymous(extract.KindNone), nil
	}
}

// Login resolves credentials and, on success, establishes a fresh web
// session for the user. Failures pass through from the resolver
// (ErrInvalidCredentials, ErrAmbiguousIdentifier) untouched so the HTTP
// layer can keep its single generic failure response.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, identifier, plain string) (identity.User, error) {
	u, err := m.resolver.Resolve(ctx, identifier, plain)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return identity.User{}, m.upstream("resolve", err)
		}
		return identity.User{}, err
	}

	if err := m.sessions.Establish(ctx, w, u.ID, m.now()); err != nil {
		return identity.User{}, m.upstream("establish", err)
	}

	return u, nil
}

// Logout clears the request's web session.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := m.sessions.Clear(ctx, w, r, m.now()); err != nil {
		return m.upstream("clear", err)
	}
	return nil
}

func (m *Manager) upstream(op string, err error) error {
	m.log.Error("auth.upstream.fail", "op", op, "err", err)
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, op, err)
}
