package session

import (
	"context"
	"net/http"
	"time"
)

// CookieName carries the opaque web-session id.
const CookieName = "tradebid_session"

// Store is the web-session persistence boundary.
//
// CurrentUserID is a read on the hot path of every request; Establish and
// Clear run on login/logout only. Implementations must treat the cookie
// value as a bearer secret: persist only a digest of it.
type Store interface {
	// CurrentUserID reports the user id bound to the request's session
	// cookie, if the session exists and is still live.
	CurrentUserID(ctx context.Context, r *http.Request) (int64, bool, error)

	// Establish creates a new session for userID and sets the cookie.
	Establish(ctx context.Context, w http.ResponseWriter, userID int64, now time.Time) error

	// Clear revokes the request's session (if any) and expires the cookie.
	Clear(ctx context.Context, w http.ResponseWriter, r *http.Request, now time.Time) error
}
