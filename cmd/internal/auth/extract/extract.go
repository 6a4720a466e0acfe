// Package extract pulls a single identity assertion out of an inbound
// request, regardless of which channel the client used to present it.
//
// The channels form a trust hierarchy and exactly one assertion is produced
// per request:
//
//  1. server-managed session state (authoritative),
//  2. the bearer triple in request headers,
//  3. the same triple in query parameters (last: query strings leak into
//     access logs and referrers),
//  4. nothing.
//
// A later channel is never consulted once an earlier one applies, even if
// the earlier one turns out not to validate.
package extract

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Wire field names for the bearer triple. These are the bit-exact contract
// shared with the mobile clients and the legacy cron integrations: the same
// names are read from headers and from query parameters.
const (
	FieldUserID    = "auth-user-id"
	FieldToken     = "auth-token"
	FieldTimestamp = "auth-timestamp"
)

// Kind discriminates the assertion variants.
type Kind int

const (
	KindNone Kind = iota
	KindSession
	KindHeader
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindHeader:
		return "header"
	case KindQuery:
		return "query"
	default:
		return "none"
	}
}

// Assertion is the extracted identity claim. Exactly one variant is set:
// KindSession carries SessionUserID; KindHeader and KindQuery carry the
// bearer triple; KindNone carries nothing.
type Assertion struct {
	Kind Kind

	SessionUserID int64

	UserID         int64
	Token          string
	IssuedAtMillis int64
}

// SessionReader reports the user id attached to the request's session, if any.
type SessionReader interface {
	CurrentUserID(ctx context.Context, r *http.Request) (int64, bool, error)
}

// Extractor resolves the assertion channel for a request.
type Extractor struct {
	sessions SessionReader
}

// New constructs an Extractor. sessions may be nil, in which case the
// session channel never applies.
func New(sessions SessionReader) *Extractor {
	return &Extractor{sessions: sessions}
}

// Extract returns the request's identity assertion. The only error path is
// the session collaborator failing; bearer material never errors here, it is
// carried as-is for the validator to judge.
func (e *Extractor) Extract(ctx context.Context, r *http.Request) (Assertion, error) {
	if e.sessions != nil {
		id, ok, err := e.sessions.CurrentUserID(ctx, r)
		if err != nil {
			return Assertion{}, err
		}
		if ok {
			return Assertion{Kind: KindSession, SessionUserID: id}, nil
		}
	}

	if a, ok := tripleFrom(KindHeader, func(name string) string {
		return r.Header.Get(name)
	}); ok {
		return a, nil
	}

	query := r.URL.Query()
	if a, ok := tripleFrom(KindQuery, func(name string) string {
		return query.Get(name)
	}); ok {
		return a, nil
	}

	return Assertion{Kind: KindNone}, nil
}

// tripleFrom recognizes a bearer triple on one channel. The channel applies
// as soon as all three fields are present; malformed numeric fields still
// claim the channel (with zeroed values the validator will reject) so that a
// broken header bundle can never fall through to the query channel.
func tripleFrom(kind Kind, get func(string) string) (Assertion, bool) {
	uid := strings.TrimSpace(get(FieldUserID))
	tok := strings.TrimSpace(get(FieldToken))
	ts := strings.TrimSpace(get(FieldTimestamp))

	if uid == "" || tok == "" || ts == "" {
		return Assertion{}, false
	}

	a := Assertion{Kind: kind, Token: tok}
	if n, err := strconv.ParseInt(uid, 10, 64); err == nil {
		a.UserID = n
	}
	if n, err := strconv.ParseInt(ts, 10, 64); err == nil {
		a.IssuedAtMillis = n
	}
	return a, true
}
