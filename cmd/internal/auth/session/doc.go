// Package session owns the per-request authentication decision.
//
// Manager composes the extractor, the token validator and the credential
// resolver into a single "who is this request, if anyone" answer for route
// handlers, plus the login path that establishes a web session.
//
// The package also provides the web-session store: the cookie carries an
// opaque random id whose SHA-256 hash is persisted server-side, so a leaked
// sessions table cannot be replayed against the site.
package session
