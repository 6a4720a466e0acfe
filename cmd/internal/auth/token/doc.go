// Package token issues and validates the short-lived bearer tokens used by
// clients that cannot hold a web session (native apps, scripted integrations
// left over from the old deployment).
//
// A token is the triple (user id, issued-at millis, opaque value); the opaque
// value is derived deterministically by security/token. Validation recomputes
// the expected value, enforces the freshness window, and confirms the user
// still exists.
package token
