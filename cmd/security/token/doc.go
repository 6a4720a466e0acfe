// Package token derives the opaque bearer-token values used by the
// header/query assertion channels.
//
// The value is a deterministic digest of (user id, issuance time). In the
// default unkeyed mode it is SHA-256 and therefore reconstructible by anyone
// who knows the inputs: this reproduces the tokens the previous deployment
// issued and is kept for compatibility with clients still holding them.
// Known weakness, tracked with the stakeholders.
//
// Setting TRADEBID_TOKEN_HMAC_KEY switches derivation to HMAC-SHA256, which
// invalidates outstanding unkeyed tokens. TRADEBID_REQUIRE_TOKEN_HMAC=true
// makes startup refuse to run in the unkeyed mode at all.
package token
