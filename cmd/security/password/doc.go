// Package password verifies stored credentials across the two hash schemes
// the tradebid user base accumulated over the years.
//
// The scheme of a stored record is derivable from its shape alone:
//
//   - legacy-salted: "{PBKDF2}<hex derived key>:<salt>"
//   - modern-salted: "<hex sha256(salt||plaintext)>:<salt>"
//
// Anything else is a corrupt record and fails closed. Both schemes compare
// digests in constant time. Verification must never lock out a user whose
// record predates the modern scheme, and must never accept a record it
// cannot positively classify.
package password
