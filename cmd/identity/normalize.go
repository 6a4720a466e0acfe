package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAlias canonicalizes a legacy login alias: trim, lower-case, and
// collapse internal whitespace runs to a single space. Users historically
// logged in with display-name variants like "Bob  the Builder", so alias
// matching must tolerate spacing and case drift.
//
// Note the asymmetry with usernames, which match exactly (case included).
// That asymmetry is observed production behavior and is preserved on purpose.
func NormalizeAlias(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
