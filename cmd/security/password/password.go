package password

import (
	"crypto/rand"
	"crypto/sha1" // #nosec G505 -- legacy records were derived with PBKDF2-SHA1; verification must reproduce them.
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Legacy PBKDF2 parameters. These are frozen at the values the original
// deployment used when the records were written; changing them would lock
// out every legacy user.
const (
	legacyIterations = 10000
)

// Modern scheme parameters.
const (
	modernKeyLen  = sha256.Size
	modernSaltLen = 16
)

// Verify reports whether plain matches the stored credential record.
//
// A malformed record yields (false, ErrCorruptRecord): verification fails
// closed and the caller decides how loudly to log it. A well-formed record
// that does not match yields (false, nil). Comparison is constant-time for
// both schemes.
func Verify(stored, plain string) (bool, error) {
	rec, err := Parse(stored)
	if err != nil {
		return false, err
	}

	var derived []byte
	switch rec.Scheme {
	case SchemeLegacySalted:
		derived = legacyKey(plain, rec.Salt, len(rec.Hash))
	case SchemeModernSalted:
		derived = modernKey(plain, rec.Salt)
	default:
		return false, ErrCorruptRecord
	}

	return subtle.ConstantTimeCompare(derived, rec.Hash) == 1, nil
}

func legacyKey(plain, salt string, keyLen int) []byte {
	return pbkdf2.Key([]byte(plain), []byte(salt), legacyIterations, keyLen, sha1.New)
}

func modernKey(plain, salt string) []byte {
	sum := sha256.Sum256([]byte(salt + plain))
	return sum[:]
}

// NewModern hashes plain under the modern scheme with a fresh random salt.
// Registration lives elsewhere; this exists for fixtures, seeding and tests.
func NewModern(plain string) (string, error) {
	raw := make([]byte, modernSaltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	salt := base64.RawURLEncoding.EncodeToString(raw)
	return EncodeModern(plain, salt), nil
}

// EncodeModern builds a modern-salted record from an explicit salt.
func EncodeModern(plain, salt string) string {
	return hex.EncodeToString(modernKey(plain, salt)) + recordDelim + salt
}

// EncodeLegacy builds a legacy-salted record from an explicit salt. Only
// tests and migration tooling should mint new legacy records.
func EncodeLegacy(plain, salt string) string {
	key := legacyKey(plain, salt, sha1.Size)
	return legacyPrefix + hex.EncodeToString(key) + recordDelim + salt
}
