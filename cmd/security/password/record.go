package password

import (
	"encoding/hex"
	"strings"
)

// Scheme tags the hash family that produced a stored credential.
type Scheme string

const (
	SchemeLegacySalted Scheme = "legacy-salted"
	SchemeModernSalted Scheme = "modern-salted"
)

const (
	// legacyPrefix identifies legacy PBKDF2 records. The prefix check wins
	// over the delimiter check, so a legacy record may freely contain the
	// modern delimiter.
	legacyPrefix = "{PBKDF2}"

	// recordDelim separates hash and salt. Hex digest output never
	// contains it, so the split is unambiguous.
	recordDelim = ":"
)

// Record is a parsed stored credential.
type Record struct {
	Scheme Scheme
	Hash   []byte
	Salt   string
}

// Parse classifies a stored credential string and splits it into hash and
// salt. Shape detection is centralized here: adding a third scheme later
// touches this function and Verify, nothing else.
func Parse(stored string) (Record, error) {
	if rest, ok := strings.CutPrefix(stored, legacyPrefix); ok {
		hash, salt, err := splitHexAndSalt(rest)
		if err != nil {
			return Record{}, err
		}
		return Record{Scheme: SchemeLegacySalted, Hash: hash, Salt: salt}, nil
	}

	if strings.Contains(stored, recordDelim) {
		hash, salt, err := splitHexAndSalt(stored)
		if err != nil {
			return Record{}, err
		}
		if len(hash) != modernKeyLen {
			return Record{}, ErrCorruptRecord
		}
		return Record{Scheme: SchemeModernSalted, Hash: hash, Salt: salt}, nil
	}

	return Record{}, ErrCorruptRecord
}

func splitHexAndSalt(s string) ([]byte, string, error) {
	hexPart, salt, ok := strings.Cut(s, recordDelim)
	if !ok || hexPart == "" || salt == "" {
		return nil, "", ErrCorruptRecord
	}
	hash, err := hex.DecodeString(hexPart)
	if err != nil || len(hash) == 0 {
		return nil, "", ErrCorruptRecord
	}
	return hash, salt, nil
}

// Redact returns a short prefix of a stored credential for diagnostics.
// Full hashes never appear in logs.
func Redact(stored string) string {
	const n = 8
	if len(stored) <= n {
		return stored
	}
	return stored[:n] + "..."
}
