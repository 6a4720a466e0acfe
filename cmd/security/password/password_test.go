package password

import (
	"errors"
	"strings"
	"testing"
)

func TestVerify_LegacyRoundTrip(t *testing.T) {
	stored := EncodeLegacy("password", "pepper123")

	ok, err := Verify(stored, "password")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for legacy record")
	}

	ok, err = Verify(stored, "wrong")
	if err != nil || ok {
		t.Fatalf("expected clean mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestVerify_ModernRoundTrip(t *testing.T) {
	stored, err := NewModern("s3cret-Quote!")
	if err != nil {
		t.Fatalf("NewModern: %v", err)
	}

	ok, err := Verify(stored, "s3cret-Quote!")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for modern record")
	}

	ok, err = Verify(stored, "s3cret-quote!")
	if err != nil || ok {
		t.Fatalf("expected clean mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestParse_SchemeDetection(t *testing.T) {
	legacy := EncodeLegacy("p", "salt")
	modern := EncodeModern("p", "salt")

	rec, err := Parse(legacy)
	if err != nil || rec.Scheme != SchemeLegacySalted {
		t.Fatalf("legacy detection failed: %+v err=%v", rec, err)
	}
	if rec.Salt != "salt" {
		t.Fatalf("legacy salt = %q", rec.Salt)
	}

	rec, err = Parse(modern)
	if err != nil || rec.Scheme != SchemeModernSalted {
		t.Fatalf("modern detection failed: %+v err=%v", rec, err)
	}
}

func TestVerify_CorruptRecordsFailClosed(t *testing.T) {
	corrupt := []string{
		"",
		"plaintext-no-delimiter",
		"nothex:salt",
		"abcd:",                      // empty salt
		":salt",                      // empty hash
		"{PBKDF2}",                   // prefix only
		"{PBKDF2}nothex:salt",        // bad hex in legacy body
		"{PBKDF2}abcdef",             // legacy without delimiter
		"{SCRYPT}aabbcc:salt",        // unknown prefix, no modern shape (hex check fails)
		strings.Repeat("ab", 8) + ":salt", // hex but wrong modern length
	}

	for _, stored := range corrupt {
		for _, plain := range []string{"", "password", stored} {
			ok, err := Verify(stored, plain)
			if ok {
				t.Errorf("Verify(%q, %q) matched a corrupt record", stored, plain)
			}
			if !errors.Is(err, ErrCorruptRecord) {
				t.Errorf("Verify(%q, %q) err = %v, want ErrCorruptRecord", stored, plain, err)
			}
		}
	}
}

func TestVerify_EmptyPlaintextAgainstValidRecord(t *testing.T) {
	stored := EncodeModern("notempty", "salt")
	ok, err := Verify(stored, "")
	if err != nil || ok {
		t.Fatalf("empty plaintext should cleanly mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("abcdefghijklmnop"); got != "abcdefgh..." {
		t.Fatalf("Redact = %q", got)
	}
	if got := Redact("short"); got != "short" {
		t.Fatalf("Redact short = %q", got)
	}
}
