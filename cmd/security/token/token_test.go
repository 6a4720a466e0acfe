package token

import (
	"errors"
	"testing"
)

func TestDeriveOpaqueHex_DeterministicUnkeyed(t *testing.T) {
	t.Setenv(HMACEnvKey, "")

	a := DeriveOpaqueHex(7, 1700000000000)
	b := DeriveOpaqueHex(7, 1700000000000)
	if a != b {
		t.Fatalf("derivation not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}

	if DeriveOpaqueHex(8, 1700000000000) == a {
		t.Fatalf("different user ids must derive different values")
	}
	if DeriveOpaqueHex(7, 1700000000001) == a {
		t.Fatalf("different timestamps must derive different values")
	}
}

func TestDeriveOpaqueHex_HMACModeChangesValue(t *testing.T) {
	t.Setenv(HMACEnvKey, "")
	unkeyed := DeriveOpaqueHex(7, 1700000000000)

	t.Setenv(HMACEnvKey, "0123456789abcdef0123456789abcdef")
	keyed := DeriveOpaqueHex(7, 1700000000000)

	if unkeyed == keyed {
		t.Fatalf("HMAC mode must not reproduce unkeyed values")
	}
}

func TestHMACKeyFromEnv(t *testing.T) {
	t.Setenv(HMACEnvKey, "")
	if _, err := HMACKeyFromEnv(32); !errors.Is(err, ErrHMACKeyMissing) {
		t.Fatalf("want ErrHMACKeyMissing, got %v", err)
	}

	t.Setenv(HMACEnvKey, "short")
	if _, err := HMACKeyFromEnv(32); !errors.Is(err, ErrHMACKeyTooShort) {
		t.Fatalf("want ErrHMACKeyTooShort, got %v", err)
	}

	t.Setenv(HMACEnvKey, "0123456789abcdef0123456789abcdef")
	key, err := HMACKeyFromEnv(32)
	if err != nil || len(key) != 32 {
		t.Fatalf("want 32-byte key, got len=%d err=%v", len(key), err)
	}
}

func TestEqualConstantTime(t *testing.T) {
	if !EqualConstantTime("abc", "abc") {
		t.Fatalf("equal strings must compare equal")
	}
	if EqualConstantTime("abc", "abd") {
		t.Fatalf("unequal strings must compare unequal")
	}
}
