package app

import (
	"strings"
	"testing"

	"tradebid/cmd/security/token"
)

func TestValidateSecurityConfigDisabled(t *testing.T) {
	t.Setenv(token.HMACEnvKey, "")

	if err := ValidateSecurityConfig(Config{RequireTokenHMAC: false}); err != nil {
		t.Fatalf("policy disabled should pass: %v", err)
	}
}

func TestValidateSecurityConfigMissingKey(t *testing.T) {
	t.Setenv(token.HMACEnvKey, "")

	err := ValidateSecurityConfig(Config{RequireTokenHMAC: true})
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("want missing-key error, got %v", err)
	}
}

func TestValidateSecurityConfigShortKey(t *testing.T) {
	t.Setenv(token.HMACEnvKey, "too-short")

	err := ValidateSecurityConfig(Config{RequireTokenHMAC: true})
	if err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("want short-key error, got %v", err)
	}
}

func TestValidateSecurityConfigOK(t *testing.T) {
	t.Setenv(token.HMACEnvKey, strings.Repeat("k", 32))

	if err := ValidateSecurityConfig(Config{RequireTokenHMAC: true}); err != nil {
		t.Fatalf("valid key should pass: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TRADEBID_HTTP_ADDR", "")
	t.Setenv("TRADEBID_LOG_LEVEL", "")
	t.Setenv("TRADEBID_LOG_FORMAT", "")
	t.Setenv("TRADEBID_DATABASE_URL", "")
	t.Setenv("TRADEBID_REQUIRE_TOKEN_HMAC", "")

	cfg := LoadConfig()
	if cfg.HTTPAddr != "0.0.0.0:8080" || cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.DatabaseURL != "" || cfg.RequireTokenHMAC {
		t.Fatalf("defaults: %+v", cfg)
	}
}
