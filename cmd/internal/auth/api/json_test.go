package authapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWriteRateLimitedSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	writeRateLimited(rec, 90*time.Second)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "90" {
		t.Fatalf("Retry-After = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "rate_limited") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"identifier":"a","password":"b"}{"extra":true}`))

	var req loginRequest
	if err := decodeJSON(rec, r, 1<<20, &req); err == nil {
		t.Fatalf("trailing data should fail")
	}
}

func TestDecodeJSONEnforcesBodyLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	big := `{"identifier":"` + strings.Repeat("a", 64) + `","password":"b"}`
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(big))

	var req loginRequest
	if err := decodeJSON(rec, r, 16, &req); err == nil {
		t.Fatalf("oversized body should fail")
	}
}
