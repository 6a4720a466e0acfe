// Package main provides a CI-friendly HTTP smoke test for tradebid auth.
//
// It validates:
//   - login with a seeded credential sets the session cookie
//   - /me resolves the session to the same user
//   - a bearer triple minted from the login response also resolves
//   - wrong-password and unknown-identifier failures return identical bodies
//   - logout revokes the session
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	fieldUserID    = "auth-user-id"
	fieldToken     = "auth-token"
	fieldTimestamp = "auth-timestamp"
)

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResult struct {
	User userPayload `json:"user"`
}

func main() {
	var (
		baseURL    = flag.String("url", "http://127.0.0.1:8080", "Server base URL")
		identifier = flag.String("identifier", "contractor10", "Login identifier")
		pass       = flag.String("password", "password", "Login password")
		token      = flag.String("token", "", "Optional pre-issued bearer value to verify")
		issuedAt   = flag.Int64("issued-at", 0, "Issuance millis for -token")
		userID     = flag.Int64("user-id", 0, "User id for -token")
		timeout    = flag.Duration("timeout", 7*time.Second, "Per-step timeout")
		verbose    = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if err := validateBaseURL(*baseURL); err != nil {
		fatalf("invalid -url: %v", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}
	root := context.Background()

	user := mustLogin(root, client, *baseURL, *identifier, *pass, *timeout)
	if *verbose {
		fmt.Printf("logged in: id=%d username=%s\n", user.ID, user.Username)
	}

	me := mustMe(root, client, *baseURL, nil, *timeout)
	if me.ID != user.ID {
		fatalf("/me user mismatch: got=%d want=%d", me.ID, user.ID)
	}

	if *token != "" {
		bearer := http.Header{}
		bearer.Set(fieldUserID, strconv.FormatInt(*userID, 10))
		bearer.Set(fieldToken, *token)
		bearer.Set(fieldTimestamp, strconv.FormatInt(*issuedAt, 10))

		// Fresh client: no cookie jar, so only the triple authenticates.
		bm := mustMe(root, &http.Client{}, *baseURL, bearer, *timeout)
		if bm.ID != *userID {
			fatalf("bearer /me user mismatch: got=%d want=%d", bm.ID, *userID)
		}
	}

	mustIndistinguishableFailures(root, *baseURL, *identifier, *timeout)

	mustLogout(root, client, *baseURL, *timeout)

	if _, err := tryMe(root, client, *baseURL, nil, *timeout); err == nil {
		fatalf("/me still resolves after logout")
	}

	fmt.Printf("OK: user_id=%d username=%s\n", user.ID, user.Username)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return errors.New("missing host")
	}
	return nil
}

func mustLogin(parent context.Context, client *http.Client, baseURL, identifier, password string, stepTimeout time.Duration) userPayload {
	status, body := postLogin(parent, client, baseURL, identifier, password, stepTimeout)
	if status != http.StatusOK {
		fatalf("login: status=%d body=%s", status, body)
	}

	var res loginResult
	if err := json.Unmarshal(body, &res); err != nil {
		fatalf("login: bad response: %v", err)
	}
	if res.User.ID <= 0 {
		fatalf("login: missing user id: %s", body)
	}
	return res.User
}

func postLogin(parent context.Context, client *http.Client, baseURL, identifier, password string, stepTimeout time.Duration) (int, []byte) {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		fatalf("marshal login: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		fatalf("login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fatalf("login: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fatalf("login: read body: %v", err)
	}
	return resp.StatusCode, body
}

func mustMe(parent context.Context, client *http.Client, baseURL string, extra http.Header, stepTimeout time.Duration) userPayload {
	u, err := tryMe(parent, client, baseURL, extra, stepTimeout)
	if err != nil {
		fatalf("%v", err)
	}
	return u
}

func tryMe(parent context.Context, client *http.Client, baseURL string, extra http.Header, stepTimeout time.Duration) (userPayload, error) {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/me", nil)
	if err != nil {
		return userPayload{}, fmt.Errorf("/me request: %w", err)
	}
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return userPayload{}, fmt.Errorf("/me: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return userPayload{}, fmt.Errorf("/me: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return userPayload{}, fmt.Errorf("/me: status=%d body=%s", resp.StatusCode, body)
	}

	var res struct {
		User userPayload `json:"user"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return userPayload{}, fmt.Errorf("/me: bad response: %w", err)
	}
	return res.User, nil
}

func mustIndistinguishableFailures(parent context.Context, baseURL, identifier string, stepTimeout time.Duration) {
	// Fresh cookie-less clients so prior state cannot leak in.
	s1, b1 := postLogin(parent, &http.Client{}, baseURL, identifier, "definitely-wrong-password", stepTimeout)
	s2, b2 := postLogin(parent, &http.Client{}, baseURL, "no-such-user-ever", "definitely-wrong-password", stepTimeout)

	if s1 != http.StatusUnauthorized || s2 != http.StatusUnauthorized {
		fatalf("failure statuses: wrong_password=%d unknown_user=%d", s1, s2)
	}
	if !bytes.Equal(b1, b2) {
		fatalf("failure bodies differ:\n  wrong_password=%s\n  unknown_user=%s", b1, b2)
	}
}

func mustLogout(parent context.Context, client *http.Client, baseURL string, stepTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/logout", nil)
	if err != nil {
		fatalf("logout request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		fatalf("logout: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fatalf("logout: status=%d body=%s", resp.StatusCode, body)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}
