package iacrm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Nickdtt/ia-crm/credential"
	"github.com/Nickdtt/ia-crm/internal/crmtest"
)

func newTestClient(t *testing.T, srv *crmtest.Server) (*Client, credential.Store, func()) {
	t.Helper()

	store := credential.NewMemoryStore()
	client, err := New(srv.URL()).
		WithCredentialStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return client, store, func() { client.Close() }
}

// seedExpired stores an expired access token next to a live refresh token,
// the state that forces the 401-refresh-replay path on the next request.
func seedExpired(t *testing.T, srv *crmtest.Server, store credential.Store) string {
	t.Helper()

	stale := srv.IssueAccess(-time.Minute)
	err := store.Save(context.Background(), credential.Pair{
		AccessToken:  stale,
		RefreshToken: srv.IssueRefresh(time.Hour),
	})
	if err != nil {
		t.Fatalf("seed store failed: %v", err)
	}
	return stale
}

// ping hits the protected echo endpoint and returns the bearer token the
// backend observed, or "" for a non-200 response.
func ping(t *testing.T, c *Client) (int, string) {
	t.Helper()

	var out struct {
		Token string `json:"token"`
	}
	err := c.DoJSON(context.Background(), http.MethodGet, "/api/v1/ping", nil, nil, &out)
	if err == nil {
		return http.StatusOK, out.Token
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("ping failed: %v", err)
	}
	return se.Code, ""
}

func TestLoginStoresCredentialPair(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	if err := client.Login(context.Background(), crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	pair, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be stored after login")
	}
	if got := srv.LastLoginAuthorization(); got != "" {
		t.Fatalf("expected login request without Authorization, got %q", got)
	}
	if got := client.MetricsSnapshot().Counters[MetricLoginSuccess]; got != 1 {
		t.Fatalf("expected 1 login success, got %d", got)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	err := client.Login(context.Background(), crmtest.Email, "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, credential.ErrNoCredentials) {
		t.Fatalf("expected empty store after failed login, got %v", err)
	}
	if got := client.MetricsSnapshot().Counters[MetricLoginFailure]; got != 1 {
		t.Fatalf("expected 1 login failure, got %d", got)
	}
}

func TestExpiredAccessTokenRefreshedAndReplayed(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	stale := seedExpired(t, srv, store)

	status, token := ping(t, client)
	if status != http.StatusOK {
		t.Fatalf("expected 200 after transparent refresh, got %d", status)
	}
	if token == "" || token == stale {
		t.Fatal("expected replay to carry a freshly minted access token")
	}

	if got := srv.RefreshCalls(); got != 1 {
		t.Fatalf("expected exactly one refresh call, got %d", got)
	}
	if got := srv.ProtectedCalls(); got != 2 {
		t.Fatalf("expected original plus one replay, got %d protected calls", got)
	}

	pair, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pair.AccessToken != token {
		t.Fatal("expected stored access token to match the replayed one")
	}

	snap := client.MetricsSnapshot()
	if got := snap.Counters[MetricRefreshSuccess]; got != 1 {
		t.Fatalf("expected 1 refresh success, got %d", got)
	}
	if got := snap.Counters[MetricRequestReplayed]; got != 1 {
		t.Fatalf("expected 1 replayed request, got %d", got)
	}
}

func TestValidTokenPassesThroughWithoutRefresh(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, _, done := newTestClient(t, srv)
	defer done()

	if err := client.Login(context.Background(), crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	status, _ := ping(t, client)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := srv.RefreshCalls(); got != 0 {
		t.Fatalf("expected no refresh calls, got %d", got)
	}
}

func TestReplayBudgetIsOne(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	seedExpired(t, srv, store)
	srv.ForceUnauthorized(true)

	status, _ := ping(t, client)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 when the replay also fails, got %d", status)
	}

	// One original attempt plus exactly one replay; never a third.
	if got := srv.ProtectedCalls(); got != 2 {
		t.Fatalf("expected 2 protected calls, got %d", got)
	}
	if got := srv.RefreshCalls(); got != 1 {
		t.Fatalf("expected 1 refresh call, got %d", got)
	}
}

func TestRefreshFailureTerminatesSession(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	events, cancel := client.OnLogout()
	defer cancel()

	seedExpired(t, srv, store)
	srv.FailRefresh(true)

	status, _ := ping(t, client)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected the original 401 to propagate, got %d", status)
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, credential.ErrNoCredentials) {
		t.Fatalf("expected cleared store after refresh failure, got %v", err)
	}

	select {
	case ev := <-events:
		if ev.Reason != LogoutRefreshFailed {
			t.Fatalf("expected reason %q, got %q", LogoutRefreshFailed, ev.Reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a logout signal")
	}

	snap := client.MetricsSnapshot()
	if got := snap.Counters[MetricRefreshFailure]; got != 1 {
		t.Fatalf("expected 1 refresh failure, got %d", got)
	}
	if got := snap.Counters[MetricLogout]; got != 1 {
		t.Fatalf("expected 1 logout, got %d", got)
	}
}

func TestMissingRefreshTokenFailsFast(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, _, done := newTestClient(t, srv)
	defer done()

	status, _ := ping(t, client)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with empty store, got %d", status)
	}
	if got := srv.RefreshCalls(); got != 0 {
		t.Fatalf("expected no refresh round trip without a refresh token, got %d", got)
	}
	if got := client.MetricsSnapshot().Counters[MetricRefreshSkippedNoToken]; got != 1 {
		t.Fatalf("expected 1 skipped refresh, got %d", got)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, _, done := newTestClient(t, srv)
	defer done()

	err := client.DoJSON(context.Background(), http.MethodGet, "/api/v1/ping", nil, nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Fatalf("expected code 401, got %d", se.Code)
	}
	if se.Detail != "Could not validate credentials" {
		t.Fatalf("unexpected detail %q", se.Detail)
	}
}

func TestRequestBodySurvivesReplay(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	seedExpired(t, srv, store)

	// A plain bytes.Buffer body has no GetBody; the client must snapshot
	// it so the replay is not sent with a drained reader.
	body := bytes.NewBufferString(`{"probe":true}`)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL()+"/api/v1/ping", body)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := srv.ProtectedCalls(); got != 2 {
		t.Fatalf("expected original plus replay, got %d", got)
	}
}

func TestExemptEndpointsBypassDecorationAndRefresh(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	// Even with a stale pair stored, a login request routed through Do
	// must go out undecorated and must never enter the refresh path.
	seedExpired(t, srv, store)

	body := bytes.NewBufferString(`{"email":"` + crmtest.Email + `","password":"` + crmtest.Password + `"}`)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL()+"/api/v1/auth/login", body)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := srv.LastLoginAuthorization(); got != "" {
		t.Fatalf("expected undecorated login request, got Authorization %q", got)
	}
	if got := srv.RefreshCalls(); got != 0 {
		t.Fatalf("expected no refresh calls for exempt endpoint, got %d", got)
	}
}

func TestSessionActive(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	ctx := context.Background()
	if client.SessionActive(ctx) {
		t.Fatal("expected inactive session with empty store")
	}

	if err := client.Login(ctx, crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !client.SessionActive(ctx) {
		t.Fatal("expected active session after login")
	}

	// Expired access with a live refresh token still counts: the next
	// protected request mints a new access token transparently.
	seedExpired(t, srv, store)
	if !client.SessionActive(ctx) {
		t.Fatal("expected active session with live refresh token")
	}

	err := store.Save(ctx, credential.Pair{
		AccessToken:  srv.IssueAccess(-time.Minute),
		RefreshToken: srv.IssueRefresh(-time.Minute),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if client.SessionActive(ctx) {
		t.Fatal("expected inactive session with both tokens expired")
	}
}

func TestBuilderBuildsOnce(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()

	b := New(srv.URL())
	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}
