package iacrm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Nickdtt/ia-crm/credential"
)

// Client defines a public type used by ia-crm APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config     Config
	http       *http.Client
	base       *url.URL
	store      credential.Store
	refresher  *refresher
	terminator *sessionTerminator
	audit      *auditDispatcher
	metrics    *Metrics

	loginURLPath   string
	refreshURLPath string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Detail       string `json:"detail"`
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// Do sends one HTTP request with the refresh/retry protocol applied. It has
// the same signature as [http.Client.Do]: a non-401 response (including
// other error statuses) passes through untouched. On a 401 the client
// recovers once — refresh, replay — or terminates the session and returns
// the original 401 response.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c == nil || c.http == nil {
		return nil, ErrClientNotReady
	}
	if c.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			c.metrics.Observe(MetricRequestLatency, time.Since(start))
		}()
	}

	// Login and refresh requests must not carry a stale access token and
	// must never enter the refresh path below.
	if c.isExempt(req.URL) {
		return c.http.Do(req)
	}

	if err := snapshotBody(req); err != nil {
		return nil, err
	}

	pair, err := c.store.Load(req.Context())
	if err != nil && !errors.Is(err, credential.ErrNoCredentials) {
		return nil, err
	}
	c.decorate(req, pair.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	ctx, _ := ensureRequestID(req.Context())
	out := c.refresher.authorize(ctx, req)
	if !out.ok {
		// No recovery path: the original authorization failure propagates
		// to the caller untouched.
		return resp, nil
	}

	drainAndClose(resp.Body)

	replay, err := cloneForReplay(req)
	if err != nil {
		return nil, err
	}
	c.decorate(replay, out.accessToken)

	c.metrics.Inc(MetricRequestReplayed)
	c.emitAudit(ctx, auditEventRequestReplayed, true, nil, func() map[string]string {
		meta := map[string]string{
			"method": req.Method,
			"path":   req.URL.Path,
		}
		if out.queuePos > 0 {
			meta["queue_position"] = strconv.Itoa(out.queuePos)
		}
		return meta
	})

	// The retry budget for this request is spent: a replay that fails
	// authorization again propagates as-is.
	return c.http.Do(replay)
}

// DoJSON sends a JSON request through [Client.Do] and decodes a JSON
// response into out. Non-2xx statuses are returned as a [*StatusError]
// carrying the backend's detail message.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c == nil || c.http == nil {
		return ErrClientNotReady
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.resolve(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return &StatusError{Code: resp.StatusCode, Detail: decodeDetail(resp.Body)}
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.DoJSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post describes the post operation and its observable behavior.
//
// Post may return an error when input validation, dependency calls, or security checks fail.
// Post does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, http.MethodPost, path, nil, in, out)
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or security checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, http.MethodPut, path, nil, in, out)
}

// Patch describes the patch operation and its observable behavior.
//
// Patch may return an error when input validation, dependency calls, or security checks fail.
// Patch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, http.MethodPatch, path, nil, in, out)
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.DoJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Login authenticates against the login endpoint and persists the returned
// credential pair. A successful login rearms the session terminator so a
// later termination emits a fresh logout signal.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if c == nil || c.http == nil {
		return ErrClientNotReady
	}

	var res tokenResponse
	status, err := c.exchange(ctx, c.config.API.LoginPath, loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, err, nil)
		return err
	}
	if status == http.StatusUnauthorized {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"detail": res.Detail}
		})
		return ErrInvalidCredentials
	}
	if status != http.StatusOK || res.AccessToken == "" || res.RefreshToken == "" {
		statusErr := &StatusError{Code: status, Detail: res.Detail}
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, statusErr, nil)
		return statusErr
	}

	pair := credential.Pair{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
	if err := c.store.Save(ctx, pair); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, err, nil)
		return err
	}

	c.terminator.rearm()
	c.metrics.Inc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, nil, nil)

	return nil
}

// Logout terminates the session: credentials are cleared and one logout
// signal is emitted. Calling it when already logged out is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.terminator == nil {
		return ErrClientNotReady
	}

	performed, err := c.terminator.terminate(ctx, LogoutRequested)
	if performed {
		c.metrics.Inc(MetricLogout)
		c.emitAudit(ctx, auditEventLogout, err == nil, err, func() map[string]string {
			return map[string]string{"reason": string(LogoutRequested)}
		})
	}
	return err
}

// SessionActive reports whether a credential pair is present with at least
// one unexpired token. Used for session restoration on startup: an expired
// access token with a live refresh token still counts, since the first
// protected request will transparently mint a new access token.
func (c *Client) SessionActive(ctx context.Context) bool {
	if c == nil || c.store == nil {
		return false
	}
	pair, err := c.store.Load(ctx)
	if err != nil {
		return false
	}

	now := time.Now()
	skew := c.config.Credentials.ExpirySkew
	return tokenValid(pair.AccessToken, now, skew) || tokenValid(pair.RefreshToken, now, skew)
}

// OnLogout subscribes to the logout signal. The returned cancel function
// removes the subscription; the channel is buffered so a slow subscriber
// never blocks termination.
func (c *Client) OnLogout() (<-chan LogoutEvent, func()) {
	ch := c.terminator.subscribe()
	return ch, func() {
		c.terminator.unsubscribe(ch)
	}
}

// exchange posts a JSON body to an exempt endpoint directly on the
// underlying transport, bypassing decoration and the refresh protocol.
// Error response bodies are decoded best-effort into out so the caller can
// read the backend's detail message.
func (c *Client) exchange(ctx context.Context, path string, in, out any) (int, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.API.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.API.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer drainAndClose(resp.Body)

	if out != nil {
		body, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(body) > 0 {
			_ = json.Unmarshal(body, out)
		}
	}

	return resp.StatusCode, nil
}

func (c *Client) decorate(req *http.Request, accessToken string) {
	if c.config.API.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.API.UserAgent)
	}
	if accessToken == "" {
		// Absent token: the request proceeds unauthenticated and fails
		// naturally against protected endpoints.
		req.Header.Del("Authorization")
		return
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

func (c *Client) isExempt(u *url.URL) bool {
	return u.Path == c.loginURLPath || u.Path == c.refreshURLPath
}

func (c *Client) resolve(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

// snapshotBody makes the request body replayable by buffering it once when
// the caller did not provide GetBody.
func snapshotBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestBodyNotReplayable, err)
	}

	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.ContentLength = int64(len(data))
	return nil
}

func cloneForReplay(req *http.Request) (*http.Request, error) {
	replay := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestBodyNotReplayable, err)
		}
		replay.Body = body
	}
	return replay, nil
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	body.Close()
}

func decodeDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil || len(data) == 0 {
		return ""
	}

	var wrapper struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil || len(wrapper.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}

	var detail string
	if err := json.Unmarshal(wrapper.Detail, &detail); err == nil {
		return detail
	}
	// Validation errors arrive as a structured list; surface them raw.
	return string(wrapper.Detail)
}
