package crmtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Defaults accepted by the login endpoint.
const (
	Email    = "agent@ia-crm.test"
	Password = "correct-horse"
)

const signingKey = "crmtest-signing-key"

type tokenBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Server is a fake CRM backend bound to a loopback listener.
type Server struct {
	httpSrv *httptest.Server

	accessTTL  time.Duration
	refreshTTL time.Duration

	loginCalls     atomic.Int64
	refreshCalls   atomic.Int64
	protectedCalls atomic.Int64

	failRefresh       atomic.Bool
	forceUnauthorized atomic.Bool

	lastLoginAuth atomic.Value

	mu          sync.Mutex
	refreshGate func()
}

// New starts a fake backend. Close it when done.
func New() *Server {
	s := &Server{
		accessTTL:  time.Minute,
		refreshTTL: time.Hour,
	}

	// Method-qualified ServeMux patterns need Go 1.22+; enforce the method
	// explicitly so the mux works on older toolchains too.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", requireMethod(http.MethodPost, s.handleLogin))
	mux.HandleFunc("/api/v1/auth/refresh", requireMethod(http.MethodPost, s.handleRefresh))
	mux.HandleFunc("/api/v1/ping", requireMethod(http.MethodGet, s.handlePing))

	s.httpSrv = httptest.NewServer(mux)
	return s
}

// URL returns the backend's base URL.
func (s *Server) URL() string { return s.httpSrv.URL }

// Close shuts the listener down.
func (s *Server) Close() { s.httpSrv.Close() }

// LoginCalls reports how many login requests the backend served.
func (s *Server) LoginCalls() int64 { return s.loginCalls.Load() }

// RefreshCalls reports how many refresh requests the backend served.
func (s *Server) RefreshCalls() int64 { return s.refreshCalls.Load() }

// ProtectedCalls reports how many protected requests the backend served.
func (s *Server) ProtectedCalls() int64 { return s.protectedCalls.Load() }

// FailRefresh makes the refresh endpoint reject every grant with a 401.
func (s *Server) FailRefresh(v bool) { s.failRefresh.Store(v) }

// ForceUnauthorized makes every protected endpoint return 401 regardless of
// the presented token.
func (s *Server) ForceUnauthorized(v bool) { s.forceUnauthorized.Store(v) }

// GateRefresh installs a hook invoked by the refresh handler before it
// responds. Tests use it as a barrier to hold the single in-flight refresh
// open while concurrent requests pile up.
func (s *Server) GateRefresh(fn func()) {
	s.mu.Lock()
	s.refreshGate = fn
	s.mu.Unlock()
}

// IssueAccess mints a signed access token with the given time-to-live.
// Negative values produce an already-expired token, which is how tests
// force the 401-refresh-replay path.
func (s *Server) IssueAccess(ttl time.Duration) string {
	return s.sign("access", ttl)
}

// IssueRefresh mints a signed refresh token with the given time-to-live.
func (s *Server) IssueRefresh(ttl time.Duration) string {
	return s.sign("refresh", ttl)
}

func (s *Server) sign(scope string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   Email,
		ID:        scope,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) verify(raw string) bool {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte(signingKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	return err == nil && token.Valid
}

// LastLoginAuthorization reports the Authorization header the most recent
// login request carried. Exempt endpoints must arrive without one.
func (s *Server) LastLoginAuthorization() string {
	v, _ := s.lastLoginAuth.Load().(string)
	return v
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.loginCalls.Add(1)
	s.lastLoginAuth.Store(r.Header.Get("Authorization"))

	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed body")
		return
	}
	if in.Email != Email || in.Password != Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	writeJSON(w, http.StatusOK, tokenBody{
		AccessToken:  s.IssueAccess(s.accessTTL),
		RefreshToken: s.IssueRefresh(s.refreshTTL),
		TokenType:    "bearer",
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.refreshCalls.Add(1)

	s.mu.Lock()
	gate := s.refreshGate
	s.mu.Unlock()
	if gate != nil {
		gate()
	}

	var in struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed body")
		return
	}
	if s.failRefresh.Load() || !s.verify(in.RefreshToken) {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// The backend echoes the refresh token back unchanged.
	writeJSON(w, http.StatusOK, tokenBody{
		AccessToken:  s.IssueAccess(s.accessTTL),
		RefreshToken: in.RefreshToken,
		TokenType:    "bearer",
	})
}

// handlePing echoes the presented bearer token so tests can assert which
// access token a replayed request carried.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.protectedCalls.Add(1)

	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if s.forceUnauthorized.Load() || raw == "" || !s.verify(raw) {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": raw})
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
