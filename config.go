package iacrm

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by ia-crm APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API         APIConfig
	Credentials CredentialConfig
	Refresh     RefreshConfig
	Audit       AuditConfig
	Metrics     MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by ia-crm APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL     string
	LoginPath   string // default "/api/v1/auth/login"
	RefreshPath string // default "/api/v1/auth/refresh"
	Timeout     time.Duration
	UserAgent   string
}

/*
====================================
CREDENTIAL CONFIG
====================================
*/

// CredentialConfig defines a public type used by ia-crm APIs.
//
// CredentialConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CredentialConfig struct {
	// FilePath selects a file-backed store when no store is injected
	// through the builder. Empty means in-memory only.
	FilePath string
	// ExpirySkew widens the local expiry judgement so a token about to
	// expire is not attached to a request that would lose the race.
	ExpirySkew time.Duration
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig defines a public type used by ia-crm APIs.
//
// RefreshConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RefreshConfig struct {
	// Timeout bounds the shared refresh round trip. Queued requests block
	// until the refresh settles, so this is also the upper bound on how
	// long a waiter can be suspended.
	Timeout time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by ia-crm APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by ia-crm APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			LoginPath:   "/api/v1/auth/login",
			RefreshPath: "/api/v1/auth/refresh",
			Timeout:     30 * time.Second,
			UserAgent:   "ia-crm-go",
		},
		Credentials: CredentialConfig{
			ExpirySkew: 10 * time.Second,
		},
		Refresh: RefreshConfig{
			Timeout: 15 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config holds only value types today; the clone point exists so new
	// reference-typed fields get deep-copied in one place.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API BaseURL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if !strings.HasPrefix(c.API.LoginPath, "/") {
		return errors.New("API LoginPath must start with /")
	}
	if !strings.HasPrefix(c.API.RefreshPath, "/") {
		return errors.New("API RefreshPath must start with /")
	}
	if c.API.LoginPath == c.API.RefreshPath {
		return errors.New("API LoginPath and RefreshPath must differ")
	}
	if c.API.Timeout < 0 {
		return errors.New("API Timeout must not be negative")
	}
	if c.Refresh.Timeout <= 0 {
		return errors.New("Refresh Timeout must be positive")
	}
	if c.Credentials.ExpirySkew < 0 || c.Credentials.ExpirySkew > 2*time.Minute {
		return errors.New("Credentials ExpirySkew out of range")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}
