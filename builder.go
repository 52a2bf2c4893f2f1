package iacrm

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Nickdtt/ia-crm/credential"
)

// Builder defines a public type used by ia-crm APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config     Config
	httpClient *http.Client
	store      credential.Store
	auditSink  AuditSink
	built      bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(baseURL string) *Builder {
	cfg := defaultConfig()
	cfg.API.BaseURL = baseURL
	return &Builder{config: cfg}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(hc *http.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(store credential.Store) *Builder {
	b.store = store
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and assembles the client. A builder
// builds once; a second call returns an error rather than aliasing the
// dispatcher goroutine.
func (b *Builder) Build() (*Client, error) {
	if b == nil {
		return nil, ErrClientNotReady
	}
	if b.built {
		return nil, errors.New("iacrm: builder already used")
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(b.config.API.BaseURL)
	if err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.config.Credentials.FilePath != "" {
			fs, err := credential.NewFileStore(b.config.Credentials.FilePath)
			if err != nil {
				return nil, err
			}
			store = fs
		} else {
			store = credential.NewMemoryStore()
		}
	}

	hc := b.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: b.config.API.Timeout}
	}

	basePath := strings.TrimRight(base.Path, "/")

	c := &Client{
		config:         cloneConfig(b.config),
		http:           hc,
		base:           base,
		store:          store,
		metrics:        NewMetrics(b.config.Metrics),
		audit:          newAuditDispatcher(b.config.Audit, b.auditSink),
		terminator:     newSessionTerminator(store),
		loginURLPath:   basePath + b.config.API.LoginPath,
		refreshURLPath: basePath + b.config.API.RefreshPath,
	}

	c.refresher = &refresher{
		store:       store,
		terminator:  c.terminator,
		metrics:     c.metrics,
		emit:        c.emitAudit,
		exchange:    c.exchange,
		refreshPath: b.config.API.RefreshPath,
		timeout:     b.config.Refresh.Timeout,
	}

	b.built = true
	return c, nil
}
