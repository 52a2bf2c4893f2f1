// Package iacrm provides the authenticated HTTP client for the ia-crm REST
// backend: bearer-token request decoration, single-flight credential refresh
// with transparent replay, and session termination with a logout signal.
//
// The package is designed for concurrent workloads: Client methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// iacrm is the public surface. It exposes [Client], [Builder], [Config], and
// value types (MetricsSnapshot, LogoutEvent, etc.). Credential persistence
// lives in the credential sub-package; typed resource calls live in api.
//
// # What this package must NOT do
//
//   - Verify token signatures. The client only decodes the expiry claim;
//     verification is the server's job.
//   - Retry a request more than once, or run more than one refresh at a
//     time. One refresh is shared by every request that fails authorization
//     while it is in flight.
//   - Expose the credential store contents or the refresh state in its
//     public API.
//
// # Refresh contract
//
// Do is the hot path. A response other than 401 passes through untouched. On
// a 401, exactly one refresh network call is made regardless of how many
// requests failed concurrently; the rest wait in FIFO order and are replayed
// with the new access token exactly once. A failed refresh terminates the
// session, emits one logout signal, and surfaces each caller's original
// authorization failure.
package iacrm
