package iacrm

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotReady is an exported constant or variable used by the CRM client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrUnauthorized is an exported constant or variable used by the CRM client.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the CRM client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoRefreshToken is an exported constant or variable used by the CRM client.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrRefreshFailed is an exported constant or variable used by the CRM client.
	ErrRefreshFailed = errors.New("credential refresh failed")
	// ErrRequestBodyNotReplayable is an exported constant or variable used by the CRM client.
	ErrRequestBodyNotReplayable = errors.New("request body cannot be replayed")
)

// StatusError defines a public type used by ia-crm APIs.
//
// StatusError instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StatusError struct {
	Code   int
	Detail string
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Code)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Code, e.Detail)
}

// Is describes the is operation and its observable behavior.
//
// Is may return an error when input validation, dependency calls, or security checks fail.
// Is does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == 401
}
