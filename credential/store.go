package credential

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCredentials is an exported constant or variable used by the CRM client.
var ErrNoCredentials = errors.New("no stored credentials")

// Pair defines a public type used by ia-crm APIs.
//
// Pair instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsZero describes the iszero operation and its observable behavior.
//
// IsZero may return an error when input validation, dependency calls, or security checks fail.
// IsZero does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p Pair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// Store is the persistence interface for the credential pair. Load returns
// [ErrNoCredentials] when nothing is stored. Clear on an empty store is a
// no-op, not an error.
type Store interface {
	Load(ctx context.Context) (Pair, error)
	Save(ctx context.Context, pair Pair) error
	Clear(ctx context.Context) error
}

// MemoryStore defines a public type used by ia-crm APIs.
//
// MemoryStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MemoryStore struct {
	mu      sync.Mutex
	pair    Pair
	present bool
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
//
// NewMemoryStore may return an error when input validation, dependency calls, or security checks fail.
// NewMemoryStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Load(context.Context) (Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.present {
		return Pair{}, ErrNoCredentials
	}
	return s.pair, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Save(_ context.Context, pair Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = pair
	s.present = true
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = Pair{}
	s.present = false
	return nil
}
