package iacrm

import (
	"context"
	"sync"
	"time"

	"github.com/Nickdtt/ia-crm/credential"
)

// LogoutReason defines a public type used by ia-crm APIs.
//
// LogoutReason instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LogoutReason string

const (
	// LogoutRequested is an exported constant or variable used by the CRM client.
	LogoutRequested LogoutReason = "user_requested"
	// LogoutRefreshFailed is an exported constant or variable used by the CRM client.
	LogoutRefreshFailed LogoutReason = "refresh_failed"
)

// LogoutEvent is delivered to subscribers when the session is terminated.
// Route guards and UI state listen for it to fall back to an
// unauthenticated view.
type LogoutEvent struct {
	Reason LogoutReason
	At     time.Time
}

// sessionTerminator clears the credential store and broadcasts one logout
// signal. Termination is idempotent until the next successful login rearms
// it; a second call in the logged-out state does nothing.
type sessionTerminator struct {
	store credential.Store

	mu        sync.Mutex
	subs      map[chan LogoutEvent]struct{}
	loggedOut bool
}

func newSessionTerminator(store credential.Store) *sessionTerminator {
	return &sessionTerminator{
		store: store,
		subs:  make(map[chan LogoutEvent]struct{}),
	}
}

func (t *sessionTerminator) subscribe() chan LogoutEvent {
	ch := make(chan LogoutEvent, 1)

	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	return ch
}

func (t *sessionTerminator) unsubscribe(ch chan LogoutEvent) {
	t.mu.Lock()
	delete(t.subs, ch)
	t.mu.Unlock()
}

// rearm is called after a successful login so a later termination emits a
// fresh signal.
func (t *sessionTerminator) rearm() {
	t.mu.Lock()
	t.loggedOut = false
	t.mu.Unlock()
}

// terminate clears the store and emits exactly one signal per session. The
// bool reports whether this call performed the termination.
func (t *sessionTerminator) terminate(ctx context.Context, reason LogoutReason) (bool, error) {
	t.mu.Lock()
	if t.loggedOut {
		t.mu.Unlock()
		return false, nil
	}
	t.loggedOut = true
	subs := make([]chan LogoutEvent, 0, len(t.subs))
	for ch := range t.subs {
		subs = append(subs, ch)
	}
	t.mu.Unlock()

	err := t.store.Clear(ctx)

	event := LogoutEvent{Reason: reason, At: time.Now()}
	for _, ch := range subs {
		// Non-blocking: a subscriber that is not draining must not stall
		// the refresh failure path.
		select {
		case ch <- event:
		default:
		}
	}

	return true, err
}
