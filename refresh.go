package iacrm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Nickdtt/ia-crm/credential"
)

type refreshState uint8

const (
	stateIdle refreshState = iota
	stateRefreshing
)

// refreshOutcome is the shared result of one refresh attempt. ok false means
// the session was terminated and the caller must surface its own original
// authorization failure.
type refreshOutcome struct {
	ok          bool
	accessToken string
	queuePos    int
}

// pendingRequest is one caller suspended while a refresh is in flight. The
// buffered channel guarantees the draining side never blocks on a waiter.
type pendingRequest struct {
	ch         chan refreshOutcome
	requestID  string
	method     string
	path       string
	enqueuedAt time.Time
}

// refresher is the credential-refresh concurrency controller: an explicit
// two-state machine plus a FIFO queue of pending requests.
//
// Invariants:
//   - at most one refresh network call is outstanding at any time;
//   - the queue is non-empty only while state is stateRefreshing;
//   - every enqueued waiter receives exactly one outcome, in FIFO order;
//   - observing the state and committing to refresh-or-enqueue happens
//     atomically under mu.
type refresher struct {
	store       credential.Store
	terminator  *sessionTerminator
	metrics     *Metrics
	emit        func(ctx context.Context, eventType string, success bool, err error, metadata func() map[string]string)
	exchange    func(ctx context.Context, path string, in, out any) (int, error)
	refreshPath string
	timeout     time.Duration

	mu      sync.Mutex
	state   refreshState
	waiters []*pendingRequest
}

// authorize is called after a request observed an authorization failure. It
// either runs the single refresh itself or suspends until the in-flight one
// settles. Waiters cannot be withdrawn: once enqueued, a request always
// receives its outcome (the refresh round trip is bounded by timeout).
func (r *refresher) authorize(ctx context.Context, req *http.Request) refreshOutcome {
	requestID := requestIDFromContext(ctx)

	r.mu.Lock()
	if r.state == stateRefreshing {
		w := &pendingRequest{
			ch:         make(chan refreshOutcome, 1),
			requestID:  requestID,
			method:     req.Method,
			path:       req.URL.Path,
			enqueuedAt: time.Now(),
		}
		r.waiters = append(r.waiters, w)
		pos := len(r.waiters)
		r.mu.Unlock()

		r.metrics.Inc(MetricRequestQueued)
		r.emit(ctx, auditEventRequestQueued, true, nil, func() map[string]string {
			return map[string]string{
				"method":         w.method,
				"path":           w.path,
				"queue_position": strconv.Itoa(pos),
			}
		})

		return <-w.ch
	}
	r.state = stateRefreshing
	r.mu.Unlock()

	out := r.runRefresh(ctx)

	r.mu.Lock()
	waiters := r.waiters
	r.waiters = nil
	r.state = stateIdle
	r.mu.Unlock()

	for i, w := range waiters {
		o := out
		o.queuePos = i + 1
		if o.ok {
			r.metrics.Inc(MetricWaiterResolved)
		} else {
			r.metrics.Inc(MetricWaiterRejected)
		}
		w.ch <- o
	}

	return out
}

// runRefresh performs the one allowed refresh network call. It runs on a
// context detached from the triggering caller: the outcome is shared by
// every waiter and must not die with one caller's context.
func (r *refresher) runRefresh(trigger context.Context) refreshOutcome {
	pair, err := r.store.Load(trigger)
	if err != nil || pair.RefreshToken == "" {
		// No refresh token at all: skip the guaranteed-to-fail round trip.
		r.metrics.Inc(MetricRefreshSkippedNoToken)
		return r.fail(trigger, ErrNoRefreshToken)
	}

	r.metrics.Inc(MetricRefreshTriggered)
	r.emit(trigger, auditEventRefreshTriggered, true, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var res tokenResponse
	status, err := r.exchange(ctx, r.refreshPath, refreshRequest{RefreshToken: pair.RefreshToken}, &res)
	if err != nil {
		return r.fail(trigger, fmt.Errorf("%w: %v", ErrRefreshFailed, err))
	}
	if status != http.StatusOK || res.AccessToken == "" {
		return r.fail(trigger, fmt.Errorf("%w: %v", ErrRefreshFailed, &StatusError{Code: status, Detail: res.Detail}))
	}

	next := credential.Pair{
		AccessToken:  res.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if res.RefreshToken != "" {
		next.RefreshToken = res.RefreshToken
	}
	if err := r.store.Save(ctx, next); err != nil {
		return r.fail(trigger, err)
	}

	r.metrics.Inc(MetricRefreshSuccess)
	r.emit(trigger, auditEventRefreshSuccess, true, nil, nil)

	return refreshOutcome{ok: true, accessToken: next.AccessToken}
}

func (r *refresher) fail(ctx context.Context, cause error) refreshOutcome {
	r.metrics.Inc(MetricRefreshFailure)
	r.emit(ctx, auditEventRefreshFailure, false, cause, nil)

	performed, err := r.terminator.terminate(ctx, LogoutRefreshFailed)
	if err != nil {
		log.Print("iacrm: credential clear failed during session termination")
	}
	if performed {
		r.metrics.Inc(MetricLogout)
		r.emit(ctx, auditEventLogout, true, nil, func() map[string]string {
			return map[string]string{"reason": string(LogoutRefreshFailed)}
		})
	}

	return refreshOutcome{}
}

// waiterCount is a test hook; production code never inspects the queue.
func (r *refresher) waiterCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}
