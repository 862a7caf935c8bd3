package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Tracker hands out one live request per key. Starting a new request for a
// key cancels the previous one, and its completion is reported stale.
type Tracker struct {
	mu     sync.Mutex
	active map[string]trackedRequest
}

type trackedRequest struct {
	token  uuid.UUID
	cancel context.CancelFunc
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]trackedRequest)}
}

// Begin registers a request for key, cancelling any request already in
// flight for it. The returned done func must be called when the request
// finishes; it reports ErrStale when a newer request has replaced this one.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, func() error) {
	ctx, cancel := context.WithCancel(ctx)
	token := uuid.New()

	t.mu.Lock()
	if prev, ok := t.active[key]; ok {
		prev.cancel()
	}
	t.active[key] = trackedRequest{token: token, cancel: cancel}
	t.mu.Unlock()

	var once sync.Once
	var stale bool
	done := func() error {
		once.Do(func() {
			t.mu.Lock()
			cur, ok := t.active[key]
			stale = !ok || cur.token != token
			if !stale {
				delete(t.active, key)
			}
			t.mu.Unlock()
			cancel()
		})
		if stale {
			return ErrStale
		}
		return nil
	}
	return ctx, done
}

// Cancel aborts the in-flight request for key, if any.
func (t *Tracker) Cancel(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.active[key]; ok {
		cur.cancel()
		delete(t.active, key)
	}
}

// Active reports how many keys have a request in flight.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Track runs op under a tracked context for key. A result that was
// superseded while op ran is discarded and ErrStale is returned.
func Track[T any](ctx context.Context, t *Tracker, key string, op func(ctx context.Context) (T, error)) (T, error) {
	ctx, done := t.Begin(ctx, key)
	v, err := op(ctx)
	if staleErr := done(); staleErr != nil {
		var zero T
		return zero, staleErr
	}
	return v, err
}
