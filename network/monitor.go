// Package network tracks whether the PokeAPI is reachable.
//
// A Monitor holds the last known connectivity flag. The flag is refreshed
// either by change events pushed through Notify (see Watch) or on demand by
// CheckConnection. Reads through IsOnline are synchronous and may be stale.
package network

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/metrics"
)

// Prober answers whether the API can currently be reached.
type Prober interface {
	Probe(ctx context.Context) (bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) (bool, error)

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Listener receives every connectivity change event.
type Listener func(online bool)

// Monitor tracks connectivity state.
type Monitor struct {
	online atomic.Bool
	prober Prober
	logger zerolog.Logger

	mu        sync.Mutex
	listeners map[uint64]Listener
	nextID    uint64
}

// NewMonitor creates a Monitor that starts out online.
func NewMonitor(prober Prober, logger zerolog.Logger) *Monitor {
	m := &Monitor{
		prober:    prober,
		logger:    logger,
		listeners: make(map[uint64]Listener),
	}
	m.online.Store(true)
	metrics.SetOnline(true)
	return m
}

// IsOnline returns the last known state.
func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// CheckConnection probes now, stores the result and returns it. A probe
// error counts as offline.
func (m *Monitor) CheckConnection(ctx context.Context) bool {
	if m.prober == nil {
		return m.IsOnline()
	}

	online, err := m.prober.Probe(ctx)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Connectivity probe failed")
		online = false
	}
	m.set(online)
	return online
}

// Notify records a change event and calls every listener, whether or not the
// value actually changed.
func (m *Monitor) Notify(online bool) {
	m.set(online)

	m.mu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(online)
	}
}

// Subscribe registers fn for change events and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (m *Monitor) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Watch probes every interval and pushes the result through Notify until ctx
// is done.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	if m.prober == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			online, err := m.prober.Probe(ctx)
			if err != nil {
				online = false
			}
			m.Notify(online)
		}
	}
}

func (m *Monitor) set(online bool) {
	if prev := m.online.Swap(online); prev != online {
		m.logger.Info().Bool("online", online).Msg("Connectivity changed")
	}
	metrics.SetOnline(online)
}
