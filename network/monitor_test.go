package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorStartsOnline(t *testing.T) {
	m := NewMonitor(nil, zerolog.Nop())
	assert.True(t, m.IsOnline())
	assert.True(t, m.CheckConnection(context.Background()))
}

func TestCheckConnectionRefreshesFlag(t *testing.T) {
	var reachable atomic.Bool
	m := NewMonitor(ProberFunc(func(ctx context.Context) (bool, error) {
		return reachable.Load(), nil
	}), zerolog.Nop())

	assert.False(t, m.CheckConnection(context.Background()))
	assert.False(t, m.IsOnline())

	reachable.Store(true)
	assert.True(t, m.CheckConnection(context.Background()))
	assert.True(t, m.IsOnline())
}

func TestCheckConnectionProbeErrorIsOffline(t *testing.T) {
	m := NewMonitor(ProberFunc(func(ctx context.Context) (bool, error) {
		return true, errors.New("dns failure")
	}), zerolog.Nop())

	assert.False(t, m.CheckConnection(context.Background()))
}

func TestNotifyCallsListenersOnEveryEvent(t *testing.T) {
	m := NewMonitor(nil, zerolog.Nop())

	var mu sync.Mutex
	var events []bool
	unsubscribe := m.Subscribe(func(online bool) {
		mu.Lock()
		events = append(events, online)
		mu.Unlock()
	})

	m.Notify(true)
	m.Notify(true)
	m.Notify(false)
	assert.False(t, m.IsOnline())

	unsubscribe()
	unsubscribe()
	m.Notify(true)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, true, false}, events)
	assert.True(t, m.IsOnline())
}

func TestWatchPushesProbeResults(t *testing.T) {
	var calls atomic.Int32
	m := NewMonitor(ProberFunc(func(ctx context.Context) (bool, error) {
		calls.Add(1)
		return false, nil
	}), zerolog.Nop())

	got := make(chan bool, 10)
	m.Subscribe(func(online bool) {
		select {
		case got <- online:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Watch(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case online := <-got:
		assert.False(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("no event from Watch")
	}
	cancel()
	<-done

	assert.False(t, m.IsOnline())
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestHTTPProber(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(status)
	}))
	defer server.Close()

	p := NewHTTPProber(server.URL, time.Second)
	ok, err := p.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	status = http.StatusNotFound
	ok, err = p.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	status = http.StatusBadGateway
	ok, err = p.Probe(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	server.Close()
	ok, err = p.Probe(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
