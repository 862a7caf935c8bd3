package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func newTestManager(attempts int, rec *sleepRecorder) *Manager {
	return NewManager(zerolog.Nop(),
		WithMaxAttempts(attempts),
		WithBaseDelay(100*time.Millisecond),
		WithSleep(rec.sleep),
	)
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	for k := 1; k <= 4; k++ {
		rec := &sleepRecorder{}
		m := newTestManager(4, rec)

		calls := 0
		err := m.Do(context.Background(), "op", func(ctx context.Context) error {
			calls++
			if calls < k {
				return errors.New("network request failed")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, k, calls)
		require.Len(t, rec.delays, k-1)
		for i, d := range rec.delays {
			assert.Equal(t, 100*time.Millisecond*time.Duration(1<<uint(i)), d)
		}
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	rec := &sleepRecorder{}
	m := newTestManager(5, rec)
	want := errors.New("pokemon not found")

	calls := 0
	err := m.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return want
	})

	assert.Same(t, want, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays)
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	rec := &sleepRecorder{}
	m := newTestManager(3, rec)
	want := errors.New("rate limit exceeded")

	calls := 0
	err := m.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return want
	})

	assert.Same(t, want, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, rec.delays)
}

func TestDoNeverRetriesSuccess(t *testing.T) {
	m := newTestManager(3, &sleepRecorder{})
	calls := 0
	require.NoError(t, m.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestDoHonoursCancellation(t *testing.T) {
	m := NewManager(zerolog.Nop(), WithMaxAttempts(5), WithBaseDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := m.Do(ctx, "op", func(ctx context.Context) error {
		calls++
		return errors.New("timeout")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestValue(t *testing.T) {
	m := newTestManager(3, &sleepRecorder{})
	calls := 0
	got, err := Value(context.Background(), m, "op", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("ECONNRESET")
		}
		return "overgrow", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "overgrow", got)
	assert.Equal(t, 2, calls)
}

func TestOptions(t *testing.T) {
	m := NewManager(zerolog.Nop(), WithMaxAttempts(0), WithBaseDelay(-1))
	assert.Equal(t, 1, m.MaxAttempts())
	assert.Equal(t, DefaultBaseDelay, m.Backoff(1))
	assert.Equal(t, 4*DefaultBaseDelay, m.Backoff(3))

	custom := NewManager(zerolog.Nop(), WithClassifier(func(error) bool { return true }), WithSleep(func(context.Context, time.Duration) error { return nil }))
	calls := 0
	_ = custom.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return errors.New("anything")
	})
	assert.Equal(t, DefaultMaxAttempts, calls)
}
