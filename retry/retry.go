// Package retry re-runs failing operations with exponential backoff, using the
// error classifier to decide which failures are worth another attempt.
package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/metrics"
)

// Default policy values.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Option configures a Manager.
type Option func(*Manager)

// WithMaxAttempts sets the total number of attempts, including the first.
// Values below one are treated as one.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		m.maxAttempts = max(n, 1)
	}
}

// WithBaseDelay sets the delay before the second attempt.
func WithBaseDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.baseDelay = d
		}
	}
}

// WithClassifier replaces the retryability check.
func WithClassifier(fn func(error) bool) Option {
	return func(m *Manager) {
		m.retryable = fn
	}
}

// WithSleep replaces the context-aware sleep, mainly for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(m *Manager) {
		m.sleep = fn
	}
}

// Manager runs operations under a retry policy.
type Manager struct {
	maxAttempts int
	baseDelay   time.Duration
	retryable   func(error) bool
	sleep       func(ctx context.Context, d time.Duration) error
	logger      zerolog.Logger
}

// NewManager creates a Manager with the given options.
func NewManager(logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		retryable:   classify.IsRetryable,
		sleep:       Sleep,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MaxAttempts returns the configured attempt budget.
func (m *Manager) MaxAttempts() int {
	return m.maxAttempts
}

// Backoff returns the delay after the given 1-indexed failed attempt:
// baseDelay * 2^(attempt-1).
func (m *Manager) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return m.baseDelay * time.Duration(1<<uint(attempt-1))
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempt budget is spent. The last error is returned unchanged.
func (m *Manager) Do(ctx context.Context, label string, op func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == m.maxAttempts || !m.retryable(err) {
			return lastErr
		}

		delay := m.Backoff(attempt)
		rec := classify.Classify(err, label)
		metrics.RetryAttempts.WithLabelValues(string(rec.Kind)).Inc()
		m.logger.Warn().
			Err(err).
			Str("operation", label).
			Str("kind", string(rec.Kind)).
			Int("attempt", attempt).
			Int("max_attempts", m.maxAttempts).
			Dur("backoff", delay).
			Msg("Retrying failed operation")

		if err := m.sleep(ctx, delay); err != nil {
			return lastErr
		}
	}

	return lastErr
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, m *Manager, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := m.Do(ctx, label, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
