package service

import (
	"time"

	"github.com/jmgilman/go/errors"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/retry"
	"github.com/s0up4200/pokedex/validate"
)

// DefaultSampleSize caps how many resources the list-then-detail queries
// inspect.
const DefaultSampleSize = 100

// Config is the immutable tuning for a Base and the services built on it.
type Config struct {
	// MaxRetries is the total attempt budget per call, including the first.
	MaxRetries       int
	RetryDelay       time.Duration
	CacheTTL         time.Duration
	BatchConcurrency int
	ChunkDelay       time.Duration
	SampleSize       int
}

// DefaultConfig returns the single authoritative default table.
func DefaultConfig() Config {
	return Config{
		MaxRetries:       retry.DefaultMaxAttempts,
		RetryDelay:       retry.DefaultBaseDelay,
		CacheTTL:         5 * time.Minute,
		BatchConcurrency: batch.DefaultConcurrency,
		ChunkDelay:       batch.DefaultChunkDelay,
		SampleSize:       DefaultSampleSize,
	}
}

// Validate rejects negative values and out-of-range concurrency.
func (c Config) Validate() error {
	switch {
	case c.MaxRetries < 0:
		return errors.Newf(errors.CodeInvalidConfig, "max retries must not be negative, got %d", c.MaxRetries)
	case c.RetryDelay < 0:
		return errors.Newf(errors.CodeInvalidConfig, "retry delay must not be negative, got %s", c.RetryDelay)
	case c.CacheTTL < 0:
		return errors.Newf(errors.CodeInvalidConfig, "cache TTL must not be negative, got %s", c.CacheTTL)
	case c.ChunkDelay < 0:
		return errors.Newf(errors.CodeInvalidConfig, "chunk delay must not be negative, got %s", c.ChunkDelay)
	case c.SampleSize < 0 || c.SampleSize > validate.MaxLimit:
		return errors.Newf(errors.CodeInvalidConfig, "sample size must be between 0 and %d, got %d", validate.MaxLimit, c.SampleSize)
	}
	if c.BatchConcurrency != 0 {
		if err := validate.BatchOptions(c.BatchConcurrency); err != nil {
			return errors.Wrap(err, errors.CodeInvalidConfig, "invalid batch concurrency")
		}
	}
	return nil
}

func (c Config) sampleSize(requested int) int {
	switch {
	case requested > 0:
		return min(requested, validate.MaxLimit)
	case c.SampleSize > 0:
		return c.SampleSize
	default:
		return DefaultSampleSize
	}
}
