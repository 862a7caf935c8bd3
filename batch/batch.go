// Package batch runs one operation over many items in fixed-size chunks.
//
// Items inside a chunk run concurrently and the chunk settles fully, success
// or failure, before the next one starts. Individual failures never abort a
// chunk; they are collected in the result.
package batch

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pokedex/metrics"
	"github.com/s0up4200/pokedex/retry"
	"github.com/s0up4200/pokedex/validate"
)

// Defaults used when a Processor is built without options.
const (
	DefaultConcurrency = 6
	DefaultChunkDelay  = 50 * time.Millisecond
)

// Options configures one Process call.
type Options struct {
	// Concurrency is the chunk size. Zero uses the processor default.
	Concurrency int
	// OnProgress is called once per settled item with the running count.
	OnProgress func(completed, total int)
	// StopOnError ends processing after the chunk containing the first
	// failure has settled.
	StopOnError bool
}

// Failure pairs a failed item with its position and error.
type Failure[T any] struct {
	Item  T
	Index int
	Err   error
}

// Error implements the error interface.
func (f Failure[T]) Error() string {
	return f.Err.Error()
}

// Unwrap returns the original error.
func (f Failure[T]) Unwrap() error {
	return f.Err
}

// Result partitions the input: every item lands in exactly one of Values or
// Failures. Values keep input order.
type Result[T, R any] struct {
	Values   []R
	Failures []Failure[T]
}

// Processor executes chunked batches.
type Processor struct {
	concurrency int
	chunkDelay  time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	logger      zerolog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the default chunk size.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithChunkDelay sets the pause between chunks.
func WithChunkDelay(d time.Duration) Option {
	return func(p *Processor) {
		if d >= 0 {
			p.chunkDelay = d
		}
	}
}

// WithSleep replaces the pause implementation, mainly for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Processor) {
		p.sleep = fn
	}
}

// NewProcessor creates a Processor.
func NewProcessor(logger zerolog.Logger, opts ...Option) *Processor {
	p := &Processor{
		concurrency: DefaultConcurrency,
		chunkDelay:  DefaultChunkDelay,
		sleep:       retry.Sleep,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Concurrency returns the default chunk size.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Process runs op over items. Validation errors are returned before any op
// call. The returned error is non-nil only for validation failures, context
// cancellation between chunks, or the first item failure when
// opts.StopOnError is set; in the last two cases the partial result is
// returned alongside it.
func Process[T, R any](ctx context.Context, p *Processor, items []T, op func(ctx context.Context, item T) (R, error), opts Options) (Result[T, R], error) {
	var result Result[T, R]

	if err := validate.Items(items, "batch items", validate.DefaultMinItems, validate.DefaultMaxItems); err != nil {
		return result, err
	}
	if err := validate.BatchOptions(opts.Concurrency); err != nil {
		return result, err
	}

	size := opts.Concurrency
	if size == 0 {
		size = p.concurrency
	}

	total := len(items)
	var (
		mu        sync.Mutex
		completed int
	)

	for start := 0; start < total; start += size {
		if start > 0 {
			if err := p.sleep(ctx, p.chunkDelay); err != nil {
				return result, err
			}
		}

		end := min(start+size, total)
		values := make([]R, end-start)
		ok := make([]bool, end-start)
		var failures []Failure[T]

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				v, err := op(ctx, items[i])

				mu.Lock()
				defer mu.Unlock()

				if err != nil {
					failures = append(failures, Failure[T]{Item: items[i], Index: i, Err: err})
					metrics.BatchItems.WithLabelValues("failure").Inc()
					p.logger.Warn().
						Err(err).
						Int("index", i).
						Interface("item", items[i]).
						Msg("Batch item failed")
				} else {
					values[i-start] = v
					ok[i-start] = true
					metrics.BatchItems.WithLabelValues("success").Inc()
				}

				completed++
				if opts.OnProgress != nil {
					opts.OnProgress(completed, total)
				}
				return nil
			})
		}
		_ = g.Wait()

		for i, v := range values {
			if ok[i] {
				result.Values = append(result.Values, v)
			}
		}
		slices.SortFunc(failures, func(a, b Failure[T]) int { return a.Index - b.Index })
		result.Failures = append(result.Failures, failures...)

		if opts.StopOnError && len(failures) > 0 {
			return result, failures[0].Err
		}
	}

	return result, nil
}
