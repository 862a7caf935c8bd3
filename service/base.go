package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/network"
	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/retry"
	"github.com/s0up4200/pokedex/urlutil"
	"github.com/s0up4200/pokedex/validate"
)

// Base is the request pipeline shared by every resource service.
type Base struct {
	client  pokeapi.API
	retry   *retry.Manager
	network *network.Monitor
	batch   *batch.Processor
	urls    *urlutil.Builder
	filters *filter.Manager
	cfg     Config
	logger  zerolog.Logger
}

// BaseOption configures a Base.
type BaseOption func(*baseOptions)

type baseOptions struct {
	retryOpts []retry.Option
	batchOpts []batch.Option
	urls      *urlutil.Builder
	filters   *filter.Manager
}

// WithRetryOptions appends options to the retry manager built from Config.
func WithRetryOptions(opts ...retry.Option) BaseOption {
	return func(o *baseOptions) {
		o.retryOpts = append(o.retryOpts, opts...)
	}
}

// WithBatchOptions appends options to the batch processor built from Config.
func WithBatchOptions(opts ...batch.Option) BaseOption {
	return func(o *baseOptions) {
		o.batchOpts = append(o.batchOpts, opts...)
	}
}

// WithURLBuilder sets the builder used for URL helpers and validation.
func WithURLBuilder(b *urlutil.Builder) BaseOption {
	return func(o *baseOptions) {
		o.urls = b
	}
}

// WithFilterManager sets the manager that evaluates search filters. Without
// it the Base creates its own.
func WithFilterManager(m *filter.Manager) BaseOption {
	return func(o *baseOptions) {
		o.filters = m
	}
}

// NewBase creates a Base. monitor may be nil, in which case the API is
// always assumed reachable.
func NewBase(client pokeapi.API, monitor *network.Monitor, cfg Config, logger zerolog.Logger, opts ...BaseOption) *Base {
	var o baseOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.urls == nil {
		if c, ok := client.(interface{ Builder() *urlutil.Builder }); ok {
			o.urls = c.Builder()
		} else {
			o.urls = urlutil.MustBuilder(urlutil.DefaultBaseURL)
		}
	}

	if o.filters == nil {
		o.filters = filter.NewManager()
	}

	retryOpts := append([]retry.Option{
		retry.WithMaxAttempts(cfg.MaxRetries),
		retry.WithBaseDelay(cfg.RetryDelay),
	}, o.retryOpts...)

	batchOpts := append([]batch.Option{
		batch.WithConcurrency(cfg.BatchConcurrency),
		batch.WithChunkDelay(cfg.ChunkDelay),
	}, o.batchOpts...)

	return &Base{
		client:  client,
		retry:   retry.NewManager(logger, retryOpts...),
		network: monitor,
		batch:   batch.NewProcessor(logger, batchOpts...),
		urls:    o.urls,
		filters: o.filters,
		cfg:     cfg,
		logger:  logger,
	}
}

// Config returns the configuration the Base was built with.
func (b *Base) Config() Config {
	return b.cfg
}

// Client returns the underlying API client.
func (b *Base) Client() pokeapi.API {
	return b.client
}

// Filters returns the filter manager used by searches.
func (b *Base) Filters() *filter.Manager {
	return b.filters
}

// Network returns the connectivity monitor, which may be nil.
func (b *Base) Network() *network.Monitor {
	return b.network
}

// Execute runs op through the connectivity gate and the retry loop. A final
// failure is returned as a *classify.Error.
func (b *Base) Execute(ctx context.Context, label string, op func(ctx context.Context) error) error {
	ctx, err := b.gate(ctx)
	if err == nil {
		err = b.retry.Do(ctx, label, op)
	}
	if err == nil {
		return nil
	}

	wrapped := classify.Wrap(err, label)
	event := b.logger.Debug()
	if wrapped.Kind() != classify.KindNotFound && wrapped.Kind() != classify.KindValidation {
		event = b.logger.Error()
	}
	event.Err(err).
		Str("operation", label).
		Str("kind", string(wrapped.Kind())).
		Msg("Operation failed")

	return wrapped
}

// Fetch is Execute for operations that produce a value.
func Fetch[T any](ctx context.Context, b *Base, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, label, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// BatchOperation runs op over items in chunks of the configured concurrency.
// Per-item failures land in the result; only batch-level failures are
// returned as an error.
func BatchOperation[T, R any](ctx context.Context, b *Base, items []T, op func(ctx context.Context, item T) (R, error), opts batch.Options) (batch.Result[T, R], error) {
	res, err := batch.Process(ctx, b.batch, items, op, opts)
	if err != nil {
		return res, classify.Wrap(err, "batch operation")
	}
	return res, nil
}

// gate refuses calls while offline, unless an offline store can answer them.
func (b *Base) gate(ctx context.Context) (context.Context, error) {
	if b.network == nil || b.network.IsOnline() {
		return ctx, nil
	}
	if b.client.HasOfflineStore() {
		b.logger.Debug().Msg("Offline, serving from stored responses")
		return pokeapi.WithOffline(ctx), nil
	}
	return ctx, errors.New(errors.CodeNetwork, "network offline: no connection to the API")
}

// ValidateIdentifier validates a resource identifier.
func (b *Base) ValidateIdentifier(identifier any, label string) error {
	if err := validate.Identifier(identifier, label); err != nil {
		return classify.Wrap(err, label)
	}
	return nil
}

// ValidatePagination validates an offset/limit pair.
func (b *Base) ValidatePagination(offset, limit int) error {
	if err := validate.Pagination(offset, limit); err != nil {
		return classify.Wrap(err, "pagination")
	}
	return nil
}

// ExtractID returns the trailing numeric ID of a resource URL.
func (b *Base) ExtractID(rawURL string) (int, bool) {
	return urlutil.ExtractID(rawURL)
}

// ExtractName returns the last path segment of a resource URL.
func (b *Base) ExtractName(rawURL string) (string, bool) {
	return urlutil.ExtractName(rawURL)
}

// BuildURL builds a resource URL against the client's base.
func (b *Base) BuildURL(endpoint, identifier string) string {
	return b.urls.Build(endpoint, identifier)
}

// IsValidURL reports whether rawURL belongs to the client's API base.
func (b *Base) IsValidURL(rawURL string) bool {
	return b.urls.IsValid(rawURL)
}

// normalizeIdentifier turns numeric strings into IDs and lower-cases names.
// The returned value is ready for validation.
func normalizeIdentifier(identifier string) any {
	trimmed := strings.TrimSpace(identifier)
	if id, err := strconv.Atoi(trimmed); err == nil {
		return id
	}
	return strings.ToLower(trimmed)
}
