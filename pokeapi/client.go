package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/s0up4200/pokedex/metrics"
	"github.com/s0up4200/pokedex/urlutil"
)

// Defaults applied by NewClient.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = 5 * time.Minute
	DefaultUserAgent = "pokedex (+https://github.com/s0up4200/pokedex)"
)

// Client represents a PokeAPI client
type Client struct {
	baseURL    string
	builder    *urlutil.Builder
	httpClient *http.Client
	cache      *ttlCache
	group      singleflight.Group
	store      Store
	logger     zerolog.Logger

	timeout   time.Duration
	cacheTTL  time.Duration
	cacheSize int
	qps       float64
	burst     int
	userAgent string
}

// NewClient creates a new PokeAPI client
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   urlutil.DefaultBaseURL,
		logger:    logger,
		timeout:   DefaultTimeout,
		cacheTTL:  DefaultCacheTTL,
		cacheSize: defaultCacheSize,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	builder, err := urlutil.NewBuilder(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, c.baseURL, err)
	}
	c.builder = builder
	c.baseURL = builder.Base()

	if c.qps < 0 || (c.qps > 0 && c.burst < 0) {
		return nil, fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}

	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		if c.qps > 0 {
			c.httpClient.Transport = NewRateLimitedTransport(c.qps, c.burst, logger)
		}
	}

	c.cache = newTTLCache(c.cacheSize, c.cacheTTL)

	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Builder returns the URL builder bound to the client's base.
func (c *Client) Builder() *urlutil.Builder {
	return c.builder
}

// HasOfflineStore reports whether an offline store is configured.
func (c *Client) HasOfflineStore() bool {
	return c.store != nil
}

// Get fetches a single resource by id or name.
func (c *Client) Get(ctx context.Context, endpoint, identifier string, v any) error {
	return c.fetch(ctx, endpoint, c.builder.Build(endpoint, identifier), v)
}

// GetByURL fetches an absolute resource URL such as the ones embedded in
// other resources.
func (c *Client) GetByURL(ctx context.Context, rawURL string, v any) error {
	if !c.builder.IsValid(rawURL) {
		return errors.Newf(errors.CodeInvalidInput, "invalid resource URL %q", rawURL)
	}
	return c.fetch(ctx, c.endpointOf(rawURL), rawURL, v)
}

// List fetches one page of an endpoint's resource index.
func (c *Client) List(ctx context.Context, endpoint string, offset, limit int) (*NamedAPIResourceList, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	var list NamedAPIResourceList
	if err := c.fetch(ctx, endpoint, c.builder.Build(endpoint, "")+"?"+params.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ClearCache drops every cached response, including the offline store.
func (c *Client) ClearCache(ctx context.Context) error {
	c.cache.Clear()
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear offline store: %w", err)
		}
	}
	return nil
}

// fetch resolves rawURL through the memory cache, the network and the
// offline store, in that order, and decodes the body into v.
func (c *Client) fetch(ctx context.Context, endpoint, rawURL string, v any) error {
	body, err := c.body(ctx, endpoint, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) body(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if body, ok := c.cache.Get(rawURL); ok {
		metrics.CacheEvents.WithLabelValues("memory", "hit").Inc()
		c.logger.Debug().Str("url", rawURL).Msg("Cache hit")
		return body, nil
	}
	metrics.CacheEvents.WithLabelValues("memory", "miss").Inc()

	if IsOffline(ctx) {
		return c.fromStore(ctx, rawURL, nil)
	}

	// The shared request outlives any single caller; each caller still
	// stops waiting when its own context ends.
	ch := c.group.DoChan(rawURL, func() (any, error) {
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		body, err := c.doRequest(reqCtx, endpoint, rawURL)
		if err != nil {
			return nil, err
		}
		c.cache.Put(rawURL, body)
		c.persist(reqCtx, rawURL, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("request to %s aborted: %w", endpoint, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if c.store != nil && isTransportError(res.Err) {
				return c.fromStore(ctx, rawURL, res.Err)
			}
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// doRequest performs a GET request and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", rawURL).
		Msg("Making PokeAPI request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCall(endpoint, err, false, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request to %s aborted: %w", endpoint, ctxErr)
		}
		return nil, errors.Wrapf(err, errors.CodeNetwork, "network request to %s failed", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordCall(endpoint, err, false, time.Since(start))
		return nil, errors.Wrapf(err, errors.CodeNetwork, "network error reading %s response", endpoint)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			Message:    http.StatusText(resp.StatusCode),
			Body:       truncate(string(body), 256),
		}
		metrics.RecordCall(endpoint, apiErr, apiErr.IsNotFound(), time.Since(start))
		return nil, apiErr
	}

	metrics.RecordCall(endpoint, nil, false, time.Since(start))
	return body, nil
}

func (c *Client) persist(ctx context.Context, key string, body []byte) {
	if c.store == nil {
		return
	}
	if err := c.store.Put(ctx, key, body); err != nil {
		c.logger.Debug().Err(err).Str("url", key).Msg("Failed to persist response")
		return
	}
	metrics.CacheEvents.WithLabelValues("offline", "store").Inc()
}

// fromStore answers from the offline store. cause is the transport failure
// that led here, if any, and is returned when the store has nothing.
func (c *Client) fromStore(ctx context.Context, key string, cause error) ([]byte, error) {
	if c.store != nil {
		body, ok, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Debug().Err(err).Str("url", key).Msg("Offline store lookup failed")
		}
		if ok {
			metrics.CacheEvents.WithLabelValues("offline", "hit").Inc()
			c.logger.Debug().Str("url", key).Msg("Serving stored response")
			return body, nil
		}
		metrics.CacheEvents.WithLabelValues("offline", "miss").Inc()
	}

	if cause != nil {
		return nil, cause
	}
	return nil, errors.Wrapf(ErrOfflineMiss, errors.CodeNetwork, "offline: no stored copy of %s", key)
}

// endpointOf returns the first path segment below the API base.
func (c *Client) endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	base, _ := url.Parse(c.baseURL)
	rest := strings.TrimPrefix(u.Path, strings.TrimRight(base.Path, "/"))
	if segment, _, _ := strings.Cut(strings.Trim(rest, "/"), "/"); segment != "" {
		return segment
	}
	return "unknown"
}

func isTransportError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	return errors.GetCode(err) == errors.CodeNetwork
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
