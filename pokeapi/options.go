package pokeapi

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client. Timeout and rate limit options
// are not applied to a custom client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithCacheTTL sets how long responses stay in the memory cache. Zero
// disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl >= 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithCacheSize bounds the number of cached responses.
func WithCacheSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}

// WithRateLimit limits outgoing requests to qps with the given burst.
func WithRateLimit(qps float64, burst int) Option {
	return func(c *Client) {
		c.qps = qps
		c.burst = burst
	}
}

// WithOfflineStore keeps every successful response in store and falls back
// to it when the API cannot be reached.
func WithOfflineStore(store Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}
