package pokeapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitedRoundTripper wraps an http.RoundTripper with rate limiting
type RateLimitedRoundTripper struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
	Logger  zerolog.Logger
}

// RoundTrip implements http.RoundTripper with rate limiting
func (rt *RateLimitedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	reservation := rt.Limiter.Reserve()
	if !reservation.OK() {
		return nil, fmt.Errorf("rate limiter reservation failed")
	}

	if delay := reservation.Delay(); delay > 0 {
		rt.Logger.Debug().
			Dur("delay", delay).
			Str("path", req.URL.Path).
			Msg("Rate limiting request")

		select {
		case <-req.Context().Done():
			reservation.Cancel()
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
	}

	resp, err := rt.Base.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		rt.Logger.Warn().
			Str("path", req.URL.Path).
			Msg("Received 429 despite rate limiting")
	}

	return resp, err
}

// NewRateLimitedTransport creates a new rate-limited HTTP transport
func NewRateLimitedTransport(qps float64, burst int, logger zerolog.Logger) http.RoundTripper {
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	return &RateLimitedRoundTripper{
		Base:    baseTransport,
		Limiter: rate.NewLimiter(rate.Limit(qps), max(burst, 1)),
		Logger:  logger,
	}
}
