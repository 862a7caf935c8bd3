// Package metrics holds the Prometheus collectors shared by the client,
// retry, batch and network layers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts upstream requests by endpoint and result.
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_api_requests_total",
			Help: "Total PokeAPI requests by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	// APIRequestDuration observes upstream request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pokedex_api_request_duration_seconds",
			Help:    "PokeAPI request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheEvents counts hits, misses and writes per cache layer.
	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_cache_events_total",
			Help: "Cache events by layer (memory, offline) and event (hit, miss, store)",
		},
		[]string{"layer", "event"},
	)

	// RetryAttempts counts scheduled retries by classified error kind.
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_retry_attempts_total",
			Help: "Retries scheduled by error kind",
		},
		[]string{"kind"},
	)

	// BatchItems counts settled batch items by result.
	BatchItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_batch_items_total",
			Help: "Settled batch items by result",
		},
		[]string{"result"},
	)

	// NetworkOnline is 1 while the API is considered reachable.
	NetworkOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pokedex_network_online",
			Help: "Last known connectivity state (1 online, 0 offline)",
		},
	)
)

// RecordCall records the latency and outcome of one upstream request.
//
// Result label mapping:
//   - nil error       -> "success"
//   - notFound == true -> "not_found"
//   - any other error -> "error"
func RecordCall(endpoint string, err error, notFound bool, duration time.Duration) {
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	result := "success"
	if err != nil {
		if notFound {
			result = "not_found"
		} else {
			result = "error"
		}
	}
	APIRequests.WithLabelValues(endpoint, result).Inc()
}

// SetOnline updates the connectivity gauge.
func SetOnline(online bool) {
	if online {
		NetworkOnline.Set(1)
		return
	}
	NetworkOnline.Set(0)
}
