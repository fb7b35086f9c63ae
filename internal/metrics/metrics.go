// Package metrics provides Prometheus metrics for the deconstructor service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookdeconstructor"

var (
	// GatewayRequestsTotal counts Gemini calls by outcome (ok or an error kind)
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Total number of deconstruction requests sent to the AI gateway",
		},
		[]string{"outcome"},
	)

	// GatewayDuration measures the Gemini round trip
	GatewayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_duration_seconds",
			Help:      "Duration of AI gateway calls in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 15, 20, 30, 60},
		},
	)

	// StorageErrorsTotal counts history persistence failures
	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_storage_errors_total",
			Help:      "Total number of history storage failures",
		},
		[]string{"operation"},
	)

	// ActiveSessions tracks controllers held by the session registry
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of browser sessions held in memory",
		},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by rate limiting",
		},
		[]string{"reason"},
	)
)

// RecordGateway records one gateway call
func RecordGateway(outcome string, elapsed time.Duration) {
	GatewayRequestsTotal.WithLabelValues(outcome).Inc()
	GatewayDuration.Observe(elapsed.Seconds())
}

// RecordStorageError records a failed history load or save
func RecordStorageError(operation string) {
	StorageErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimited records a rejected request
func RecordRateLimited(reason string) {
	RateLimitedTotal.WithLabelValues(reason).Inc()
}

// SetActiveSessions sets the live session gauge
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}
