// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_requests_total",
			Help: "Total number of score requests by surface and outcome",
		},
		[]string{"surface", "status"},
	)

	ScoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "score_request_duration_seconds",
			Help: "Duration of score computation in seconds",
		},
		[]string{"surface"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_validation_failures_total",
			Help: "Total number of rejected score requests by field",
		},
		[]string{"field"},
	)

	ScoredMonthsPerRequest = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "score_months_per_request",
			Help:    "Number of scored months produced per request",
			Buckets: prometheus.LinearBuckets(0, 6, 11),
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_hits_total",
			Help: "Total number of score cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "score_cache_misses_total",
			Help: "Total number of score cache misses",
		},
	)
)
