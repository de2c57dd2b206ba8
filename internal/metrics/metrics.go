// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total number of recorded submissions",
		},
		[]string{"assignment", "status"},
	)

	GradingRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grading_request_duration_seconds",
			Help:    "External grading round-trip duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	GradingFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grading_failures_total",
			Help: "Grading calls that failed or returned malformed feedback",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
