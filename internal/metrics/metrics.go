// Package metrics provides Prometheus metrics for the gym consistency service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gym_consistency"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})

	scoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_computed_total",
		Help:      "Total consistency scores computed successfully.",
	})

	scoringErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoring_errors_total",
		Help:      "Total scoring requests that ended in an error.",
	})

	trainingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "training_runs_total",
		Help:      "Total training runs by outcome.",
	}, []string{"status"})
)

// RecordHTTPRequest records one completed HTTP request
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the latency of one HTTP request
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordScoreComputed counts a successful scoring request
func RecordScoreComputed() {
	scoresComputed.Inc()
}

// RecordScoringError counts a failed scoring request
func RecordScoringError() {
	scoringErrors.Inc()
}

// RecordTrainingRun counts a training run with its outcome
func RecordTrainingRun(status string) {
	trainingRuns.WithLabelValues(status).Inc()
}
