// Package metrics provides Prometheus metrics for decision table
// evaluation.
//
// Metrics:
//   - <ns>_decisions_total: decisions by table, mode, and outcome
//   - <ns>_decision_duration_seconds: evaluation duration by table
//   - <ns>_rows_matched_total: matched rows by table
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Decision outcomes used as metric label values.
const (
	OutcomeMatch   = "match"
	OutcomeNoMatch = "no_match"
	OutcomeError   = "error"
)

// Config contains metrics configuration.
type Config struct {
	// Namespace is the metric name prefix. Default: "dtable".
	Namespace string
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{Namespace: "dtable"}
}

// DecisionMetrics tracks decision table evaluation metrics.
type DecisionMetrics struct {
	registry *prometheus.Registry

	decisionsTotal   *prometheus.CounterVec
	decisionDuration *prometheus.HistogramVec
	rowsMatchedTotal *prometheus.CounterVec
}

// New creates decision metrics registered on their own registry.
func New(cfg *Config) *DecisionMetrics {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "dtable"
	}

	m := &DecisionMetrics{
		registry: prometheus.NewRegistry(),

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "decisions_total",
				Help:      "Total number of decision table evaluations",
			},
			[]string{"table", "mode", "outcome"},
		),

		decisionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "decision_duration_seconds",
				Help:      "Duration of decision table evaluation in seconds",
				// Evaluations are O(rows x conditions) in-memory scans.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"table"},
		),

		rowsMatchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rows_matched_total",
				Help:      "Total number of matched rows across evaluations",
			},
			[]string{"table"},
		),
	}

	m.registry.MustRegister(
		m.decisionsTotal,
		m.decisionDuration,
		m.rowsMatchedTotal,
	)

	return m
}

// ObserveDecision records one evaluation.
func (m *DecisionMetrics) ObserveDecision(table, mode, outcome string, matched int, duration time.Duration) {
	m.decisionsTotal.WithLabelValues(table, mode, outcome).Inc()
	m.decisionDuration.WithLabelValues(table).Observe(duration.Seconds())
	if matched > 0 {
		m.rowsMatchedTotal.WithLabelValues(table).Add(float64(matched))
	}
}

// Registry returns the underlying Prometheus registry.
func (m *DecisionMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics in Prometheus
// exposition format.
func (m *DecisionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
