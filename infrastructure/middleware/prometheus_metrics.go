// Package middleware provides cross-cutting infrastructure for the
// evaluation pipeline, currently the Prometheus-backed metrics collector.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-ticketeval/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks oracle request volume, latency, token consumption,
// and per-row outcomes for a batch run.
type PrometheusMetrics struct {
	oracleRequests *prometheus.CounterVec
	oracleTokens   *prometheus.CounterVec
	oracleLatency  *prometheus.HistogramVec
	rowsProcessed  *prometheus.CounterVec
	opLatency      *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics with the given registerer. Pass prometheus.DefaultRegisterer
// in production; tests use a private registry to avoid collisions.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		oracleRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_requests_total",
				Help: "Total number of scoring requests sent to the oracle, including retries.",
			},
			[]string{"provider", "model", "status"},
		),
		oracleTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_tokens_total",
				Help: "Total number of tokens consumed by oracle requests.",
			},
			[]string{"provider", "model", "token_type"},
		),
		oracleLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oracle_latency_seconds",
				Help:    "Latency of individual oracle requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model", "status"},
		),
		rowsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rows_processed_total",
				Help: "Rows processed by the pipeline, by terminal outcome.",
			},
			[]string{"status"},
		),
		opLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_operation_duration_seconds",
				Help:    "Duration of pipeline operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation duration in a histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	pm.opLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// the Prometheus counter matching the metric name. Unknown metric names are
// ignored rather than registered on the fly.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "oracle_requests_total":
		pm.oracleRequests.WithLabelValues(
			labelOr(labels, "provider"), labelOr(labels, "model"), labelOr(labels, "status"),
		).Add(value)
	case "oracle_tokens_total":
		pm.oracleTokens.WithLabelValues(
			labelOr(labels, "provider"), labelOr(labels, "model"), labelOr(labels, "token_type"),
		).Add(value)
	case "rows_processed_total":
		pm.rowsProcessed.WithLabelValues(labelOr(labels, "status")).Add(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by observing a
// value in the histogram matching the metric name.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	if metric == "oracle_latency_seconds" {
		pm.oracleLatency.WithLabelValues(
			labelOr(labels, "provider"), labelOr(labels, "model"), labelOr(labels, "status"),
		).Observe(value)
	}
}

func labelOr(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return "unknown"
}
