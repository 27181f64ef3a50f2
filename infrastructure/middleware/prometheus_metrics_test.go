package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.RecordCounter("oracle_requests_total", 1, map[string]string{
		"provider": "openai", "model": "llama-3.3-70b-versatile", "status": "success",
	})
	metrics.RecordCounter("oracle_requests_total", 1, map[string]string{
		"provider": "openai", "model": "llama-3.3-70b-versatile", "status": "error",
	})
	metrics.RecordCounter("rows_processed_total", 1, map[string]string{"status": "scored"})
	metrics.RecordCounter("rows_processed_total", 1, map[string]string{"status": "scored"})
	metrics.RecordCounter("rows_processed_total", 1, map[string]string{"status": "skipped"})

	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.oracleRequests.WithLabelValues("openai", "llama-3.3-70b-versatile", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.oracleRequests.WithLabelValues("openai", "llama-3.3-70b-versatile", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.rowsProcessed.WithLabelValues("scored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.rowsProcessed.WithLabelValues("skipped")))
}

func TestPrometheusMetrics_TokenCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	labels := map[string]string{"provider": "openai", "model": "m", "token_type": "input"}
	metrics.RecordCounter("oracle_tokens_total", 120, labels)
	labels["token_type"] = "output"
	metrics.RecordCounter("oracle_tokens_total", 45, labels)

	assert.Equal(t, 120.0, testutil.ToFloat64(
		metrics.oracleTokens.WithLabelValues("openai", "m", "input")))
	assert.Equal(t, 45.0, testutil.ToFloat64(
		metrics.oracleTokens.WithLabelValues("openai", "m", "output")))
}

func TestPrometheusMetrics_MissingLabelsDefaultToUnknown(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.RecordCounter("oracle_requests_total", 1, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.oracleRequests.WithLabelValues("unknown", "unknown", "unknown")))
}

func TestPrometheusMetrics_UnknownMetricIgnored(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	// Must not panic or register anything new.
	metrics.RecordCounter("made_up_metric", 1, nil)

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		assert.NotEqual(t, "made_up_metric", family.GetName())
	}
}

func TestPrometheusMetrics_Histograms(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.RecordHistogram("oracle_latency_seconds", 0.25, map[string]string{
		"provider": "openai", "model": "m", "status": "success",
	})
	metrics.RecordLatency("pipeline_run", 3*time.Second, nil)

	count := testutil.CollectAndCount(metrics.oracleLatency, "oracle_latency_seconds")
	assert.Equal(t, 1, count)
	count = testutil.CollectAndCount(metrics.opLatency, "pipeline_operation_duration_seconds")
	assert.Equal(t, 1, count)
}
