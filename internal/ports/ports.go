// Package ports defines the interfaces through which the evaluation core
// talks to infrastructure: the LLM oracle and the metrics backend.
// Implementations live under infrastructure/ and are injected at startup,
// so the core never touches process-wide state or raw credentials.
package ports

import (
	"context"
	"time"
)

// LLMClient defines the interface for the scoring oracle. Implementations
// handle provider-specific details like authentication, request formatting,
// and response parsing. The client is read-only after construction and safe
// for reuse across sequential calls.
type LLMClient interface {
	// Complete sends a completion request to the oracle and returns the raw
	// response text.
	//
	// The options map allows provider-specific configuration without
	// changing the interface. Common options include:
	//   - "temperature": float64
	//   - "max_tokens": int
	//   - "system": string (system instruction)
	//   - "response_format": map[string]string{"type": "json_object"}
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// GetModel returns the model identifier being used by this client.
	// This is useful for logging and debugging purposes.
	GetModel() string
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like requests, rows, and errors.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like latencies.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
