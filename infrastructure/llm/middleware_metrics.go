package llm

import (
	"context"
	"time"

	"github.com/ahrav/go-ticketeval/internal/ports"
)

// metricsLLM collects per-request metrics: latency, request counts by
// status, and token usage. Every retry attempt passes through here, so the
// recorded request count can exceed the row count.
type metricsLLM struct {
	next      CoreLLM
	collector ports.MetricsCollector
	provider  string
}

// MetricsMiddleware creates middleware that records oracle request metrics
// against the given collector. The provider label distinguishes backends
// when multiple are configured over time.
func MetricsMiddleware(collector ports.MetricsCollector, provider string) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{next: next, collector: collector, provider: provider}
	}
}

// DoRequest executes the request while recording latency, status, and token
// usage.
func (m *metricsLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	start := time.Now()
	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)

	labels := map[string]string{
		"provider": m.provider,
		"model":    m.next.GetModel(),
		"status":   "success",
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			labels["status"] = "timeout"
		} else {
			labels["status"] = "error"
		}
	}

	if m.collector != nil {
		m.collector.RecordHistogram("oracle_latency_seconds", time.Since(start).Seconds(), labels)
		m.collector.RecordCounter("oracle_requests_total", 1, labels)

		if err == nil {
			labels["token_type"] = "input"
			m.collector.RecordCounter("oracle_tokens_total", float64(tokensIn), labels)

			labels["token_type"] = "output"
			m.collector.RecordCounter("oracle_tokens_total", float64(tokensOut), labels)
		}
	}

	return response, tokensIn, tokensOut, err
}

// GetModel returns the model name from the wrapped implementation.
func (m *metricsLLM) GetModel() string { return m.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (m *metricsLLM) SetModel(model string) { m.next.SetModel(model) }
