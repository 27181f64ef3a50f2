// Package testutils provides test doubles shared across packages,
// primarily a scriptable oracle client for exercising the scoring
// pipeline without network access.
package testutils

import (
	"context"
	"sync"

	"github.com/ahrav/go-ticketeval/internal/ports"
)

var _ ports.LLMClient = (*MockLLMClient)(nil)

// ScriptedResponse is one step in a mock oracle's script: either a raw
// response body or an error.
type ScriptedResponse struct {
	// Response is the raw text returned for this call.
	Response string
	// Err, when non-nil, is returned instead of a response.
	Err error
}

// MockLLMClient implements ports.LLMClient with a per-call script.
// Calls consume script entries in order; once the script is exhausted the
// last entry repeats, which makes retry-exhaustion tests deterministic
// without scripting every attempt. The zero number of entries is invalid.
type MockLLMClient struct {
	mu     sync.Mutex
	model  string
	script []ScriptedResponse
	calls  int

	// lastPrompt and lastOptions capture the most recent request for
	// assertions on payload and option plumbing.
	lastPrompt  string
	lastOptions map[string]any
}

// NewMockLLMClient creates a mock oracle that replies with the given script.
func NewMockLLMClient(model string, script ...ScriptedResponse) *MockLLMClient {
	return &MockLLMClient{model: model, script: script}
}

// Complete implements ports.LLMClient by consuming the next script entry.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.calls
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	m.calls++
	m.lastPrompt = prompt
	m.lastOptions = options

	step := m.script[idx]
	if step.Err != nil {
		return "", step.Err
	}
	return step.Response, nil
}

// GetModel returns the mock model identifier.
func (m *MockLLMClient) GetModel() string { return m.model }

// Calls returns how many times Complete has been invoked.
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt from the most recent call.
func (m *MockLLMClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastOptions returns the options map from the most recent call.
func (m *MockLLMClient) LastOptions() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOptions
}
