// Package llm provides the oracle client used by the scoring pipeline.
// It abstracts OpenAI-compatible and Anthropic endpoints behind a common
// interface and composes cross-cutting concerns (rate limiting, metrics,
// tracing) through a middleware chain, so the evaluation core only ever
// sees a ready-to-use ports.LLMClient handle.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey:  os.Getenv("TICKETEVAL_API_KEY"),
//	    Model:   "llama-3.3-70b-versatile",
//	    BaseURL: "https://api.groq.com/openai/v1",
//	})
//	response, err := client.Complete(ctx, payload, options)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ahrav/go-ticketeval/internal/ports"
)

// CoreLLM defines the minimal interface that providers must implement.
// Middleware wraps any conforming implementation, so operational features
// compose without touching provider logic.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the response
	// text plus input and output token counts.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model for subsequent requests.
	SetModel(model string)
}

// Middleware wraps a CoreLLM implementation to add cross-cutting
// functionality such as rate limiting, metrics collection, or tracing.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds all configuration options for creating an oracle client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model specifies which model to use for requests.
	Model string

	// BaseURL overrides the provider's default API endpoint. This is how
	// OpenAI-compatible services such as Groq are reached.
	BaseURL string

	// Timeout sets the maximum duration for individual requests.
	// Zero value means no timeout.
	Timeout time.Duration

	// Middleware is applied in the order specified; the first entry is the
	// outermost wrapper.
	Middleware []Middleware
}

var _ ports.LLMClient = (*Client)(nil)

// Client implements ports.LLMClient by delegating to a provider-specific
// CoreLLM wrapped in the configured middleware chain.
type Client struct {
	core CoreLLM
}

// NewClient creates an oracle client for the given provider type.
// It validates configuration and assembles the middleware chain before
// returning a ready-to-use client.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply middleware in reverse order so the first middleware is the outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core}, nil
}

// Complete sends a prompt to the oracle and returns the raw response text.
// Token usage is observed by the metrics middleware inside the chain and
// not surfaced to callers.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	return response, err
}

// GetModel returns the currently configured model name from the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }

// ProviderFactory creates a CoreLLM implementation from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

// Provider factory registry for extensibility. Providers register
// themselves in init so new backends can be added without touching the
// client code.
var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a custom provider factory under the
// given type name.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}
