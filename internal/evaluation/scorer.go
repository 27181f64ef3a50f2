package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahrav/go-ticketeval/internal/domain"
	"github.com/ahrav/go-ticketeval/internal/ports"
)

// Default scoring client configuration.
const (
	// DefaultMaxAttempts is the total number of send-decode-validate
	// attempts per row, including the first.
	DefaultMaxAttempts = 4
	// DefaultBaseDelay is the wait before the first retry.
	DefaultBaseDelay = 2 * time.Second
	// DefaultMaxDelay caps the exponential backoff between attempts.
	DefaultMaxDelay = 60 * time.Second
	// DefaultTemperature keeps scoring near-deterministic to minimize
	// variance across repeated calls.
	DefaultTemperature = 0.1
	// DefaultMaxTokens bounds the length of the oracle's justification text.
	DefaultMaxTokens = 512
)

// TicketScorer is implemented by anything that can score one ticket/reply
// pair. The row evaluator depends on this interface so test doubles can
// stand in for the real oracle-backed client.
type TicketScorer interface {
	// Evaluate scores one pair. It returns an error only after the client's
	// retry budget is exhausted.
	Evaluate(ctx context.Context, ticket, reply string) (domain.EvaluationResult, error)
}

var _ TicketScorer = (*Scorer)(nil)

// ScorerConfig defines the retry and sampling behavior of the scoring client.
type ScorerConfig struct {
	// Rubric is the system instruction sent with every request.
	// Empty selects DefaultRubric.
	Rubric string

	// Temperature is the sampling temperature for scoring requests.
	Temperature float64

	// MaxAttempts is the total number of attempts per row, including the
	// first. Every failure class consumes the same budget: request errors,
	// decode errors, and schema violations are retried identically.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; subsequent waits double.
	BaseDelay time.Duration

	// MaxDelay caps the backoff wait.
	MaxDelay time.Duration

	// MaxTokens limits the response length requested from the oracle.
	MaxTokens int
}

// DefaultScorerConfig returns a ScorerConfig with the standard retry policy:
// four attempts with exponential backoff from 2s capped at 60s.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Rubric:      DefaultRubric,
		Temperature: DefaultTemperature,
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Scorer is the scoring client: it issues one scoring request per attempt,
// decodes and validates the response, and retries the whole
// send-decode-validate sequence on any failure up to the configured budget.
// Decode errors and schema errors are deliberately not distinguished from
// transient oracle errors; the unified policy keeps the client simple at the
// cost of spending the full budget on deterministically malformed responses,
// which is acceptable for a non-interactive batch.
type Scorer struct {
	client ports.LLMClient
	config ScorerConfig
	logger *zap.Logger
}

// NewScorer creates a scoring client around the given oracle handle.
// The handle is injected rather than read from process-wide state so tests
// can substitute a double.
func NewScorer(client ports.LLMClient, config ScorerConfig, logger *zap.Logger) (*Scorer, error) {
	if client == nil {
		return nil, fmt.Errorf("oracle client cannot be nil")
	}
	if config.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", config.MaxAttempts)
	}
	if config.Rubric == "" {
		config.Rubric = DefaultRubric
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{client: client, config: config, logger: logger}, nil
}

// Evaluate scores one ticket/reply pair. On success it returns the validated
// result verbatim. After the final attempt fails it returns the last error;
// no further retry happens above this client.
func (s *Scorer) Evaluate(ctx context.Context, ticket, reply string) (domain.EvaluationResult, error) {
	prompt, err := EncodePayload(ticket, reply)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("encode payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		result, err := s.attempt(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == s.config.MaxAttempts {
			break
		}

		delay := s.backoff(attempt)
		s.logger.Warn("retrying oracle call",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.config.MaxAttempts),
			zap.Duration("wait", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return domain.EvaluationResult{}, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return domain.EvaluationResult{}, fmt.Errorf("evaluation failed after %d attempts: %w", s.config.MaxAttempts, lastErr)
}

// attempt runs one full send-decode-validate sequence.
func (s *Scorer) attempt(ctx context.Context, prompt string) (domain.EvaluationResult, error) {
	options := map[string]any{
		"system":          s.config.Rubric,
		"temperature":     s.config.Temperature,
		"max_tokens":      s.config.MaxTokens,
		"response_format": map[string]string{"type": "json_object"},
	}

	raw, err := s.client.Complete(ctx, prompt, options)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("oracle request: %w", err)
	}

	decoded, err := decodeResponse(raw)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("decode response: %w", err)
	}

	return ValidateResponse(decoded)
}

// backoff returns the wait before the next attempt: BaseDelay doubled per
// completed attempt, capped at MaxDelay.
func (s *Scorer) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 30 {
		attempt = 30
	}
	delay := s.config.BaseDelay << uint(attempt-1)
	if delay > s.config.MaxDelay || delay <= 0 {
		delay = s.config.MaxDelay
	}
	return delay
}

// EncodePayload serializes a ticket/reply pair as the JSON user payload.
// HTML escaping is disabled so quotes, newlines, and non-ASCII characters
// reach the oracle verbatim; round-tripping the payload reproduces the
// original text exactly.
func EncodePayload(ticket, reply string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(domain.TicketRow{Ticket: ticket, Reply: reply}); err != nil {
		return "", err
	}
	// Encode appends a trailing newline.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// decodeResponse parses the raw oracle output as a JSON object. UseNumber
// keeps scores as json.Number so the validator can reject non-integer
// representations like 5.0.
func decodeResponse(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	dec.UseNumber()

	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
