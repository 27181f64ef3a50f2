package llm

// options.go provides shared request-option parsing and validation for the
// provider implementations, plus the BaseProvider embedded by each of them.

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// Valid ranges for common request parameters, enforced consistently across
// providers.
const (
	// MinTemperature is the minimum allowed sampling temperature.
	MinTemperature = 0.0
	// MaxTemperature is the maximum allowed sampling temperature.
	MaxTemperature = 2.0
	// DefaultMaxTokens is used when no max_tokens option is supplied.
	DefaultMaxTokens = 1024
	// MinTimeout is the minimum allowed request timeout.
	MinTimeout = 1 * time.Second
	// MaxTimeout is the maximum allowed request timeout.
	MaxTimeout = 10 * time.Minute
)

// BaseProvider provides common, thread-safe model-name handling for all
// provider implementations.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the name of the model currently configured.
// It is safe for concurrent use.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel updates the model name for the provider.
// It is safe for concurrent use.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// RequestOptions is the standardized set of request parameters shared by
// the providers.
type RequestOptions struct {
	// Model is the identifier of the model to use for the request.
	Model string
	// MaxTokens limits the length of the generated response.
	MaxTokens int
	// Temperature controls sampling randomness. Nil means provider default.
	Temperature *float64
	// System is the system instruction guiding the model's behavior.
	System string
	// JSONResponse requests a response guaranteed to parse as a JSON object,
	// on providers that support structured output.
	JSONResponse bool
}

// ParseRequestOptions extracts standardized request parameters from a
// generic option map, applying defaults for missing or invalid entries.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		Model:     ExtractOptionalString(opts, "model", defaultModel, IsNonEmptyString),
		MaxTokens: ExtractOptionalInt(opts, "max_tokens", DefaultMaxTokens, IsPositiveInt),
		System:    ExtractOptionalString(opts, "system", "", nil),
	}

	if temp := ExtractOptionalFloat64(opts, "temperature", -1, IsValidTemperature); temp != -1 {
		options.Temperature = &temp
	}

	if format, ok := opts["response_format"].(map[string]string); ok {
		options.JSONResponse = format["type"] == "json_object"
	}

	return options
}

// ExtractOptionalInt extracts an integer from an options map.
// Returns defaultVal if the key is absent, the value is not an int, or the
// validator rejects it.
func ExtractOptionalInt(opts map[string]any, key string, defaultVal int, validator func(int) bool) int {
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	intVal, ok := val.(int)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(intVal) {
		return defaultVal
	}
	return intVal
}

// ExtractOptionalString extracts a string from an options map.
// Returns defaultVal if the key is absent, the value is not a string, or the
// validator rejects it.
func ExtractOptionalString(opts map[string]any, key string, defaultVal string, validator func(string) bool) string {
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	strVal, ok := val.(string)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(strVal) {
		return defaultVal
	}
	return strVal
}

// ExtractOptionalFloat64 extracts a float64 from an options map.
// Returns defaultVal if the key is absent, the value is not a float64, or
// the validator rejects it.
func ExtractOptionalFloat64(opts map[string]any, key string, defaultVal float64, validator func(float64) bool) float64 {
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	floatVal, ok := val.(float64)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(floatVal) {
		return defaultVal
	}
	return floatVal
}

// IsPositiveInt returns true if the integer is greater than 0.
func IsPositiveInt(val int) bool { return val > 0 }

// IsNonEmptyString returns true if the string is not empty.
func IsNonEmptyString(val string) bool { return val != "" }

// IsValidTemperature returns true if the value is within [0.0, 2.0].
func IsValidTemperature(val float64) bool {
	return val >= MinTemperature && val <= MaxTemperature
}

// ValidateBaseURL validates and normalizes a base URL string. An empty
// string is valid and selects the provider's default endpoint.
func ValidateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}

	return parsedURL.String(), nil
}

// ValidateTimeout clamps a timeout to the [MinTimeout, MaxTimeout] range.
// Zero or negative means no explicit timeout and is returned as zero.
func ValidateTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 0
	}
	if timeout < MinTimeout {
		return MinTimeout
	}
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}

// TokenCounter estimates token counts when the provider response does not
// include them, so the metrics middleware always has something to record.
type TokenCounter struct {
	// CharactersPerToken is the approximate ratio used for estimation.
	CharactersPerToken float64
}

// NewTokenCounter creates a TokenCounter with a ratio suitable for English text.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{CharactersPerToken: 4.0}
}

// GetTokenCount returns the actual count when positive, falling back to an
// estimate derived from the text length.
func (tc *TokenCounter) GetTokenCount(actualCount int, text string) int {
	if actualCount > 0 {
		return actualCount
	}
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / tc.CharactersPerToken)
}
