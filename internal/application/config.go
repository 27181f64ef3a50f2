// Package application wires the evaluation core together: it loads and
// validates run configuration and drives the sequential per-row pipeline.
package application

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ticketeval/internal/domain"
	"github.com/ahrav/go-ticketeval/internal/evaluation"
)

// Environment variables consulted at startup. The credential is read here
// and never travels past client construction; the core only ever receives
// a ready-to-use oracle handle.
const (
	EnvAPIKey   = "TICKETEVAL_API_KEY"
	EnvProvider = "TICKETEVAL_PROVIDER"
	EnvModel    = "TICKETEVAL_MODEL"
	EnvBaseURL  = "TICKETEVAL_BASE_URL"

	// EnvGroqAPIKey is accepted as a fallback credential since Groq is the
	// default oracle backend.
	EnvGroqAPIKey = "GROQ_API_KEY"
)

// Default oracle settings: Groq's OpenAI-compatible endpoint with a Llama
// scoring model.
const (
	DefaultProvider = "openai"
	DefaultModel    = "llama-3.3-70b-versatile"
	DefaultBaseURL  = "https://api.groq.com/openai/v1"
)

// Config holds the complete run configuration. Env vars supply identity
// (provider, model, endpoint, credential); the optional YAML file tunes
// behavior (sampling, retry budget, pacing, rubric). Env always wins over
// the file so deployments can override a checked-in config.
type Config struct {
	// Provider selects the oracle backend.
	Provider string `yaml:"provider" validate:"required,oneof=openai anthropic"`

	// Model is the scoring model identifier.
	Model string `yaml:"model" validate:"required"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// APIKey authenticates against the oracle. Env-only, never from file.
	APIKey string `yaml:"-" validate:"required"`

	// Temperature is the sampling temperature for scoring requests.
	Temperature float64 `yaml:"temperature" validate:"min=0,max=2"`

	// MaxAttempts is the total attempts per row, including the first.
	MaxAttempts int `yaml:"max_attempts" validate:"min=1,max=10"`

	// BaseDelayMS is the wait in milliseconds before the first retry.
	BaseDelayMS int `yaml:"base_delay_ms" validate:"min=0,max=60000"`

	// MaxDelayMS caps the backoff wait in milliseconds.
	MaxDelayMS int `yaml:"max_delay_ms" validate:"min=0,max=300000"`

	// MaxTokens limits the oracle's response length.
	MaxTokens int `yaml:"max_tokens" validate:"min=1,max=8192"`

	// RequestsPerSecond paces oracle calls. Zero disables the rate limiter.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"min=0"`

	// TimeoutSeconds bounds each HTTP request. Zero means no timeout; the
	// retry budget is then the only time-boxing mechanism.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"min=0,max=600"`

	// Rubric overrides the built-in scoring rubric. Empty keeps the default.
	Rubric string `yaml:"rubric"`
}

// DefaultConfig returns the configuration used when no file overrides are
// present: four attempts with exponential backoff from 2s capped at 60s,
// near-deterministic sampling, Groq as the backend.
func DefaultConfig() Config {
	return Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		BaseURL:     DefaultBaseURL,
		Temperature: evaluation.DefaultTemperature,
		MaxAttempts: evaluation.DefaultMaxAttempts,
		BaseDelayMS: int(evaluation.DefaultBaseDelay / time.Millisecond),
		MaxDelayMS:  int(evaluation.DefaultMaxDelay / time.Millisecond),
		MaxTokens:   evaluation.DefaultMaxTokens,
	}
}

// LoadConfig builds the run configuration: .env file (never overriding real
// env), then defaults, then the optional YAML file at configPath, then env
// vars. A missing credential or invalid setting is a fatal setup error,
// surfaced before any row is processed.
func LoadConfig(configPath string) (Config, error) {
	// Missing .env is fine; real environment variables take precedence
	// either way.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if v := os.Getenv(EnvProvider); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvGroqAPIKey)
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("%w: set %s (or %s), e.g. in a .env file",
			domain.ErrMissingCredential, EnvAPIKey, EnvGroqAPIKey)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	return cfg, nil
}

// ScorerConfig converts the run configuration into the scoring client's
// retry and sampling settings.
func (c Config) ScorerConfig() evaluation.ScorerConfig {
	return evaluation.ScorerConfig{
		Rubric:      c.Rubric,
		Temperature: c.Temperature,
		MaxAttempts: c.MaxAttempts,
		BaseDelay:   time.Duration(c.BaseDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(c.MaxDelayMS) * time.Millisecond,
		MaxTokens:   c.MaxTokens,
	}
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
