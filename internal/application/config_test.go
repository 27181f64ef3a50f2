package application

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ticketeval/internal/domain"
	"github.com/ahrav/go-ticketeval/internal/evaluation"
)

// clearEnv blanks every config-related variable so tests see a clean slate
// regardless of the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIKey, EnvProvider, EnvModel, EnvBaseURL, EnvGroqAPIKey} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, evaluation.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, 2000, cfg.BaseDelayMS)
	assert.Equal(t, 60000, cfg.MaxDelayMS)
}

func TestLoadConfig_MissingCredential(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestLoadConfig_GroqFallbackKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGroqAPIKey, "groq-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "groq-key", cfg.APIKey)
}

func TestLoadConfig_PrimaryKeyWinsOverFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "primary")
	t.Setenv(EnvGroqAPIKey, "fallback")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.APIKey)
}

func TestLoadConfig_YAMLOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"model: mixtral-8x7b\n"+
			"temperature: 0.5\n"+
			"max_attempts: 6\n"+
			"requests_per_second: 2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mixtral-8x7b", cfg.Model)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 6, cfg.MaxAttempts)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	// Untouched settings keep their defaults.
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, 2000, cfg.BaseDelayMS)
}

func TestLoadConfig_EnvWinsOverYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvModel, "env-model")
	t.Setenv(EnvProvider, "anthropic")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"model: file-model\nprovider: openai\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, "anthropic", cfg.Provider)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvProvider, "mystery")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestLoadConfig_InvalidYAMLValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_attempts: 0\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "test-key")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_ScorerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseDelayMS = 1500
	cfg.MaxDelayMS = 30000
	cfg.Rubric = "custom rubric"

	sc := cfg.ScorerConfig()
	assert.Equal(t, 1500*time.Millisecond, sc.BaseDelay)
	assert.Equal(t, 30*time.Second, sc.MaxDelay)
	assert.Equal(t, "custom rubric", sc.Rubric)
	assert.Equal(t, cfg.MaxAttempts, sc.MaxAttempts)
}
