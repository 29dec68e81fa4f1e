package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

func emptyConfig(t *testing.T) driven.ConfigStore {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestBuildOracleDefaultsToOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	oracle, err := buildOracle("", emptyConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", oracle.ModelName())
}

func TestBuildOracleAnthropicFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "key")

	oracle, err := buildOracle("anthropic", emptyConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-sonnet-latest", oracle.ModelName())
}

func TestBuildOracleProviderFromConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "key")
	cfg := emptyConfig(t)
	require.NoError(t, cfg.Set("oracle.provider", "anthropic"))
	require.NoError(t, cfg.Set("anthropic.model", "claude-3-haiku-20240307"))

	oracle, err := buildOracle("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "claude-3-haiku-20240307", oracle.ModelName())
}

func TestBuildOracleKeyFromConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := emptyConfig(t)
	require.NoError(t, cfg.Set("openai.api_key", "sk-from-config"))

	_, err := buildOracle("openai", cfg)
	assert.NoError(t, err)
}

func TestBuildOracleMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := buildOracle("openai", emptyConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not set")
}

func TestBuildOracleUnknownProvider(t *testing.T) {
	_, err := buildOracle("bard", emptyConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown oracle provider")
}
