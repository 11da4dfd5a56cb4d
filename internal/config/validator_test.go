package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for _, key := range RequiredEnvVars {
		t.Setenv(key, "value")
	}
}

func TestValidateEnv_AllSet(t *testing.T) {
	setRequiredEnv(t)

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_KEY", "")
	t.Setenv("CODEX_BASE_URL", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "API_KEY")
	assert.Contains(t, err.Error(), "CODEX_BASE_URL")
}

func TestLoad_RejectsIncompleteEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_CompleteEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CODEX_BASE_URL", "http://codex.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://codex.local", cfg.CodexBaseURL)
	assert.Equal(t, "value", cfg.APIKey)
}
