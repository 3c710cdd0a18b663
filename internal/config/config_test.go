package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VAPI_API_KEY", "vapi-key")
	t.Setenv("SERVER_PORT", "8080")
}

func TestLoad_RequiredAndDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VAPI_BASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("WEBHOOK_SECRET", "")
	t.Setenv("ASSISTANT_NAME", "")
	t.Setenv("BANK_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vapi-key", cfg.Services.VapiAPIKey)
	assert.Equal(t, "https://api.vapi.ai", cfg.Services.VapiBaseURL)
	assert.Empty(t, cfg.Services.OpenAIAPIKey)
	assert.Empty(t, cfg.Services.WebhookSecret)
	assert.Equal(t, "Andrew", cfg.Assistant.Name)
	assert.Equal(t, "Bull Bank", cfg.Assistant.BankName)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VAPI_BASE_URL", "http://localhost:9999")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("WEBHOOK_SECRET", "hook-secret")
	t.Setenv("VAPI_ASSISTANT_ID", "asst-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Services.VapiBaseURL)
	assert.Equal(t, "openai-key", cfg.Services.OpenAIAPIKey)
	assert.Equal(t, "hook-secret", cfg.Services.WebhookSecret)
	assert.Equal(t, "asst-1", cfg.Assistant.AssistantID)
}

func TestLoad_MissingVapiAPIKey(t *testing.T) {
	t.Setenv("VAPI_API_KEY", "")
	t.Setenv("SERVER_PORT", "8080")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyEnvironmentVariable)
	assert.Contains(t, err.Error(), "VAPI_API_KEY")
}

func TestLoad_MissingServerPort(t *testing.T) {
	t.Setenv("VAPI_API_KEY", "vapi-key")
	t.Setenv("SERVER_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyEnvironmentVariable)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestLoad_BadServerPort(t *testing.T) {
	t.Setenv("VAPI_API_KEY", "vapi-key")
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}
