package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VTEX_ACCOUNT", "teststore")
	t.Setenv("VTEX_APP_KEY", "vtex-key")
	t.Setenv("VTEX_APP_TOKEN", "vtex-token")
	t.Setenv("SANKHYA_TOKEN", "sk-token")
	t.Setenv("SANKHYA_APPKEY", "sk-appkey")
	t.Setenv("SANKHYA_USERNAME", "integration@example.com")
	t.Setenv("SANKHYA_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "teststore", cfg.Vtex.Account)
	assert.Equal(t, 60*time.Second, cfg.Vtex.Timeout)
	assert.Equal(t, "https://api.sankhya.com.br/login", cfg.Sankhya.LoginUrl)
	assert.Equal(t, 3, cfg.Sankhya.Retries)
	assert.Equal(t, 5*time.Second, cfg.Sankhya.RetryBackoff)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.TelegramBot.Token)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SANKHYA_RETRIES", "5")
	t.Setenv("SANKHYA_TIMEOUT", "90s")
	t.Setenv("VTEX_BASE_URL", "http://127.0.0.1:9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Sankhya.Retries)
	assert.Equal(t, 90*time.Second, cfg.Sankhya.Timeout)
	assert.Equal(t, "http://127.0.0.1:9090", cfg.Vtex.BaseUrl)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingCredentialFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SANKHYA_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANKHYA_PASSWORD")
}

func TestLoadRejectsZeroRetries(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SANKHYA_RETRIES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANKHYA_RETRIES")
}
