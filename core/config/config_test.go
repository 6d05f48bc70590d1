package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:   "123:abc",
			RunMode: "webhook",
		},
		Webhook: WebhookConfig{
			URL:    "https://bot.example.com",
			Listen: "0.0.0.0",
			Port:   8080,
			Secret: "sekret",
		},
	}
}

func TestNormalizeAcceptsValidWebhookConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeWebhook, cfg.Telegram.RunMode)
	assert.Equal(t, "tradebot", cfg.ServiceName)
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeWebhookRequiresURL(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.URL = ""
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeWebhookRequiresListenAndPort(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.Listen = ""
	assert.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Webhook.Port = 0
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeFallsBackToDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Webhook.Secret = ""
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, DefaultWebhookSecret, cfg.Webhook.Secret)
}

func TestNormalizeDefaultsToLongpoll(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = ""
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeDefaultsLinksAndCRMTimeout(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))
	assert.NotEmpty(t, cfg.Links.DemoURL)
	assert.NotEmpty(t, cfg.Links.AppURL)
	assert.Equal(t, 10, cfg.CRM.TimeoutSeconds)
}

func TestNormalizeValidatesRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", "message"}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	assert.Error(t, Normalize(cfg))
}
