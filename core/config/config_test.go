package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "blank", token: "   "},
		{name: "placeholder", token: "YOUR_BOT_TOKEN"},
		{name: "padded placeholder", token: " YOUR_BOT_TOKEN\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Telegram: TelegramConfig{Token: tt.token}}
			require.ErrorIs(t, Normalize(cfg), ErrMissingToken)
		})
	}
}

func TestNormalizeRunMode(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: " 123:abc "}}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)

	cfg = &Config{Telegram: TelegramConfig{Token: "t", RunMode: "Polling"}}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	cfg = &Config{Telegram: TelegramConfig{Token: "t", RunMode: "carrier-pigeon"}}
	require.ErrorContains(t, Normalize(cfg), "invalid telegram.run_mode")

	cfg = &Config{Telegram: TelegramConfig{Token: "t", LongPollTimeoutSeconds: -1}}
	require.ErrorContains(t, Normalize(cfg), "longpoll_timeout_seconds")
}

func TestNormalizeWebhook(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}}
	require.ErrorContains(t, Normalize(cfg), "webhook.url")

	cfg.Webhook = WebhookConfig{URL: "https://example.org/hook", Listen: "0.0.0.0"}
	require.ErrorContains(t, Normalize(cfg), "webhook.port")

	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeWebhook, cfg.Telegram.RunMode)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := "telegram:\n  token: from-file\n  admin_id: 42\nlogging:\n  level: debug\n  format: kv\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.AdminID)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("LOG_FORMAT", "json")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "YOUR_BOT_TOKEN")
	_, err := Load("")
	require.ErrorIs(t, err, ErrMissingToken)

	t.Setenv("BOT_TOKEN", "123:abc")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.ErrorContains(t, err, "failed to read config file")
}
