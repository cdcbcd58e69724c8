package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 6}, cfg.Predict.AllowedLengths)
	assert.Equal(t, 6, cfg.Predict.DefaultLength)
	assert.Zero(t, cfg.Predict.Delay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data/multiplier_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30, cfg.Database.RetentionDays)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
predict:
  allowed_lengths: [3, 5]
  default_length: 5
  delay: 1500ms
server:
  port: 9000
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 5}, cfg.Predict.AllowedLengths)
	assert.Equal(t, 5, cfg.Predict.DefaultLength)
	assert.Equal(t, 1500*time.Millisecond, cfg.Predict.Delay)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitZeroValuesKept(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
database:
  sqlite_path: ""
  retention_days: 0
server:
  port: 9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Database.SQLitePath)
	assert.Zero(t, cfg.Database.RetentionDays)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []int{2, 3, 6}, cfg.Predict.AllowedLengths)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_LENGTHS", "2, 4")
	t.Setenv("DEFAULT_LENGTH", "4")
	t.Setenv("PREDICT_DELAY", "2s")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []int{2, 4}, cfg.Predict.AllowedLengths)
	assert.Equal(t, 4, cfg.Predict.DefaultLength)
	assert.Equal(t, 2*time.Second, cfg.Predict.Delay)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidInputs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeConfig(t, "predict: [not, a, map"))
	assert.Error(t, err)

	t.Setenv("PORT", "eighty")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base := func() *Config {
		cfg, err := Load("does-not-exist.yaml")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty lengths", func(c *Config) { c.Predict.AllowedLengths = nil }},
		{"length below two", func(c *Config) { c.Predict.AllowedLengths = []int{1, 6} }},
		{"default not allowed", func(c *Config) { c.Predict.DefaultLength = 4 }},
		{"negative delay", func(c *Config) { c.Predict.Delay = -time.Second }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"negative retention", func(c *Config) { c.Database.RetentionDays = -1 }},
		{"token without chat", func(c *Config) { c.Telegram.BotToken = "t" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
