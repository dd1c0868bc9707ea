package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 8080
  mode: debug
database:
  host: db.internal
  user: warrify
  password: secret
  db_name: warrify
redis:
  enabled: true
  addr: redis:6379
reminder:
  schedule: "0 9 * * *"
  lock_ttl: 2m
rate_limit:
  auth:
    limit: 5
    window: 10m
log:
  level: debug
  format: console
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "0 9 * * *", cfg.Reminder.Schedule)
	assert.Equal(t, 2*time.Minute, cfg.Reminder.LockTTL)
	assert.Equal(t, 5, cfg.RateLimit.Auth.Limit)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Auth.Window)
	assert.Equal(t, "console", cfg.Log.Format)
	// untouched keys come from registered defaults
	assert.Equal(t, 100, cfg.RateLimit.API.Limit)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, DefaultPlatformVersion, cfg.App.Version)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server: [1, 2"))
	assert.Error(t, err)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server:\n  mode: prod\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.mode")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("WARRIFY_SERVER_PORT", "9999")
	t.Setenv("WARRIFY_AI_GEMINI_API_KEY", "key-123")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "key-123", cfg.AI.GeminiAPIKey)
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	t.Setenv("WARRIFY_SMTP_USERNAME", "alerts@warrify.app")
	t.Setenv("WARRIFY_SMTP_PASSWORD", "app-password")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultReminderSchedule, cfg.Reminder.Schedule)
	assert.True(t, cfg.SMTP.Configured())
}

func TestLoadOrEnv(t *testing.T) {
	cfg, err := LoadOrEnv("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)

	cfg, err = LoadOrEnv(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	defaults := &Config{}
	ApplyDefaults(defaults)
	assert.Equal(t, defaults.Server.Port, cfg.Server.Port)
	assert.Equal(t, defaults.Reminder.Schedule, cfg.Reminder.Schedule)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, defaults.RateLimit.Auth, cfg.RateLimit.Auth)
	assert.Equal(t, defaults.RateLimit.InvoiceCheck, cfg.RateLimit.InvoiceCheck)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
	assert.Equal(t, 4*time.Minute, cfg.Reminder.LockTTL)
}
