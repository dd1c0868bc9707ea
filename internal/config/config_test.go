package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Reminder.Enabled = true
	cfg.RateLimit.Enabled = true
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"port zero", func(c *config.Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *config.Config) { c.Server.Port = 65536 }, "server.port"},
		{"bad mode", func(c *config.Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"db host", func(c *config.Config) { c.Database.Host = "" }, "database.host"},
		{"db user", func(c *config.Config) { c.Database.User = "" }, "database.user"},
		{"db name", func(c *config.Config) { c.Database.DBName = "" }, "database.db_name"},
		{"redis addr", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"kafka brokers", func(c *config.Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"minio bucket", func(c *config.Config) { c.MinIO.Enabled = true; c.MinIO.Bucket = "" }, "minio.bucket"},
		{"jwt secret", func(c *config.Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret"},
		{"token expiry", func(c *config.Config) { c.Auth.TokenExpiry = -time.Hour }, "auth.token_expiry"},
		{"cron", func(c *config.Config) { c.Reminder.Schedule = "every five minutes" }, "reminder.schedule"},
		{"rate rule", func(c *config.Config) { c.RateLimit.Auth.Limit = -1 }, "rate_limit.auth"},
		{"log level", func(c *config.Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConfig_Validate_DisabledReminderSkipsSchedule(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Reminder.Enabled = false
	cfg.Reminder.Schedule = "nonsense"
	assert.NoError(t, cfg.Validate())
}

func TestSMTPConfig_Configured(t *testing.T) {
	t.Parallel()
	assert.False(t, config.SMTPConfig{}.Configured())
	assert.False(t, config.SMTPConfig{Username: "a@b.c"}.Configured())
	assert.True(t, config.SMTPConfig{Username: "a@b.c", Password: "pw"}.Configured())
}
