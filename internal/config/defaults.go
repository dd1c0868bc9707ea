package config

import "time"

const (
	DefaultAppName         = "warrify"
	DefaultPlatformVersion = "2.0.0"

	DefaultServerPort      = 3000
	DefaultServerMode      = "release"
	DefaultMaxBodySize     = 5 << 20
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "warrify"
	DefaultDBName     = "warrify"
	DefaultDBMaxConns = 25

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "warrify"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "warrify-worker"
	DefaultKafkaTopic   = "notification.events"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "warrify-invoices"
	DefaultMaxUploadSize = 5 << 20

	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587

	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/"
	DefaultGeminiVersion = "v1beta"

	DefaultJWTSecret   = "dev-secret-key-change-in-prod-must-be-env-in-real-prod"
	DefaultTokenExpiry = 24 * time.Hour
	DefaultBcryptCost  = 10

	DefaultReminderSchedule = "*/5 * * * *"
	DefaultReminderLockTTL  = 4 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "warrify"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsPort      = 9091
)

// defaultValues lists every key viper should know about. Registering them is
// what lets WARRIFY_* environment variables override keys absent from the file.
func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"app.name":    DefaultAppName,
		"app.version": DefaultPlatformVersion,

		"server.port":             DefaultServerPort,
		"server.mode":             DefaultServerMode,
		"server.read_timeout":     15 * time.Second,
		"server.write_timeout":    60 * time.Second,
		"server.shutdown_timeout": DefaultShutdownTimeout,
		"server.max_body_size":    DefaultMaxBodySize,
		"server.allowed_origins":  []string{"http://localhost:3000"},

		"database.host":               DefaultDBHost,
		"database.port":               DefaultDBPort,
		"database.user":               DefaultDBUser,
		"database.password":           "",
		"database.db_name":            DefaultDBName,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     DefaultDBMaxConns,
		"database.max_idle_conns":     10,
		"database.conn_max_lifetime":  30 * time.Minute,
		"database.conn_max_idle_time": 5 * time.Minute,
		"database.statement_timeout":  30 * time.Second,
		"database.auto_migrate":       true,

		"redis.enabled":       false,
		"redis.addr":          DefaultRedisAddr,
		"redis.password":      "",
		"redis.db":            0,
		"redis.pool_size":     10,
		"redis.dial_timeout":  5 * time.Second,
		"redis.read_timeout":  3 * time.Second,
		"redis.write_timeout": 3 * time.Second,
		"redis.key_prefix":    DefaultRedisKeyPrefix,

		"kafka.enabled":  false,
		"kafka.brokers":  []string{DefaultKafkaBroker},
		"kafka.group_id": DefaultKafkaGroupID,
		"kafka.topic":    DefaultKafkaTopic,

		"minio.enabled":         false,
		"minio.endpoint":        DefaultMinIOEndpoint,
		"minio.access_key":      "",
		"minio.secret_key":      "",
		"minio.bucket":          DefaultMinIOBucket,
		"minio.region":          "us-east-1",
		"minio.use_ssl":         false,
		"minio.presign_expiry":  time.Hour,
		"minio.max_upload_size": DefaultMaxUploadSize,

		"smtp.host":     DefaultSMTPHost,
		"smtp.port":     DefaultSMTPPort,
		"smtp.username": "",
		"smtp.password": "",
		"smtp.from":     "",
		"smtp.timeout":  15 * time.Second,

		"ai.gemini_api_key": "",
		"ai.model":          DefaultGeminiModel,
		"ai.base_url":       DefaultGeminiBaseURL,
		"ai.api_version":    DefaultGeminiVersion,
		"ai.timeout":        30 * time.Second,

		"auth.jwt_secret":   DefaultJWTSecret,
		"auth.token_expiry": DefaultTokenExpiry,
		"auth.bcrypt_cost":  DefaultBcryptCost,

		"reminder.enabled":      true,
		"reminder.schedule":     DefaultReminderSchedule,
		"reminder.lock_ttl":     DefaultReminderLockTTL,
		"reminder.tick_timeout": DefaultReminderLockTTL,

		"rate_limit.enabled":              true,
		"rate_limit.api.limit":            100,
		"rate_limit.api.window":           time.Minute,
		"rate_limit.auth.limit":           20,
		"rate_limit.auth.window":          15 * time.Minute,
		"rate_limit.invoice_check.limit":  20,
		"rate_limit.invoice_check.window": time.Minute,

		"log.level":  DefaultLogLevel,
		"log.format": DefaultLogFormat,

		"metrics.enabled":   true,
		"metrics.namespace": DefaultMetricsNamespace,
		"metrics.path":      DefaultMetricsPath,
		"metrics.port":      DefaultMetricsPort,
	}
}

// ApplyDefaults fills zero-value fields of cfg. Explicit values always win.
// Boolean switches are left untouched since false is a meaningful setting.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── App / Server ──────────────────────────────────────────────────────────
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultPlatformVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = DefaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDBMaxConns
	}

	// ── Redis / Kafka / MinIO ─────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = time.Hour
	}
	if cfg.MinIO.MaxUploadSize == 0 {
		cfg.MinIO.MaxUploadSize = DefaultMaxUploadSize
	}

	// ── SMTP / AI / Auth ──────────────────────────────────────────────────────
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = DefaultSMTPHost
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = DefaultGeminiModel
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.AI.APIVersion == "" {
		cfg.AI.APIVersion = DefaultGeminiVersion
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30 * time.Second
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DefaultJWTSecret
	}
	if cfg.Auth.TokenExpiry == 0 {
		cfg.Auth.TokenExpiry = DefaultTokenExpiry
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = DefaultBcryptCost
	}

	// ── Reminder / RateLimit ──────────────────────────────────────────────────
	if cfg.Reminder.Schedule == "" {
		cfg.Reminder.Schedule = DefaultReminderSchedule
	}
	if cfg.Reminder.LockTTL == 0 {
		cfg.Reminder.LockTTL = DefaultReminderLockTTL
	}
	if cfg.Reminder.TickTimeout == 0 {
		cfg.Reminder.TickTimeout = cfg.Reminder.LockTTL
	}
	applyRule(&cfg.RateLimit.API, 100, time.Minute)
	applyRule(&cfg.RateLimit.Auth, 20, 15*time.Minute)
	applyRule(&cfg.RateLimit.InvoiceCheck, 20, time.Minute)

	// ── Log / Metrics ─────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = DefaultMetricsPort
	}
}

func applyRule(r *RateRule, limit int, window time.Duration) {
	if r.Limit == 0 {
		r.Limit = limit
	}
	if r.Window == 0 {
		r.Window = window
	}
}
