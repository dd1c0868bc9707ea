// Package app assembles Warrify from configuration: infrastructure clients,
// repositories, application services and the HTTP router. The API server,
// the worker and the CLI all build on one Container.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/account"
	"github.com/turtacn/warrify/internal/application/assistant"
	"github.com/turtacn/warrify/internal/application/auth"
	"github.com/turtacn/warrify/internal/application/insights"
	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/application/product"
	"github.com/turtacn/warrify/internal/application/reminder"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/ai/gemini"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/warrify/internal/infrastructure/database/redis"
	"github.com/turtacn/warrify/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/infrastructure/notification/email"
	"github.com/turtacn/warrify/internal/infrastructure/storage/minio"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/intelligence/servicedir"
	httpserver "github.com/turtacn/warrify/internal/interfaces/http"
	"github.com/turtacn/warrify/internal/interfaces/http/handlers"
	"github.com/turtacn/warrify/internal/interfaces/http/middleware"
)

// EventSource tags events published by this process.
const EventSource = "warrify"

// Container owns every long-lived dependency. Optional backends (redis,
// kafka, minio) are nil when disabled in config.
type Container struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Clock     risk.Clock

	DB       *postgres.Connection
	Redis    *redis.Client
	Producer *kafka.Producer
	MinIO    *minio.Client
	Gemini   *gemini.Client

	Users         warranty.UserRepository
	Products      warranty.ProductRepository
	Notifications warranty.NotificationRepository

	Dispatcher email.Dispatcher
	Recorder   *notification.Recorder
	Directory  *servicedir.Directory

	AuthService         auth.Service
	ProductService      product.Service
	NotificationService notification.Service
	AssistantService    assistant.Service
	InsightsService     insights.Service
	AccountService      account.Service
	Scheduler           *reminder.Scheduler

	closers []func() error
}

// New connects to every configured backend and wires the services. On
// failure whatever was opened is closed again.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (c *Container, err error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	built := &Container{Config: cfg, Logger: log, Clock: risk.SystemClock{}, Directory: servicedir.Default()}
	c = built
	defer func() {
		if err != nil {
			_ = built.Close()
		}
	}()

	if err = c.initMetrics(); err != nil {
		return nil, err
	}
	if err = c.initPostgres(); err != nil {
		return nil, err
	}
	if err = c.initRedis(); err != nil {
		return nil, err
	}
	if err = c.initKafka(ctx); err != nil {
		return nil, err
	}
	if err = c.initMinIO(ctx); err != nil {
		return nil, err
	}
	if c.Dispatcher, err = email.NewDispatcher(cfg.SMTP, log.Named("email")); err != nil {
		return nil, err
	}
	c.Gemini = gemini.NewClient(cfg.AI, gemini.WithLogger(log.Named("gemini")))

	c.wireServices()
	return c, nil
}

func (c *Container) initMetrics() error {
	if !c.Config.Metrics.Enabled {
		c.Collector = prometheus.NewNopCollector()
		c.Metrics = prometheus.NewAppMetrics(c.Collector)
		return nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            c.Config.Metrics.Namespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, c.Logger)
	if err != nil {
		return err
	}
	c.Collector = collector
	c.Metrics = prometheus.NewAppMetrics(collector)
	return nil
}

func (c *Container) initPostgres() error {
	pgCfg := postgres.FromConfig(c.Config.Database)
	if c.Config.Database.AutoMigrate {
		if err := postgres.Migrate(pgCfg, c.Logger.Named("migrate")); err != nil {
			return err
		}
	}
	conn, err := postgres.NewConnection(pgCfg, c.Logger.Named("postgres"))
	if err != nil {
		return err
	}
	c.DB = conn
	c.closers = append(c.closers, conn.Close)

	c.Users = repositories.NewPostgresUserRepo(conn, c.Logger)
	c.Products = repositories.NewPostgresProductRepo(conn, c.Logger)
	c.Notifications = repositories.NewPostgresNotificationRepo(conn, c.Logger)
	return nil
}

func (c *Container) initRedis() error {
	if !c.Config.Redis.Enabled {
		c.Logger.Info("redis disabled, using in-process rate limits and no risk cache")
		return nil
	}
	client, err := redis.NewClient(c.Config.Redis, c.Logger.Named("redis"))
	if err != nil {
		return err
	}
	c.Redis = client
	c.closers = append(c.closers, client.Close)
	return nil
}

func (c *Container) initKafka(ctx context.Context) error {
	kc := c.Config.Kafka
	if !kc.Enabled {
		return nil
	}
	if tm, err := kafka.NewTopicManager(kc.Brokers, c.Logger); err != nil {
		c.Logger.Warn("kafka admin unavailable, relying on topic auto-creation", logging.Err(err))
	} else {
		if err := tm.EnsureTopics(ctx, kc.Topic); err != nil {
			c.Logger.Warn("could not ensure kafka topics", logging.String("topic", kc.Topic), logging.Err(err))
		}
		_ = tm.Close()
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: kc.Brokers, Acks: "one"}, c.Logger.Named("kafka"))
	if err != nil {
		return err
	}
	c.Producer = producer
	c.closers = append(c.closers, producer.Close)
	return nil
}

func (c *Container) initMinIO(ctx context.Context) error {
	if !c.Config.MinIO.Enabled {
		c.Logger.Info("minio disabled, invoice uploads unavailable")
		return nil
	}
	client, err := minio.NewClient(ctx, c.Config.MinIO, c.Logger.Named("minio"))
	if err != nil {
		return err
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return err
	}
	c.MinIO = client
	return nil
}

func (c *Container) wireServices() {
	cfg := c.Config
	log := c.Logger

	var publisher notification.EventPublisher
	if c.Producer != nil {
		publisher = kafka.NewNotificationPublisher(c.Producer, cfg.Kafka.Topic, EventSource)
	}
	c.Recorder = notification.NewRecorder(c.Notifications, publisher, c.Metrics, log.Named("notifications"))

	var riskCache product.RiskCache
	var locker redis.Locker
	if c.Redis != nil {
		riskCache = redis.NewRiskCache(c.Redis, 0, log)
		locker = redis.NewMutex(c.Redis, reminder.LockName, cfg.Reminder.LockTTL, log)
	}
	var invoices product.InvoiceStore
	if c.MinIO != nil {
		invoices = minio.NewInvoiceStore(c.MinIO)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	c.AuthService = auth.NewService(c.Users, tokens, cfg.Auth.BcryptCost, c.Metrics, log.Named("auth"))
	c.ProductService = product.NewService(product.Deps{
		Products:      c.Products,
		Recorder:      c.Recorder,
		Scorer:        risk.NewScorer(c.Clock),
		RiskCache:     riskCache,
		Invoices:      invoices,
		MaxUploadSize: cfg.MinIO.MaxUploadSize,
		Metrics:       c.Metrics,
		Logger:        log.Named("products"),
	})
	c.NotificationService = notification.NewService(c.Products, c.Users, c.Recorder, c.Dispatcher, c.Directory, c.Clock, log.Named("notifications"))
	c.AssistantService = assistant.NewService(assistant.Deps{
		Products:  c.Products,
		Completer: c.Gemini,
		Directory: c.Directory,
		Clock:     c.Clock,
		Metrics:   c.Metrics,
		Logger:    log.Named("assistant"),
	})
	c.InsightsService = insights.NewService(c.Products, c.Clock)
	c.AccountService = account.NewService(c.Users, c.Products, c.Notifications, log.Named("account"))
	c.Scheduler = reminder.NewScheduler(reminder.Deps{
		Products:      c.Products,
		Users:         c.Users,
		Notifications: c.Notifications,
		Recorder:      c.Recorder,
		Dispatcher:    c.Dispatcher,
		Locker:        locker,
		Clock:         c.Clock,
		Config:        cfg.Reminder,
		Metrics:       c.Metrics,
		Logger:        log,
	})
}

// HealthCheckers lists a probe per connected backend.
func (c *Container) HealthCheckers() []handlers.HealthChecker {
	checks := []handlers.HealthChecker{
		handlers.CheckFunc{Component: "postgres", Fn: c.DB.HealthCheck},
	}
	if c.Redis != nil {
		checks = append(checks, handlers.CheckFunc{Component: "redis", Fn: c.Redis.Ping})
	}
	if c.MinIO != nil {
		checks = append(checks, handlers.CheckFunc{Component: "minio", Fn: c.MinIO.HealthCheck})
	}
	return checks
}

// Router builds the API route tree over the wired services.
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	log := c.Logger

	cors := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	rc := httpserver.RouterConfig{
		Mode:                 cfg.Server.Mode,
		AuthHandler:          handlers.NewAuthHandler(c.AuthService, log),
		ProductHandler:       handlers.NewProductHandler(c.ProductService, cfg.MinIO.MaxUploadSize, log),
		NotificationHandler:  handlers.NewNotificationHandler(c.NotificationService, log),
		AssistantHandler:     handlers.NewAssistantHandler(c.AssistantService, c.InsightsService, log),
		AccountHandler:       handlers.NewAccountHandler(c.AccountService, log),
		ServiceCenterHandler: handlers.NewServiceCenterHandler(c.Directory),
		HealthHandler:        handlers.NewHealthHandler(cfg.App.Version, c.Metrics, c.HealthCheckers()...),
		AuthMiddleware:       middleware.NewAuthMiddleware(c.AuthService, log),
		CORS:                 cors,
		Limiter:              redis.NewRateLimiter(c.Redis, log.Named("ratelimit")),
		RateLimits:           cfg.RateLimit,
		Metrics:              c.Metrics,
		Logger:               log,
	}
	if cfg.Metrics.Enabled {
		rc.MetricsCollector = c.Collector
		rc.MetricsPath = cfg.Metrics.Path
	}
	return httpserver.NewRouter(rc)
}

// Close releases backends in reverse order of opening.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
