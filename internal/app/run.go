package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/warrify/internal/interfaces/http"
	"github.com/turtacn/warrify/internal/interfaces/http/handlers"
)

// APIOptions tunes RunAPI.
type APIOptions struct {
	// EmbedScheduler runs the reminder scheduler inside the API process,
	// for single-process deployments without a worker.
	EmbedScheduler bool
}

// RunAPI serves HTTP until ctx is cancelled, then shuts down gracefully.
func RunAPI(ctx context.Context, c *Container, opts APIOptions) error {
	srv := httpserver.NewServer(c.Config.Server, c.Router(), c.Logger.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(context.Background())
	})
	if opts.EmbedScheduler && c.Config.Reminder.Enabled {
		g.Go(func() error { return c.Scheduler.Start(gctx) })
	}
	return g.Wait()
}

// RunWorker runs the reminder scheduler, the notification event consumer and
// a health/metrics listener until ctx is cancelled or one of them fails.
func RunWorker(ctx context.Context, c *Container) error {
	cfg := c.Config
	log := c.Logger.Named("worker")
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Reminder.Enabled {
		g.Go(func() error { return c.Scheduler.Start(gctx) })
	} else {
		log.Info("reminder scheduler disabled")
	}

	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topics:  []string{cfg.Kafka.Topic},
			RetryConfig: kafka.RetryConfig{
				MaxRetries:      3,
				RetryBackoff:    time.Second,
				MaxRetryBackoff: 4 * time.Second,
			},
		}, log.Named("consumer"))
		if err != nil {
			return err
		}
		consumer.Subscribe(cfg.Kafka.Topic, NotificationEventHandler(c.Metrics, log))
		g.Go(func() error { return consumer.Run(gctx) })
	}

	probe := httpserver.NewServer(config.ServerConfig{
		Port:            cfg.Metrics.Port,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}, httpserver.NewRouter(workerProbeRouter(c)), log.Named("probe"))
	g.Go(probe.Start)
	g.Go(func() error {
		<-gctx.Done()
		return probe.Stop(context.Background())
	})

	log.Info("worker started",
		logging.Bool("scheduler", cfg.Reminder.Enabled),
		logging.Bool("consumer", cfg.Kafka.Enabled),
		logging.Int("probe_port", cfg.Metrics.Port))
	return g.Wait()
}

func workerProbeRouter(c *Container) httpserver.RouterConfig {
	rc := httpserver.RouterConfig{
		Mode:          c.Config.Server.Mode,
		HealthHandler: handlers.NewHealthHandler(c.Config.App.Version, c.Metrics, c.HealthCheckers()...),
		Logger:        c.Logger,
	}
	if c.Config.Metrics.Enabled {
		rc.MetricsCollector = c.Collector
		rc.MetricsPath = c.Config.Metrics.Path
	}
	return rc
}
