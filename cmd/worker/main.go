// Command worker runs the daily expiry reminder job and consumes
// notification events, serving health and metrics on the metrics port.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/warrify/internal/app"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: defaults plus WARRIFY_* env)")
	runOnce := flag.Bool("once", false, "run a single reminder tick and exit")
	flag.Parse()

	cfg, err := config.LoadOrEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger = logger.Named("worker")

	if err := run(cfg, logger, *runOnce); err != nil {
		logger.Error("worker stopped with error", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(cfg *config.Config, logger logging.Logger, once bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("closing backends", logging.Err(err))
		}
	}()

	if once {
		report, err := c.Scheduler.RunOnce(ctx)
		if err != nil {
			return err
		}
		logger.Info("reminder tick finished",
			logging.Int("checked", report.Checked),
			logging.Int("sent", report.Sent),
			logging.Int("failed", report.Failed),
			logging.Int("skipped", report.Skipped),
			logging.Bool("lock_held", report.LockHeld))
		return nil
	}

	logger.Info("starting warrify worker",
		logging.Bool("reminders", cfg.Reminder.Enabled),
		logging.Bool("kafka", cfg.Kafka.Enabled),
		logging.Int("probe_port", cfg.Metrics.Port))
	return app.RunWorker(ctx, c)
}
