// Command apiserver runs the Warrify REST API.
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
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	embedScheduler := flag.Bool("embed-scheduler", false, "run the reminder scheduler in this process")
	flag.Parse()

	cfg, err := config.LoadOrEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, logger, *embedScheduler); err != nil {
		logger.Error("API server stopped with error", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("API server stopped")
}

func run(cfg *config.Config, logger logging.Logger, embedScheduler bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting warrify API server",
		logging.String("version", cfg.App.Version),
		logging.Int("port", cfg.Server.Port),
		logging.Bool("embedded_scheduler", embedScheduler))

	c, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("closing backends", logging.Err(err))
		}
	}()

	return app.RunAPI(ctx, c, app.APIOptions{EmbedScheduler: embedScheduler})
}
