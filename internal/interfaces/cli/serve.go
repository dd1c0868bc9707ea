package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/warrify/internal/app"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

// NewServeCmd starts the HTTP API.
func NewServeCmd() *cobra.Command {
	var embedScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: "Serve the REST API. With --embed-scheduler the daily reminder job runs\n" +
			"in the same process, otherwise run `warrify worker` alongside it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			watchLogLevel(cliCtx)

			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				return app.RunAPI(ctx, c, app.APIOptions{EmbedScheduler: embedScheduler})
			})
		},
	}
	cmd.Flags().BoolVar(&embedScheduler, "embed-scheduler", false, "run the reminder scheduler inside the API process")
	return cmd
}

// NewWorkerCmd starts the background worker.
func NewWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the reminder scheduler and notification event consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			watchLogLevel(cliCtx)

			return withContainer(cmd, app.RunWorker)
		},
	}
}

// watchLogLevel applies log level edits in the config file without a restart.
// Other settings still need one.
func watchLogLevel(cliCtx *CLIContext) {
	if cliCtx.ConfigPath == "" {
		return
	}
	log := cliCtx.Logger
	err := config.Watch(cliCtx.ConfigPath,
		func(cfg *config.Config) {
			if logging.SetLevel(log, cfg.Log.Level) {
				log.Info("log level reloaded", logging.String("level", cfg.Log.Level))
			}
		},
		func(err error) {
			log.Warn("config reload failed", logging.Err(err))
		})
	if err != nil {
		log.Warn("config watch disabled", logging.Err(err))
	}
}
