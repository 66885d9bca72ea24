package main

import (
	"context"
	"fmt"

	"ayunova/internal/app"
	"ayunova/internal/config"
	"ayunova/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "ayunova",
	Short: "Ayunova wellness dashboard server",
	Long: `Ayunova serves the wellness dashboard over HTTP and websocket.

Available commands:
  serve      Start the HTTP server
  migrate    Apply database migrations
  seed       Insert the demo account and wellness records

Use "ayunova [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ayunova v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, builds the logger and opens the container.
// The returned cleanup closes the container and flushes the logger.
func setup(ctx context.Context) (*app.Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("open container: %w", err)
	}

	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Warn("cleanup failed", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return c, cleanup, nil
}
