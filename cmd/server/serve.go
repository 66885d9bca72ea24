package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayunova/internal/app"
	"ayunova/internal/database/migration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serveMigrate         bool
	serveShutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if serveMigrate {
			r := migration.Runner{Logger: c.Logger.Named("migration")}
			if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
				return err
			}
		}

		return serve(ctx, c)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown deadline")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, c *app.Container) error {
	a, _, err := app.Bootstrap(c)
	if err != nil {
		return err
	}

	addr, err := app.ListenAddr(c.Config.App.HTTPPort)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		c.Logger.Info("http server listening", zap.String("addr", addr))
		return a.Fiber.Listen(addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return a.Fiber.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
