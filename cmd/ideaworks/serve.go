package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/server"
	"github.com/hyperjump/ideaworks/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globalFlags) *cobra.Command {
	var watchConfig bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), g, watchConfig)
		},
	}
	cmd.Flags().BoolVar(&watchConfig, "watch-config", true, "reload scoring constants when the config file changes")
	return cmd
}

func runServe(ctx context.Context, g *globalFlags, watchConfig bool) error {
	cfg, resolvedConfigPath, logger, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug || g.debug),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchConfig {
		if _, statErr := os.Stat(resolvedConfigPath); statErr == nil {
			w := watcher.NewConfigWatcher(resolvedConfigPath, func(next *config.Config) {
				comps.Finder.SetScoring(&next.Scoring)
				logger.Info("scoring constants reloaded; other settings apply on restart")
			}, watcher.WithLogger(logger.Named("watcher")))
			if err := w.Start(ctx); err != nil {
				logger.Warn("config watcher not started", zap.Error(err))
			} else {
				defer w.Stop()
			}
		}
	}

	srv, err := server.NewServer(comps.Finder, comps.Papers, comps.LLM, cfg, logger.Named("server"))
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
