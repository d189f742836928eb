package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/portfolio/internal/config"
	"github.com/JonMunkholm/portfolio/internal/feed"
	"github.com/JonMunkholm/portfolio/internal/logging"
	"github.com/JonMunkholm/portfolio/internal/projects"
	"github.com/JonMunkholm/portfolio/internal/web"
)

func main() {
	// Load .env file if it exists; real environment variables take precedence
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.URL,
		"refresh_interval", cfg.Source.RefreshInterval.String(),
		"rate_limit_enabled", cfg.Rate.Enabled,
		"refresh_requires_key", cfg.Security.RequireAPIKey(),
	)
	slog.Debug("configuration", "config", cfg.String())

	src, err := feed.NewSource(cfg.Source.URL, nil)
	if err != nil {
		slog.Error("invalid projects source", "error", err)
		os.Exit(1)
	}

	// Serve the bundled dataset until the first load succeeds
	bundled := projects.Bundled()
	store := feed.NewStore(bundled)
	slog.Info("bundled projects loaded", "records", len(bundled))

	service := feed.NewService(src, store, feed.Options{
		Load: feed.LoadOptions{
			Charset:  cfg.Source.Charset,
			MaxBytes: cfg.Source.MaxBytes,
		},
		FetchTimeout: cfg.Source.FetchTimeout,
		Metrics:      feed.NewMetrics(),
	})

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartScheduler(jobCtx, cfg.Source.RefreshInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop the scheduler; an in-flight load is discarded
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if service.Loading() {
			slog.Info("waiting for load cycle to finish")
			if err := service.WaitIdle(shutdownCtx); err != nil {
				slog.Warn("load cycle did not finish in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
