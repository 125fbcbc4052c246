package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/kbenson/cecredit/internal/config"
	"github.com/kbenson/cecredit/internal/logging"
	"github.com/kbenson/cecredit/internal/store"
	"github.com/kbenson/cecredit/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"archive_enabled", cfg.Database.URL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// The run archive is optional; without DATABASE_URL the service still
	// generates reports, it just cannot list past runs.
	var runs *store.RunStore
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("connected to database")
		}

		runs = store.New(pool)
		if err := runs.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
	}

	server := web.NewServer(cfg, runs)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
