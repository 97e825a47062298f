// Package main implements the entry point for the taskboard API server,
// which handles user registration and login with cookie-based JWT sessions
// and task CRUD backed by Postgres with a Redis cache-aside layer in front
// of task listings.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, sets up logging, establishes the database and
// Redis connections, injects dependencies, and starts the HTTP server.
// Separated from main so that defers run before the process exits.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_ttl_seconds", cfg.Cache.TTLSeconds,
		"cache_legacy_keying", cfg.Cache.LegacyKeying)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	redisClient, err := setupRedis(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up redis: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}

	return nil
}
