package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/dhima/synclog/docs"
	"github.com/dhima/synclog/internal/api"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/retention"
	"github.com/dhima/synclog/internal/settings"
	"github.com/dhima/synclog/internal/storage"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/dhima/synclog/pkg/config"
	"go.uber.org/zap"
)

// @title synclog API
// @version 1.0
// @description Stores object-sync log records, filters incoming sync events by the logging settings and reports the retention policy applied by the pruner.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mysqlClient := storage.NewMySQLClient(db)
	if err := mysqlClient.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to prepare schema", zap.Error(err))
	}

	settingsService := settings.NewService(mysqlClient, cfg.SettingsPrefix, logger)
	registry := retention.NewRegistry(retention.Defaults{
		Age:       cfg.Prune.DefaultAge,
		BatchSize: cfg.Prune.BatchSize,
	})
	manager := logs.NewManager(ctx, mysqlClient, settingsService, registry, logger,
		logs.WithCategory(cfg.LogCategory))

	server := api.NewServer(cfg, logger, api.Dependencies{
		DB:        db,
		Logs:      manager,
		LogTypes:  registry,
		Settings:  settingsService,
		Retention: retention.PolicyView{Registry: registry, Schedule: cfg.Prune.Schedule},
		Clock:     clock.RealClock{},
	})

	if err := server.Serve(ctx); err != nil {
		logger.Error("api server stopped", zap.Error(err))
		os.Exit(1)
	}
}
