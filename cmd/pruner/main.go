package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/retention"
	"github.com/dhima/synclog/internal/settings"
	"github.com/dhima/synclog/internal/storage"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/dhima/synclog/pkg/config"
	platformEvents "github.com/dhima/synclog/platform/events"
	"go.uber.org/zap"
)

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
	logs.NewManager(ctx, mysqlClient, settingsService, registry, logger,
		logs.WithCategory(cfg.LogCategory))

	var locker retention.Locker = &retention.LocalLocker{}
	if cfg.RedisAddr != "" {
		client, err := retention.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		locker = retention.NewRedisLocker(client)
	} else {
		logger.Warn("REDIS_ADDR not set, prune lock is local to this process")
	}

	var publisher retention.EventPublisher
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kafkaPublisher := platformEvents.NewPublisher(brokers, cfg.KafkaTopic, logging.Unwrap(logger))
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("failed to close kafka publisher", zap.Error(err))
			}
		}()
		publisher = kafkaPublisher
	}

	engine, err := retention.NewEngine(retention.Config{
		Schedule: cfg.Prune.Schedule,
		LockTTL:  cfg.Prune.LockTTL,
	}, registry, mysqlClient, publisher, locker, logger, clock.RealClock{})
	if err != nil {
		logger.Fatal("invalid retention configuration", zap.Error(err))
	}

	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("retention engine stopped", zap.Error(err))
		os.Exit(1)
	}
}
