package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medstock/medstock/internal/backup"
	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/observability"
	"github.com/medstock/medstock/internal/storage/s3"
	"github.com/medstock/medstock/internal/store"
)

func main() {
	cfg, err := config.LoadFromEnv("medstock-backup")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)
	db, err := store.Open(context.Background(), store.DBConfig{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	objectStore, err := s3.New(context.Background(), s3.Config{
		Endpoint:         cfg.ObjectStore.Endpoint,
		Region:           cfg.ObjectStore.Region,
		Bucket:           cfg.ObjectStore.Bucket,
		AccessKeyID:      cfg.ObjectStore.AccessKeyID,
		SecretAccessKey:  cfg.ObjectStore.SecretAccessKey,
		UseSSL:           cfg.ObjectStore.UseSSL,
		Prefix:           cfg.ObjectStore.Prefix,
		AutoCreateBucket: cfg.ObjectStore.AutoCreateBucket,
	})
	if err != nil {
		logger.Error("failed to initialize object store", slog.Any("error", err))
		os.Exit(1)
	}

	service := &backup.Service{
		Store:    objectStore,
		Dumper:   store.NewRepository(db),
		Verifier: backup.DuckDBVerifier{},
		Logger:   logger,
		Config: backup.Config{
			Prefix: cfg.Backup.Prefix,
			Verify: cfg.Backup.Verify,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	summary, err := service.Run(ctx)
	if err != nil {
		logger.Error("backup run failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("backup run finished",
		slog.Int("tables", len(summary.Tables)),
		slog.Int64("rows", summary.TotalRows),
		slog.Duration("elapsed", time.Since(started)),
	)
}
