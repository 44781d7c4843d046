package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/medstock/medstock/internal/backup"
	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/observability"
	"github.com/medstock/medstock/internal/storage"
	"github.com/medstock/medstock/internal/storage/s3"
	"github.com/medstock/medstock/internal/store"
)

func main() {
	snapshotArg := flag.String("snapshot", "", "snapshot timestamp to restore, e.g. 20260102T030405Z; omit to list available snapshots")
	flag.Parse()

	cfg, err := config.LoadFromEnv("medstock-restore")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg, os.Stdout)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *snapshotArg == "" {
		snapshots, err := backup.Snapshots(ctx, objectStore, cfg.Backup.Prefix)
		if err != nil {
			logger.Error("failed to list snapshots", slog.Any("error", err))
			os.Exit(1)
		}
		if len(snapshots) == 0 {
			fmt.Println("no snapshots found")
			return
		}
		for _, snapshot := range snapshots {
			fmt.Println(snapshot.Format("20060102T150405Z"))
		}
		return
	}

	snapshot, err := storage.ParseSnapshot(*snapshotArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid snapshot %q: %v\n", *snapshotArg, err)
		os.Exit(2)
	}

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

	service := &backup.RestoreService{
		Store:  objectStore,
		Writer: store.NewRepository(db),
		Logger: logger,
		Config: backup.Config{
			Prefix: cfg.Backup.Prefix,
		},
	}

	summary, err := service.Run(ctx, snapshot)
	if err != nil {
		logger.Error("restore run failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("restore run finished",
		slog.Int("tables", len(summary.Tables)),
		slog.Int64("rows", summary.TotalRows),
		slog.Int("missing", len(summary.Missing)),
	)
}
