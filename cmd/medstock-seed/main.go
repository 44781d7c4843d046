package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/observability"
	"github.com/medstock/medstock/internal/seed"
	"github.com/medstock/medstock/internal/store"
)

func main() {
	entity := flag.String("entity", "", "entity to import: products|categories|departments|sellers")
	file := flag.String("file", "", "path to the CSV export")
	flag.Parse()

	if *entity == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "usage: medstock-seed -entity products|categories|departments|sellers -file export.csv")
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv("medstock-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "MEDSTOCK_DATABASE_DSN is required")
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

	input, err := os.Open(*file)
	if err != nil {
		logger.Error("failed to open csv file", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = input.Close() }()

	importer := &seed.Importer{Store: store.NewRepository(db), Logger: logger}
	ctx := context.Background()

	var result seed.Result
	switch *entity {
	case "products":
		result, err = importer.ImportProducts(ctx, input)
	case "categories":
		result, err = importer.ImportCategories(ctx, input)
	case "departments":
		result, err = importer.ImportDepartments(ctx, input)
	case "sellers":
		result, err = importer.ImportSellers(ctx, input)
	default:
		fmt.Fprintf(os.Stderr, "unknown entity: %s\n", *entity)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("import failed", slog.String("entity", *entity), slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("imported %d row(s), skipped %d\n", result.Imported, result.Skipped)
}
