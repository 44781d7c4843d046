package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medstock/medstock/internal/api"
	"github.com/medstock/medstock/internal/chat"
	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/gemini"
	"github.com/medstock/medstock/internal/observability"
	"github.com/medstock/medstock/internal/store"
)

func main() {
	cfg, err := config.LoadFromEnv("medstock-api")
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

	repo := store.NewRepository(db)
	model := gemini.New(gemini.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	assistant := &chat.Pipeline{
		Model:  model,
		Store:  repo,
		Logger: logger,
		Config: chat.Config{
			QueryTemperature:  cfg.AI.QueryTemperature,
			AnswerTemperature: cfg.AI.AnswerTemperature,
			MaxOutputTokens:   cfg.AI.MaxOutputTokens,
		},
	}

	deps := api.Dependencies{
		Logger:    logger,
		Assistant: assistant,
		Products:  repo,
		Master:    repo,
		Records:   repo,
		Readiness: api.CombineReadinessChecks(
			api.CheckDatabaseDSN(cfg),
			repo.HealthCheck,
			api.CheckModelCredential(model),
		),
		DependencyTimeout: time.Second,
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
