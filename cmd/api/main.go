package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/chorale/internal/adapters/catalog"
	"github.com/ewilliams-labs/chorale/internal/adapters/rest"
	"github.com/ewilliams-labs/chorale/internal/adapters/sqlite"
	"github.com/ewilliams-labs/chorale/internal/config"
	"github.com/ewilliams-labs/chorale/internal/core/extract"
	"github.com/ewilliams-labs/chorale/internal/core/services"
	"github.com/ewilliams-labs/chorale/internal/providers"
	"github.com/ewilliams-labs/chorale/internal/worker"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load() // no .env file is fine; plain env vars still apply
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Driven adapters
	history, err := sqlite.NewAdapter(cfg.HistoryPath)
	if err != nil {
		logger.Fatal("failed to initialize history database", zap.Error(err))
	}
	defer func() { _ = history.Close() }()

	live, err := providers.ForConfig(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure lookup provider", zap.Error(err))
	}

	// 3. Core logic
	extractor := extract.New(extract.DefaultVocabulary())
	finder := services.NewFinder(extractor, live, catalog.NewProvider(), logger)

	// 4. Driving adapter
	pool := worker.NewPool(history, 100, logger)
	pool.Start(2)
	defer pool.Stop()

	handler := rest.NewHandler(finder, history, pool)

	// 5. Server
	logger.Info("chorale API is running",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("api_type", cfg.APIType),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
}
