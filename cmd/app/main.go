package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quicklink-go/config"
	"quicklink-go/internal/handler"
	"quicklink-go/internal/i18n"
	"quicklink-go/internal/maintenance"
	"quicklink-go/internal/repository"
	"quicklink-go/internal/router"
	"quicklink-go/internal/service"
	"quicklink-go/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.InitLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	db, err := repository.OpenDB(cfg.DB, logger, logging.AtomicLevel)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	redisPool := repository.NewRedisPool(cfg.Redis, logger)
	if redisPool == nil {
		logger.Info("Redis not configured, link cache disabled")
	}

	bundle, err := i18n.InitI18n("en")
	if err != nil {
		logger.Fatal("Failed to initialize i18n", zap.Error(err))
	}

	svc := service.NewShortLinkService(
		repository.NewGormLinkStore(db),
		repository.NewLinkCache(redisPool, logger),
		service.Options{
			BaseURL:     cfg.Server.BaseURL,
			MaxAttempts: cfg.ShortCode.MaxAttempts,
		},
		logger,
	)

	r := router.Router(logger, bundle, cfg.Server.CorsOrigin, handler.NewShortLinkHandler(svc, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := maintenance.NewScheduler(logger, svc, cfg.Maintenance.Schedule)
	if err := scheduler.Start(ctx); err != nil {
		logger.Fatal("Failed to schedule maintenance job", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("Server is running on " + cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
	}

	if redisPool != nil {
		if err := redisPool.Close(); err != nil {
			logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}
	if err := repository.CloseDB(db); err != nil {
		logger.Warn("Database close failed", zap.Error(err))
	}

	logger.Info("Server exiting")
}
