// Package main is the entry point for the antifraud API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antifraud/internal/config"
	"antifraud/internal/handlers"
	"antifraud/internal/logging"
	"antifraud/internal/metrics"
	"antifraud/internal/repositories"
	"antifraud/internal/routes"
	"antifraud/internal/services/account"
	"antifraud/internal/services/antifraud"
	"antifraud/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	store, err := repositories.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()
	logger.Info("store ready", zap.String("store", cfg.Store), zap.Bool("cache", store.Cache != nil))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheusCollector("antifraud")
	if err := collector.Register(registry); err != nil {
		return err
	}

	optional := map[string]handlers.HealthChecker{"redis": nil}
	if store.Cache != nil {
		optional["redis"] = store.Cache
		if err := collector.RegisterBreaker(registry, "redis", store.Cache.BreakerState); err != nil {
			return err
		}
	}
	health := handlers.NewHealthHandler(version,
		map[string]handlers.HealthChecker{"database": handlers.HealthCheckFunc(store.PingDB)},
		optional,
	)

	accounts := account.NewService(store.Accounts, utils.NewBcryptHasher(cfg.BcryptCost), collector)

	app := fiber.New(fiber.Config{
		AppName:               "antifraud " + version,
		UnescapePath:          true,
		ErrorHandler:          routes.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})
	routes.SetupRoutes(app, cfg, routes.Dependencies{
		Antifraud: antifraud.NewService(collector),
		Accounts:  accounts,
		Health:    health,
		Gatherer:  registry,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
