package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/adagio/visitor-lookup/internal/api/http"
	"github.com/adagio/visitor-lookup/internal/api/http/handlers"
	"github.com/adagio/visitor-lookup/internal/auth"
	"github.com/adagio/visitor-lookup/internal/config"
	"github.com/adagio/visitor-lookup/internal/observability"
	"github.com/adagio/visitor-lookup/internal/secrets"
	"github.com/adagio/visitor-lookup/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	visitors, closeStore, err := openVisitorStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	source, err := secrets.NewSource(ctx, cfg.Secrets)
	if err != nil {
		logger.Error("failed to create secret store client; API tokens will come from the environment",
			zap.String("backend", cfg.Secrets.Backend),
			zap.Error(err),
		)
		source = nil
	}
	if source != nil {
		defer source.Close() //nolint:errcheck
	}
	tokenProvider := secrets.NewProvider(source, cfg.Secrets, logger, metrics)

	lookupService := service.NewLookupService(service.LookupDependencies{
		Visitors: visitors,
		Logger:   logger,
		Metrics:  metrics,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routes := httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, visitors),
		Lookup:         handlers.NewLookupHandler(lookupService),
		AuthMiddleware: auth.NewAuthMiddleware(tokenProvider, logger),
		MetricsPath:    cfg.Metrics.Path,
	}
	if metrics != nil {
		routes.Metrics = metrics.Handler()
	}
	httptransport.RegisterRoutes(app, routes)

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store", cfg.Store.Backend),
			zap.String("secrets", cfg.Secrets.Backend),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
