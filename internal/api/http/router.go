package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/adagio/visitor-lookup/internal/api/http/handlers"
	"github.com/adagio/visitor-lookup/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Lookup         *handlers.LookupHandler
	AuthMiddleware *auth.AuthMiddleware

	// Metrics is served at MetricsPath when non-nil.
	Metrics     nethttp.Handler
	MetricsPath string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)
	app.Get("/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Post("/lookup", cfg.AuthMiddleware.Handle, cfg.Lookup.Lookup)
}
