package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adagio/visitor-lookup/internal/api/dto"
	apperrors "github.com/adagio/visitor-lookup/pkg/util/errorutil"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	store       Pinger
	now         func() time.Time
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, store Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store, now: time.Now}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": h.serviceName,
		"status":  "healthy",
	})
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": dto.FormatTimestamp(h.now()),
	})
}

// Ready reports service readiness by checking the document store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return apperrors.NewUnavailable("document store unavailable", err)
		}
	}

	return c.JSON(fiber.Map{
		"status":  "ready",
		"service": h.serviceName,
		"version": h.version,
	})
}
