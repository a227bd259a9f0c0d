package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adagio/visitor-lookup/internal/api/dto"
	"github.com/adagio/visitor-lookup/internal/service"
	apperrors "github.com/adagio/visitor-lookup/pkg/util/errorutil"
)

// LookupHandler exposes the visitor id lookup.
type LookupHandler struct {
	lookup *service.LookupService
}

// NewLookupHandler constructs handler.
func NewLookupHandler(lookupService *service.LookupService) *LookupHandler {
	return &LookupHandler{lookup: lookupService}
}

// Lookup handles POST /lookup.
func (h *LookupHandler) Lookup(c *fiber.Ctx) error {
	var req dto.LookupRequest
	if err := parseLookupRequest(c, &req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	record, foundAt, err := h.lookup.Lookup(c.UserContext(), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(dto.LookupResponse{
		VisitorID: record.VisitorID,
		UserID:    req.UserID,
		FoundAt:   dto.FormatTimestamp(foundAt),
	})
}

// parseLookupRequest treats a body sent without a Content-Type as JSON.
func parseLookupRequest(c *fiber.Ctx, req *dto.LookupRequest) error {
	if c.Get(fiber.HeaderContentType) == "" {
		return c.App().Config().JSONDecoder(c.Body(), req)
	}
	return c.BodyParser(req)
}
