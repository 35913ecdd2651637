package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/transport/httpserver/dto"
)

// DiscoveryHandler serves the landing-page aggregations.
type DiscoveryHandler struct {
	discovery *service.DiscoveryService
	logger    *zap.Logger
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(discovery *service.DiscoveryService, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discovery: discovery,
		logger:    logger,
	}
}

// Top handles GET /api/v1/discovery/top
func (h *DiscoveryHandler) Top(c *fiber.Ctx) error {
	var req dto.DiscoveryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	cats, locs := req.Limits()

	snapshot, err := h.discovery.Top(c.Context(), cats, locs)
	if err != nil {
		h.logger.Error("discovery snapshot failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "discovery failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.DiscoveryResponse{
		Categories: snapshot.Categories,
		Locations:  snapshot.Locations,
	})
}

// TopCategories handles GET /api/v1/discovery/categories
func (h *DiscoveryHandler) TopCategories(c *fiber.Ctx) error {
	var req dto.DiscoveryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	cats, _ := req.Limits()

	categories, err := h.discovery.TopCategories(c.Context(), cats)
	if err != nil {
		h.logger.Error("top categories failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "discovery failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.CategoriesResponse{Categories: categories})
}
