// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/domain"
	"listing-discovery-service/internal/transport/httpserver/dto"
	"listing-discovery-service/internal/transport/httpserver/middleware"
	"listing-discovery-service/internal/validator"
)

// SearchHandler handles listing search and suggestion requests.
type SearchHandler struct {
	search    *service.SearchService
	suggest   *service.SuggestService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *service.SearchService, suggest *service.SuggestService, v *validator.Validator, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		search:    search,
		suggest:   suggest,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/listings
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	page, err := h.search.Search(c.Context(), req.ToSearchQuery(middleware.ViewerID(c)))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "sign in to view saved listings",
				Code:  "UNAUTHENTICATED",
			})
		}

		h.logger.Error("search failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromSearchPage(page))
}

// Suggest handles GET /api/v1/listings/suggest
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	cards, err := h.suggest.Suggest(c.Context(), req.ToSuggestInput())
	if err != nil {
		h.logger.Error("suggest failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "suggest failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.SuggestResponse{Results: cards})
}
