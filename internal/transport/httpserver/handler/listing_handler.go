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

// ListingHandler handles listing CRUD, save toggles and reviews.
type ListingHandler struct {
	listings  *service.ListingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService, v *validator.Validator, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listings:  listings,
		validator: v,
		logger:    logger,
	}
}

// Get handles GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	listing, saved, err := h.listings.Get(c.Context(), c.Params("id"), middleware.ViewerID(c))
	if err != nil {
		return h.mapError(c, err, "fetch listing failed")
	}

	resp := dto.FromDomainListing(listing)
	resp.Saved = &saved

	return c.JSON(resp)
}

// Create handles POST /api/v1/listings
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var payload dto.ListingPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	listing, err := h.listings.Create(c.Context(), middleware.ViewerID(c), payload.ToListingInput())
	if err != nil {
		return h.mapError(c, err, "create listing failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainListing(listing))
}

// Update handles PUT /api/v1/listings/:id
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	var payload dto.ListingPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	listing, err := h.listings.Update(c.Context(), c.Params("id"), payload.ToListingInput())
	if err != nil {
		return h.mapError(c, err, "update listing failed")
	}

	return c.JSON(dto.FromDomainListing(listing))
}

// Delete handles DELETE /api/v1/listings/:id
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	if err := h.listings.Delete(c.Context(), c.Params("id")); err != nil {
		return h.mapError(c, err, "delete listing failed")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleSave handles POST /api/v1/listings/:id/save
func (h *ListingHandler) ToggleSave(c *fiber.Ctx) error {
	saved, err := h.listings.ToggleSave(c.Context(), middleware.ViewerID(c), c.Params("id"))
	if err != nil {
		return h.mapError(c, err, "toggle save failed")
	}

	return c.JSON(dto.SaveResponse{OK: true, Saved: saved})
}

// AddReview handles POST /api/v1/listings/:id/reviews
func (h *ListingHandler) AddReview(c *fiber.Ctx) error {
	var payload dto.ReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	review := &domain.Review{
		ListingID: c.Params("id"),
		AuthorID:  middleware.ViewerID(c),
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	}

	if err := h.listings.AddReview(c.Context(), review); err != nil {
		return h.mapError(c, err, "add review failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainReview(review))
}

// DeleteReview handles DELETE /api/v1/listings/:id/reviews/:reviewId
func (h *ListingHandler) DeleteReview(c *fiber.Ctx) error {
	if err := h.listings.DeleteReview(c.Context(), c.Params("id"), c.Params("reviewId")); err != nil {
		return h.mapError(c, err, "delete review failed")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ListingHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "listing not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	case errors.Is(err, domain.ErrLocationNotFound), errors.Is(err, domain.ErrGeocodeFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: "could not resolve the listing location",
			Code:  "LOCATION_UNRESOLVED",
		})
	}

	h.logger.Error(logMsg, zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "internal error",
		Code:  "INTERNAL_ERROR",
	})
}
