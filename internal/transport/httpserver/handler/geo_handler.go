package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/domain"
	"listing-discovery-service/internal/transport/httpserver/dto"
)

const geocodeMinTextLen = 3

// GeoHandler exposes forward and reverse geocoding.
type GeoHandler struct {
	geo    *service.GeocodeService
	logger *zap.Logger
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(geo *service.GeocodeService, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{
		geo:    geo,
		logger: logger,
	}
}

// Geocode handles GET /api/v1/geo/forward
func (h *GeoHandler) Geocode(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewGeocodeError("invalid query parameters"))
	}

	text := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(text) < geocodeMinTextLen {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewGeocodeError("text must be at least 3 characters"))
	}

	size, _ := strconv.Atoi(req.Size)

	results, err := h.geo.Forward(c.Context(), text, size)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewGeocodeError("no results for this location"))
		}

		h.logger.Error("forward geocode failed", zap.String("text", text), zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(dto.NewGeocodeError("geocoding is temporarily unavailable"))
	}

	return c.JSON(dto.FromGeocodeResults(results))
}

// ReverseGeocode handles GET /api/v1/geo/reverse
func (h *GeoHandler) ReverseGeocode(c *fiber.Ctx) error {
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)

	if lonErr != nil || latErr != nil || !finite(lon) || !finite(lat) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewGeocodeError("lon and lat must be finite numbers"))
	}

	result, err := h.geo.Reverse(c.Context(), lon, lat)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewGeocodeError("no place at these coordinates"))
		}

		h.logger.Error("reverse geocode failed",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
			zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(dto.NewGeocodeError("geocoding is temporarily unavailable"))
	}

	return c.JSON(dto.ReverseGeocodeResponse{
		OK:       true,
		Location: result.Location,
		Country:  result.Country,
		Label:    result.Label,
	})
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
