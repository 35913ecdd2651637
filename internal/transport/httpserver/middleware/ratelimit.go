package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"listing-discovery-service/internal/transport/httpserver/dto"
)

// GeoRateLimiter bounds per-client call volume to the paid geocoding
// provider. It sits in front of the geocode cache, so the rejected excess
// never reaches the provider regardless of cache hit rate.
func GeoRateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.NewGeocodeError("too many requests"))
		},
	})
}
