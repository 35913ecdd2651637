package middleware

import (
	"github.com/gofiber/fiber/v2"

	"listing-discovery-service/internal/transport/httpserver/dto"
)

// viewerKey is the Locals key holding the authenticated viewer id.
const viewerKey = "viewer_id"

// viewerHeader carries the viewer identity forwarded by the gateway, which
// terminates sessions upstream of this service.
const viewerHeader = "X-User-ID"

// Viewer returns a middleware that exposes the forwarded viewer identity.
// Anonymous requests pass through with an empty id.
func Viewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(viewerKey, c.Get(viewerHeader))

		return c.Next()
	}
}

// ViewerID returns the viewer id for the request, empty when anonymous.
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals(viewerKey).(string)

	return id
}

// RequireViewer returns a middleware that rejects anonymous requests.
func RequireViewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ViewerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "sign in required",
				Code:  "UNAUTHENTICATED",
			})
		}

		return c.Next()
	}
}
