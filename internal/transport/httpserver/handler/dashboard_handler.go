package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	search    *service.SearchService
	discovery *service.DiscoveryService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(search *service.SearchService, discovery *service.DiscoveryService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		search:    search,
		discovery: discovery,
		logger:    logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	count, _ := h.search.Count(c.Context())

	var categories []string
	if snapshot, err := h.discovery.Top(c.Context(), 0, 0); err == nil {
		categories = snapshot.Categories
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":         "Listing Discovery Dashboard",
		"ListingCount":  count,
		"TopCategories": categories,
	}, "layouts/base")
}
