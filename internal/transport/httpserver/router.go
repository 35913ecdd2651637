// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/internal/transport/httpserver/handler"
	"listing-discovery-service/internal/transport/httpserver/middleware"
	"listing-discovery-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port          int
	BodyLimit     int
	Debug         bool
	GeoRateLimit  int
	GeoRateWindow time.Duration
}

// Services groups the application services the router wires up.
type Services struct {
	Search    *service.SearchService
	Suggest   *service.SuggestService
	Discovery *service.DiscoveryService
	Geocode   *service.GeocodeService
	Listings  *service.ListingService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	db *gorm.DB,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "listing-discovery-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(middleware.Viewer())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	searchHandler := handler.NewSearchHandler(svcs.Search, svcs.Suggest, v, logger)
	listingHandler := handler.NewListingHandler(svcs.Listings, v, logger)
	discoveryHandler := handler.NewDiscoveryHandler(svcs.Discovery, logger)
	geoHandler := handler.NewGeoHandler(svcs.Geocode, logger)
	dashboardHandler := handler.NewDashboardHandler(svcs.Search, svcs.Discovery, logger)

	// Register routes
	registerRoutes(app, cfg, searchHandler, listingHandler, discoveryHandler, geoHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	cfg ServerConfig,
	searchHandler *handler.SearchHandler,
	listingHandler *handler.ListingHandler,
	discoveryHandler *handler.DiscoveryHandler,
	geoHandler *handler.GeoHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Listings
	listings := v1.Group("/listings")
	listings.Get("/", searchHandler.Search)
	listings.Get("/suggest", searchHandler.Suggest)
	listings.Post("/", middleware.RequireViewer(), listingHandler.Create)
	listings.Get("/:id", listingHandler.Get)
	listings.Put("/:id", middleware.RequireViewer(), listingHandler.Update)
	listings.Delete("/:id", middleware.RequireViewer(), listingHandler.Delete)
	listings.Post("/:id/save", middleware.RequireViewer(), listingHandler.ToggleSave)
	listings.Post("/:id/reviews", middleware.RequireViewer(), listingHandler.AddReview)
	listings.Delete("/:id/reviews/:reviewId", middleware.RequireViewer(), listingHandler.DeleteReview)

	// Discovery
	discovery := v1.Group("/discovery")
	discovery.Get("/top", discoveryHandler.Top)
	discovery.Get("/categories", discoveryHandler.TopCategories)

	// Geocoding, rate limited per client IP
	geo := v1.Group("/geo", middleware.GeoRateLimiter(cfg.GeoRateLimit, cfg.GeoRateWindow))
	geo.Get("/forward", geoHandler.Geocode)
	geo.Get("/reverse", geoHandler.ReverseGeocode)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
