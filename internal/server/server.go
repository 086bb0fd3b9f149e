package server

import (
	"log"

	"prompttovideo-be/internal/bootstrap"
	"prompttovideo-be/internal/config"
	"prompttovideo-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// Unauthenticated surface: auth, Stripe callback, public video pages.
	c.AuthController.RegisterRoutes(api)
	c.PaymentController.RegisterWebhookRoute(api)
	c.VideoController.RegisterPublicRoutes(api)

	// Authenticated surface, rate limited per subscription tier.
	authed := api.Group("", serverutils.JwtMiddleware, serverutils.RateLimitMiddleware(c.Redis))

	c.VideoController.RegisterRoutes(authed)
	c.PaymentController.RegisterRoutes(authed)
	c.ChatController.RegisterRoutes(authed)
	c.ChallengeController.RegisterRoutes(authed)
	c.ProfileController.RegisterRoutes(authed)
	c.AdminController.RegisterRoutes(authed)

	// Notifications carry their own JWT middleware because of the
	// websocket handshake path.
	c.NotificationHandler.RegisterRoutes(api)
}
