// Package server contains the HTML and JSON handlers for the application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/cache"
	"github.com/oykukmnGlad/ROOTEAM/internal/config"
	"github.com/oykukmnGlad/ROOTEAM/internal/database"
	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"
	"github.com/oykukmnGlad/ROOTEAM/internal/service"
	"github.com/oykukmnGlad/ROOTEAM/internal/species"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Store
	catalog        *species.Catalog
	authService    *service.AuthService
	plantService   *service.PlantService
	careService    *service.CareService
	forumService   *service.ForumService
}

// NewServer connects to the configured database and Redis and builds a Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient, err := cache.Connect(context.Background(), cfg.RedisURL)
	if err != nil {
		// Sessions fall back to memory and categories to the database.
		middleware.Logger.Warn("Redis unavailable, continuing without it", slog.String("error", err.Error()))
		redisClient = nil
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	catalog, err := species.Default()
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	plantRepo := repository.NewPlantRepository(db)
	careRepo := repository.NewCareLogRepository(db)
	forumRepo := repository.NewForumRepository(db, cache.NewStore(redisClient))

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		sessions:       newSessionStore(cfg, redisClient),
		catalog:        catalog,
		authService:    service.NewAuthService(userRepo),
		plantService:   service.NewPlantService(plantRepo),
		careService:    service.NewCareService(plantRepo, careRepo),
		forumService:   service.NewForumService(forumRepo),
	}
	// Built here so Start and Shutdown only ever read s.app.
	server.app = server.NewApp()
	return server, nil
}

// App returns the Fiber application served by Start.
func (s *Server) App() *fiber.App {
	return s.app
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Plant Care",
		Views:        newViewEngine(),
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// The JSON API authenticates with bearer tokens, so no credentials are shared cross-origin.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// HTML pages
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.LoginForm)
	app.Get("/register", s.ShowRegister)
	app.Post("/register", s.RegisterForm)
	app.Get("/logout", s.LogoutPage)

	// Per-route so the session check never runs in front of /api.
	loginRequired := s.LoginRequired()
	app.Get("/", loginRequired, s.Dashboard)
	app.Post("/add_plant", loginRequired, s.AddPlantForm)
	app.Post("/log_care/:plant_id", loginRequired, s.LogCareForm)
	app.Get("/forum", loginRequired, s.ForumPage)
	app.Post("/forum", loginRequired, s.ForumPostForm)

	// JSON API
	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Plant Care Metrics Dashboard",
	}))

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)

	speciesGuide := api.Group("/species")
	speciesGuide.Get("/", s.ListSpecies)
	speciesGuide.Get("/:slug/care", s.GetSpeciesCare)
	speciesGuide.Get("/:slug/issues", s.GetSpeciesIssues)
	speciesGuide.Get("/:slug/treatments/:issue", s.GetSpeciesTreatment)
	speciesGuide.Get("/:slug", s.GetSpecies)

	protected := api.Group("", s.AuthRequired())

	plants := protected.Group("/plants")
	plants.Get("/", s.GetPlants)
	plants.Post("/", s.CreatePlant)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	plants.Post("/:id/care", s.CreateCareLog)
	plants.Get("/:id/care", s.GetCareHistory)
	plants.Get("/:id", s.GetPlant)

	protected.Get("/care/summary", s.GetCareSummary)
	protected.Get("/care/today", s.GetCareToday)

	forum := protected.Group("/forum")
	forum.Get("/posts", s.GetForumPosts)
	forum.Post("/posts", s.CreateForumPost)
	forum.Get("/categories", s.GetForumCategories)
}

// LivenessCheck answers the orchestrator liveness check
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck answers the readiness check. Redis is optional and
// only checked when configured.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// errorHandler answers unmatched routes and unhandled errors: JSON under
// /api, the 404 page or a plain error otherwise.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	status := models.StatusFor(err)
	if errors.As(err, &fe) {
		status = fe.Code
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	}

	if strings.HasPrefix(c.Path(), "/api") {
		if fe != nil {
			return c.Status(status).JSON(models.ErrorResponse{Error: fe.Message})
		}
		return models.RespondWithError(c, status, err)
	}

	if status == fiber.StatusNotFound {
		return s.renderNotFound(c, "Aradığınız sayfa mevcut değil.")
	}
	return c.Status(status).SendString(utils.StatusMessage(status))
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
