// Package server contains the HTTP handlers for the group subsystem's API.
package server

import (
	"context"
	"log/slog"
	"time"

	_ "commons/docs" // swagger docs
	"commons/internal/bootstrap"
	"commons/internal/config"
	"commons/internal/featureflags"
	"commons/internal/middleware"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
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
	groups         *service.GroupService
	messages       *service.MessageChannel
	notifier       *notifications.Notifier
	featureFlags   *featureflags.Manager
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally seeds fixtures.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)
	svc := bootstrap.NewServices(cfg, db, redisClient)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("commons-api"),
		groups:         svc.Groups,
		messages:       svc.Messages,
		notifier:       svc.Notifier,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Public discovery. /groups/me is registered first so it never parses as an id.
	groups := api.Group("/groups")
	groups.Get("/", s.ListGroups)
	groups.Get("/me", middleware.AuthRequired, s.GetMyGroups)
	groups.Get("/:id", middleware.OptionalAuth, s.GetGroup)

	protected := api.Group("", middleware.AuthRequired)

	mine := protected.Group("/groups")
	mine.Post("/", middleware.RateLimit(s.redis, 5, time.Hour, "create_group"), s.CreateGroup)
	mine.Patch("/:id", s.UpdateGroup)
	mine.Delete("/:id", s.DeleteGroup)

	mine.Post("/:id/join", s.JoinGroup)
	mine.Post("/:id/leave", s.LeaveGroup)
	mine.Get("/:id/members", s.ListMembers)
	mine.Delete("/:id/members/:userId", s.RemoveMember)
	mine.Post("/:id/admins/:userId", s.PromoteMember)
	mine.Delete("/:id/admins/:userId", s.DemoteMember)
	mine.Post("/:id/invites/:userId", s.requireFlag(featureflags.GroupInvites), s.InviteMember)

	requests := mine.Group("/:id/join-requests", s.requireFlag(featureflags.GroupJoinRequests))
	requests.Post("/", s.RequestJoin)
	requests.Get("/", s.ListJoinRequests)
	requests.Post("/:requestId/accept", s.AcceptJoinRequest)
	requests.Post("/:requestId/decline", s.DeclineJoinRequest)

	mine.Get("/:id/messages", s.ListMessages)
	mine.Post("/:id/messages", middleware.RateLimit(s.redis, 30, time.Minute, "post_message"), s.PostMessage)

	admin := protected.Group("/admin", middleware.ModeratorRequired)
	admin.Get("/groups/pending", s.ListPendingGroups)
	admin.Post("/groups/:id/approve", s.ApproveGroup)
	admin.Post("/groups/:id/reject", s.RejectGroup)
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus == "unhealthy" {
		overallStatus = "degraded"
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

// NewApp builds the fiber app with the shared error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "Commons Groups API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, fe)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// Start builds the app, wires middleware and routes, and listens on the
// configured port.
func (s *Server) Start() error {
	s.app = NewApp()
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
