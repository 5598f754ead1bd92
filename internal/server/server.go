// Package server contains the HTTP surface of the application.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventify/internal/cache"
	"eventify/internal/config"
	"eventify/internal/database"
	"eventify/internal/middleware"
	"eventify/internal/models"
	"eventify/internal/repository"
	"eventify/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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

	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	eventRepo      repository.EventRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	favoriteRepo   repository.FavoriteRepository
	attendanceRepo repository.AttendanceRepository
	followRepo     repository.FollowRepository

	eventService      *service.EventService
	commentService    *service.CommentService
	likeService       *service.LikeService
	favoriteService   *service.FavoriteService
	attendanceService *service.AttendanceService
	followService     *service.FollowService
	profileService    *service.ProfileService
	userService       *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config, store service.ObjectStorage) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient(), store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to inject an in-memory DB, a miniredis client, or a stub store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store service.ObjectStorage) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("eventify-api"),
		userRepo:       repository.NewUserRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		eventRepo:      repository.NewEventRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		attendanceRepo: repository.NewAttendanceRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}

	server.eventService = service.NewEventService(server.eventRepo, store)
	server.commentService = service.NewCommentService(server.commentRepo, server.eventRepo)
	server.likeService = service.NewLikeService(server.likeRepo, server.eventRepo)
	server.favoriteService = service.NewFavoriteService(server.favoriteRepo, server.eventRepo)
	server.attendanceService = service.NewAttendanceService(server.attendanceRepo, server.eventRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.profileService = service.NewProfileService(server.profileRepo, store)
	server.userService = service.NewUserService(server.userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", middleware.AuthRequired, s.Refresh)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Event routes. Specific /:id/:resource routes go BEFORE the generic /:id.
	events := api.Group("/events")
	events.Get("/", middleware.OptionalAuth, s.GetEvents)
	events.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_event"), s.CreateEvent)
	events.Get("/:id/comments", middleware.OptionalAuth, s.GetEventComments)
	events.Post("/:id/comments", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	events.Get("/:id/attendees", middleware.OptionalAuth, s.GetEventAttendees)
	events.Post("/:id/cover", middleware.AuthRequired, s.UploadEventCover)
	events.Get("/:id", middleware.OptionalAuth, s.GetEvent)
	events.Put("/:id", middleware.AuthRequired, s.UpdateEvent)
	events.Delete("/:id", middleware.AuthRequired, s.DeleteEvent)

	// Comment detail routes
	comments := api.Group("/comments")
	comments.Get("/:id", middleware.OptionalAuth, s.GetComment)
	comments.Put("/:id", middleware.AuthRequired, s.UpdateComment)
	comments.Delete("/:id", middleware.AuthRequired, s.DeleteComment)

	// Like routes
	likes := api.Group("/likes")
	likes.Get("/", s.GetLikes)
	likes.Post("/", middleware.AuthRequired, s.CreateLike)
	likes.Get("/:id", s.GetLike)
	likes.Delete("/:id", middleware.AuthRequired, s.DeleteLike)

	// Favorite routes
	favorites := api.Group("/favorites")
	favorites.Get("/", s.GetFavorites)
	favorites.Post("/", middleware.AuthRequired, s.CreateFavorite)
	favorites.Get("/:id", s.GetFavorite)
	favorites.Delete("/:id", middleware.AuthRequired, s.DeleteFavorite)

	// Attendance routes
	attendances := api.Group("/attendances")
	attendances.Get("/", middleware.OptionalAuth, s.GetAttendances)
	attendances.Post("/", middleware.AuthRequired, s.CreateAttendance)
	attendances.Get("/:id", s.GetAttendance)
	attendances.Delete("/:id", middleware.AuthRequired, s.DeleteAttendance)

	// Follow routes
	follows := api.Group("/follows")
	follows.Get("/", s.GetFollows)
	follows.Post("/", middleware.AuthRequired, s.CreateFollow)
	follows.Get("/:id", s.GetFollow)
	follows.Delete("/:id", middleware.AuthRequired, s.DeleteFollow)

	// Profile routes. Profiles are created with their user, never via POST.
	profiles := api.Group("/profiles")
	profiles.Get("/", middleware.OptionalAuth, s.GetProfiles)
	profiles.Post("/:id/avatar", middleware.AuthRequired, s.UploadProfileAvatar)
	profiles.Get("/:id", middleware.OptionalAuth, s.GetProfile)
	profiles.Put("/:id", middleware.AuthRequired, s.UpdateProfile)

	// User routes
	users := api.Group("/users", middleware.AuthRequired)
	users.Get("/me", s.GetMe)
	users.Delete("/me", s.DeleteMe)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays up without Redis; caching and revocation degrade.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
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

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Eventify API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
