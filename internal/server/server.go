// Package server exposes the gallery API over HTTP and WebSocket.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "gallery/docs" // swagger docs
	"gallery/internal/auth"
	"gallery/internal/config"
	"gallery/internal/database"
	"gallery/internal/middleware"
	"gallery/internal/models"
	"gallery/internal/notifications"
	"gallery/internal/observability"
	"gallery/internal/repository"
	"gallery/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
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
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	tokens          *auth.TokenIssuer
	resolver        *auth.Resolver
	userRepo        repository.UserRepository
	photoRepo       repository.PhotoRepository
	interactionRepo repository.InteractionRepository

	notifier *notifications.Notifier
	hub      *notifications.Hub

	authService        *service.AuthService
	photoService       *service.PhotoService
	interactionService *service.InteractionService
	userService        *service.UserService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB and Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	s := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics(observability.ServiceName),
		tokens:          auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, nil),
		userRepo:        repository.NewUserRepository(db),
		photoRepo:       repository.NewPhotoRepository(db),
		interactionRepo: repository.NewInteractionRepository(db),
	}
	s.resolver = auth.NewResolver(s.tokens, s.userRepo)

	var notifier service.Notifier
	if redisClient != nil {
		s.notifier = notifications.NewNotifier(redisClient)
		s.hub = notifications.NewHub()
		notifier = s.notifier
	}

	s.authService = service.NewAuthService(s.userRepo, s.tokens)
	s.photoService = service.NewPhotoService(s.photoRepo, s.interactionRepo)
	s.interactionService = service.NewInteractionService(s.photoRepo, s.interactionRepo, notifier)
	s.userService = service.NewUserService(s.userRepo)

	return s, nil
}

// NewApp builds the fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Gallery API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return models.RespondWithError(c, fe.Code, &models.AppError{Code: httpCode(fe.Code), Message: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses
	// still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version, " + s.authHeader(),
		AllowCredentials: true,
		MaxAge:           86400,
	}))

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

	app.Use(middleware.Authenticate(middleware.AuthConfig{
		Resolver: s.resolver,
		Header:   s.config.AuthHeader,
		Scheme:   s.config.AuthScheme,
	}))
}

// SetupRoutes registers every endpoint.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Gallery Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	authRoutes.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authRoutes.Post("/refresh", s.Refresh)
	authRoutes.Post("/validate", s.ValidateToken)

	signedIn := middleware.RequireAuthenticated()

	users := api.Group("/users")
	users.Get("/me", signedIn, s.GetMe)
	users.Delete("/me", signedIn, s.DeleteMe)
	users.Get("/:id/photos", s.GetUserPhotos)

	me := api.Group("/me")
	me.Get("/likes", signedIn, s.GetMyLikes)
	me.Get("/favorites", signedIn, s.GetMyFavorites)

	// Interaction routes check existence before authentication, so they
	// do not sit behind signedIn.
	photos := api.Group("/photos")
	photos.Get("/", s.ListPhotos)
	photos.Post("/", signedIn, middleware.RateLimit(
		s.redis, 30, time.Minute, "create_photo"), s.CreatePhoto)
	photos.Get("/:id/likes", s.GetLikeCount)
	photos.Get("/:id/status", s.GetInteractionStatus)
	photos.Post("/:id/like", s.LikePhoto)
	photos.Delete("/:id/like", s.UnlikePhoto)
	photos.Post("/:id/favorite", s.FavoritePhoto)
	photos.Delete("/:id/favorite", s.UnfavoritePhoto)
	photos.Put("/:id/visibility", s.SetPhotoVisibility)
	photos.Get("/:id", s.GetPhoto)
	photos.Put("/:id", s.UpdatePhoto)
	photos.Delete("/:id", s.DeletePhoto)

	ws := api.Group("/ws")
	ws.Post("/ticket", signedIn, s.IssueWSTicket)
	ws.Get("/", s.WSTicketAuth(), signedIn, s.NotificationsWebSocket())
}

// LivenessCheck handles GET /health/live
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles GET /health/ready
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,checks=object}
// @Failure 503 {object} object{status=string,checks=object}
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: without it the API runs uncached and silent.
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
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

// Start builds the app, wires the notification hub and blocks serving HTTP.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				slog.Error("failed to start hub wiring", slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
			}
		}()
	}

	slog.Info("server starting", slog.String("port", s.config.Port), slog.String("env", s.config.Env))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests and releases every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			slog.Error("error shutting down hub", slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	slog.Info("server shutdown complete")
	return nil
}

func (s *Server) authHeader() string {
	if s.config.AuthHeader != "" {
		return s.config.AuthHeader
	}
	return fiber.HeaderAuthorization
}
