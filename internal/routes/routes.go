// Package routes defines the API routing configuration.
// It builds the services from their dependencies, sets up all HTTP
// routes and their handlers, and applies the shared middleware.
package routes

import (
	"strings"
	"time"

	"otpauth/internal/handlers"
	"otpauth/internal/metrics"
	"otpauth/internal/middleware"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
	"otpauth/internal/services/auth"
	"otpauth/internal/services/notification"
	"otpauth/internal/services/otp"
	"otpauth/internal/services/otpdata"
	"otpauth/internal/services/profile"
	"otpauth/internal/services/session"
	"otpauth/internal/services/tempphone"
	"otpauth/internal/services/user"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies is everything the HTTP surface is built from.
// Cache, CacheService, Locker, Sender and Registry are optional.
type Dependencies struct {
	DB        *gorm.DB
	Signer    utils.TokenSigner
	Generator otp.Generator

	// CacheService is the Redis-backed cache, nil when Redis is off.
	CacheService *cache.CacheService
	Locker       cache.Locker
	Sender       notification.Sender

	// Registry receives the service metrics and is served at /metrics.
	Registry *prometheus.Registry

	Logger            *zap.Logger
	AllowedOrigins    []string
	MaxActiveSessions int
	Development       bool
	ExposeOTP         bool
	AccessLog         bool
}

// NewApp returns a fiber app with middleware and every route mounted.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "otpauth",
		ErrorHandler: handlers.ErrorHandler(deps.Logger, deps.Development),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(deps.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, x-language",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: len(deps.AllowedOrigins) > 0,
	}))
	app.Use(middleware.Language())

	SetupRoutes(app, deps)
	return app
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if deps.Registry != nil {
		prom := metrics.New(deps.Registry)
		recorder = prom
		app.Use(middleware.Metrics(prom))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	var userCache cache.UserCache = cache.NopUserCache{}
	if deps.CacheService != nil {
		userCache = deps.CacheService
	}

	store := repositories.NewStore(deps.DB)

	// Initialize services in correct order
	sessionService := session.NewService(store, deps.MaxActiveSessions, recorder, log)
	authService := auth.NewService(auth.Deps{
		Store:     store,
		Sessions:  sessionService,
		Generator: deps.Generator,
		Signer:    deps.Signer,
		Locker:    deps.Locker,
		Cache:     userCache,
		Sender:    deps.Sender,
		Metrics:   recorder,
		Logger:    log,
	})
	profileService := profile.NewService(store, deps.Generator, userCache, deps.Sender, recorder, log)
	userService := user.NewService(store, deps.Generator, userCache, log)
	otpDataService := otpdata.NewService(store)
	tempPhoneService := tempphone.NewService(store)

	authHandler := handlers.NewAuthHandler(authService, deps.ExposeOTP)
	profileHandler := handlers.NewProfileHandler(profileService, deps.ExposeOTP)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	otpDataHandler := handlers.NewOtpDataHandler(otpDataService)
	tempPhoneHandler := handlers.NewTempPhoneHandler(tempPhoneService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.CacheService)
	authMiddleware := middleware.NewAuthMiddleware(deps.Signer, log)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
	}))

	// Public auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/send-otp", authHandler.SendOTP)
	authRoutes.Post("/verify-otp", authHandler.VerifyOTP)
	authRoutes.Put("/update-fcm", authMiddleware.Handler, authHandler.UpdateFcm)
	authRoutes.Post("/logout", authMiddleware.Handler, authHandler.Logout)

	// Profile routes
	profileRoutes := api.Group("/profile", authMiddleware.Handler)
	profileRoutes.Get("/", profileHandler.GetProfile)
	profileRoutes.Post("/change-phone", profileHandler.ChangePhone)
	profileRoutes.Post("/verify-phone", profileHandler.VerifyPhone)

	// Administrative routes
	users := api.Group("/users", authMiddleware.Handler)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	sessions := api.Group("/user-sessions", authMiddleware.Handler)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/user/:userId", sessionHandler.ListByUser)
	sessions.Put("/user/:userId", sessionHandler.UpdateByUser)
	sessions.Delete("/user/:userId", sessionHandler.DeleteByUser)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id", sessionHandler.Update)
	sessions.Delete("/:id", sessionHandler.Delete)

	otpData := api.Group("/otp-data", authMiddleware.Handler)
	otpData.Post("/", otpDataHandler.Create)
	otpData.Get("/", otpDataHandler.List)
	otpData.Get("/user/:userId", otpDataHandler.GetByUser)
	otpData.Put("/user/:userId", otpDataHandler.UpdateByUser)
	otpData.Delete("/user/:userId", otpDataHandler.DeleteByUser)
	otpData.Get("/:id", otpDataHandler.Get)
	otpData.Put("/:id", otpDataHandler.Update)
	otpData.Delete("/:id", otpDataHandler.Delete)

	tempPhones := api.Group("/temp-phones", authMiddleware.Handler)
	tempPhones.Post("/", tempPhoneHandler.Create)
	tempPhones.Post("/verify", tempPhoneHandler.Verify)
	tempPhones.Get("/", tempPhoneHandler.List)
	tempPhones.Get("/phone/:phNo", tempPhoneHandler.GetByPhone)
	tempPhones.Get("/user/:userId", tempPhoneHandler.GetByUser)
	tempPhones.Put("/user/:userId", tempPhoneHandler.Update)
	tempPhones.Delete("/user/:userId", tempPhoneHandler.Delete)

	app.Get("/cache/stats", healthHandler.CacheStats)
}
