package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hragentic/hr-gateway/docs"
	"github.com/hragentic/hr-gateway/internal/api/handler"
	"github.com/hragentic/hr-gateway/internal/api/middleware"
	"github.com/hragentic/hr-gateway/internal/core/service"
	"github.com/hragentic/hr-gateway/internal/infrastructure/config"
	mongoauth "github.com/hragentic/hr-gateway/internal/infrastructure/db/mongo"
	redisinfra "github.com/hragentic/hr-gateway/internal/infrastructure/db/redis"
	"github.com/hragentic/hr-gateway/internal/infrastructure/proxy"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	registry := cfg.Registry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: newRequestID,
	}))
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Dependencies ---
	authRepo := mongoauth.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)
	authGuard := middleware.Auth(authService)

	prober := proxy.NewHTTPProber()
	healthService := service.NewHealthService(registry, prober, cfg.ProbeTimeout, log)
	healthHandler := handler.NewHealthHandler(registry, healthService)

	limiter := redisinfra.NewFixedWindowLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max)
	relay := proxy.NewRelay(registry, cfg.ProxyTimeout, log)
	docsHandler := handler.NewDocsHandler()

	// --- Unlimited, unauthenticated surface ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/services", healthHandler.Services)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public API surface, rate limited except the docs manifest ---
	api := e.Group("/api", middleware.RateLimit(limiter, log, "/api/docs"))
	api.GET("/docs", docsHandler.Manifest)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/profile", authHandler.Profile, authGuard)
	api.PUT("/auth/profile", authHandler.UpdateProfile, authGuard)

	// --- Proxied domain peers, all behind the guard ---
	for _, entry := range registry.Entries() {
		api.Any("/"+entry.Name, relay.Handle, authGuard)
		api.Any("/"+entry.Name+"/*", relay.Handle, authGuard)
	}

	return e
}

// newRequestID generates correlation ids for requests that arrive without
// one. The same id travels on the outbound leg for cross-service tracing.
func newRequestID() string {
	return uuid.NewString()
}
