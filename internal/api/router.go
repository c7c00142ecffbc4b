package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siteflow/quoting-api/internal/api/handler"
	"github.com/siteflow/quoting-api/internal/api/middleware"
	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/service"
	"github.com/siteflow/quoting-api/internal/infrastructure/config"
	mongodb "github.com/siteflow/quoting-api/internal/infrastructure/db/mongo"
	redisdb "github.com/siteflow/quoting-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("10K"))
	e.Use(echoprometheus.NewMiddleware("siteflow"))
	e.Use(middleware.SanitizeBody())

	limiter := redisdb.NewRateLimiter(rdb)
	e.Use(middleware.RateLimit(limiter, "general", cfg.RateLimit.General, cfg.RateLimit.Window, log))
	authLimit := middleware.RateLimit(limiter, "auth", cfg.RateLimit.Auth, cfg.RateLimit.Window, log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	requestService := service.NewRequestService(requestRepo, userRepo, cfg.MaxAmount, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService)
	requestHandler := handler.NewRequestHandler(requestService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth", authLimit)
	auth.POST("/login", authHandler.Login)
	auth.POST("/setup", authHandler.Setup)

	// --- Profile routes ---
	me := e.Group("/api/me", authRequired)
	me.GET("", profileHandler.Me)
	me.PUT("/payout-link", profileHandler.SetPayoutLink, adminOnly)

	// --- Request routes ---
	requests := e.Group("/api/requests", authRequired)
	requests.POST("", requestHandler.Submit)
	requests.GET("/mine", requestHandler.ListMine)
	requests.GET("", requestHandler.ListAll, adminOnly)
	requests.POST("/:id/quote", requestHandler.Quote, adminOnly)
	requests.PATCH("/:id/status", requestHandler.UpdateStatus, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
