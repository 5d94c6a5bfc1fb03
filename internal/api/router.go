package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ValenCardozo/expert-pancake/internal/api/handler"
	"github.com/ValenCardozo/expert-pancake/internal/api/middleware"
	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
	"github.com/ValenCardozo/expert-pancake/internal/core/service"
	mongodb "github.com/ValenCardozo/expert-pancake/internal/infrastructure/db/mongo"
	redisdb "github.com/ValenCardozo/expert-pancake/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs wired from main.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Issuer    *token.Issuer
	Validator *token.Validator
	Mail      ports.MailDispatcher
	ResetTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("admin"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	productRepo := mongodb.NewProductRepository(deps.Mongo)
	resetStore := redisdb.NewResetStore(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Issuer, resetStore, deps.Mail, deps.ResetTTL, deps.Log)
	userService := service.NewUserService(userRepo, deps.Log)
	productService := service.NewProductService(productRepo, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	authRequired := middleware.Auth(deps.Validator)
	publicOnly := middleware.PublicOnly(deps.Validator)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes (public-only: an established session is sent home) ---
	e.POST("/auth/register", authHandler.Register, publicOnly)
	e.POST("/auth/login", authHandler.Login, publicOnly)
	e.POST("/auth/forgotPassword", authHandler.ForgotPassword)
	e.POST("/auth/resetPassword", authHandler.ResetPassword)

	// --- Products ---
	products := e.Group("/v1/products", authRequired)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Users (management is admin territory; listing is not) ---
	users := e.Group("/v1/users", authRequired)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.PATCH("/:id/role", userHandler.UpdateRole, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
