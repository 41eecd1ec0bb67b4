// Package router wires the HTTP routes and middleware chain.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/smartauto/backend/internal/infrastructure/auth"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"github.com/smartauto/backend/internal/infrastructure/logger"
	"github.com/smartauto/backend/internal/infrastructure/telemetry"
	"github.com/smartauto/backend/internal/interfaces/http/handler"
	"github.com/smartauto/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config carries everything the router needs to assemble the HTTP surface
type Config struct {
	HTTPConfig config.HTTPConfig

	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	MeterProvider  *telemetry.MeterProvider
	TracingEnabled bool
	ServiceName    string
	Logger         *zap.Logger

	SystemHandler    *handler.SystemHandler
	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	ComplaintHandler *handler.ComplaintHandler
	ReviewHandler    *handler.ReviewHandler
	RelayHandler     *handler.RelayHandler
	OwnerHandler     *handler.OwnerHandler
}

// Setup builds the gin engine with the full middleware chain and routes.
// Middleware order: request ID first so everything downstream can log it,
// then recovery, tracing, metrics, security headers, CORS, and body limit.
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled))
	engine.Use(middleware.HTTPMetrics(cfg.MeterProvider))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTPConfig.MaxBodySize))

	// The relay answers its own preflight with the legacy empty-success
	// body, so the allowlist CORS middleware is scoped to the other groups
	// instead of the whole engine.
	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTPConfig.CORSAllowOrigins,
		AllowMethods:  cfg.HTTPConfig.CORSAllowMethods,
		AllowHeaders:  cfg.HTTPConfig.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
	})

	engine.GET("/health", cors, cfg.SystemHandler.Health)

	api := engine.Group("/api/v1")

	registerAuthRoutes(api, cfg, cors)
	registerShopRoutes(api, cfg, cors)
	registerRelayRoutes(api, cfg)
	registerOwnerRoutes(api, cfg, cors)

	return engine
}

func authMiddleware(cfg Config) gin.HandlerFunc {
	return middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		Logger:         cfg.Logger,
	})
}

func registerAuthRoutes(api *gin.RouterGroup, cfg Config, cors gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	authGroup.Use(cors)

	// Credential endpoints get their own tighter rate limit
	if cfg.HTTPConfig.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTPConfig.RateLimitRequests, cfg.HTTPConfig.RateLimitWindow)
		authGroup.Use(middleware.RateLimit(limiter))
	}

	authGroup.POST("/register", cfg.AuthHandler.Register)
	authGroup.POST("/login", cfg.AuthHandler.Login)
	authGroup.POST("/refresh", cfg.AuthHandler.RefreshToken)

	authed := authGroup.Group("")
	authed.Use(authMiddleware(cfg))
	authed.POST("/logout", cfg.AuthHandler.Logout)
	authed.GET("/me", cfg.AuthHandler.Me)
	authed.POST("/change-password", cfg.AuthHandler.ChangePassword)
}

func registerShopRoutes(api *gin.RouterGroup, cfg Config, cors gin.HandlerFunc) {
	shop := api.Group("/shop")
	shop.Use(cors)

	shop.GET("/products", cfg.ProductHandler.ListProducts)
	shop.GET("/products/:id", cfg.ProductHandler.GetProduct)
	shop.GET("/reviews", cfg.ReviewHandler.RecentReviews)
	shop.GET("/products/:id/reviews", cfg.ReviewHandler.ProductReviews)

	authed := shop.Group("")
	authed.Use(authMiddleware(cfg))
	authed.POST("/orders", cfg.OrderHandler.SubmitOrder)
	authed.GET("/orders", cfg.OrderHandler.ListMyOrders)
	authed.POST("/complaints", cfg.ComplaintHandler.SubmitComplaint)
	authed.GET("/complaints", cfg.ComplaintHandler.ListMyComplaints)
	authed.POST("/reviews", cfg.ReviewHandler.SubmitReview)
}

// registerRelayRoutes keeps the relay outside the standard JWT middleware
// so it can answer with its legacy envelope and wildcard CORS.
func registerRelayRoutes(api *gin.RouterGroup, cfg Config) {
	relay := api.Group("/relay")
	relay.Use(cfg.RelayHandler.CORS())
	relay.OPTIONS("", cfg.RelayHandler.Options)
	relay.POST("", cfg.RelayHandler.Relay)
}

func registerOwnerRoutes(api *gin.RouterGroup, cfg Config, cors gin.HandlerFunc) {
	owner := api.Group("/owner")
	owner.Use(cors)
	owner.Use(authMiddleware(cfg))
	owner.Use(middleware.RequireOwner(cfg.Logger))

	owner.GET("/data", cfg.OwnerHandler.Data)
	owner.GET("/dashboard", cfg.OwnerHandler.Dashboard)
	owner.GET("/orders", cfg.OwnerHandler.ListOrders)
	owner.PUT("/orders/:id/status", cfg.OwnerHandler.UpdateOrderStatus)
	owner.GET("/complaints", cfg.OwnerHandler.ListComplaints)
	owner.POST("/complaints/:id/resolve", cfg.OwnerHandler.ResolveComplaint)
	owner.GET("/export/orders.csv", cfg.OwnerHandler.ExportOrdersCSV)
	owner.GET("/export/complaints.csv", cfg.OwnerHandler.ExportComplaintsCSV)
	owner.GET("/export/customers.csv", cfg.OwnerHandler.ExportCustomersCSV)
	owner.GET("/export/backup.json", cfg.OwnerHandler.ExportBackupJSON)
	owner.POST("/backup", cfg.OwnerHandler.Backup)
}
