package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "serverless-gin-api/docs"
	"serverless-gin-api/internal/metrics"
	"serverless-gin-api/internal/middleware"
	"serverless-gin-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	GreetingService services.GreetingService
	// AuthService guards write routes when set
	AuthService    *middleware.AuthService
	Database       HealthChecker
	DeploymentMode string
	Logger         *logrus.Logger
}

// MiddlewareConfig holds the global middleware settings
type MiddlewareConfig struct {
	AllowedOrigins    []string
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
	Logger            *logrus.Logger
}

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	greetingHandler := NewGreetingHandler(config.GreetingService)
	healthHandler := NewHealthHandler(config.Database, config.DeploymentMode, config.Logger)

	router.GET("/hello", Hello)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		greetings := v1.Group("/greetings")
		{
			greetings.GET("", greetingHandler.ListGreetings)
			greetings.GET("/:id", greetingHandler.GetGreeting)

			writes := greetings.Group("")
			if config.AuthService != nil {
				writes.Use(middleware.Authentication(config.AuthService, config.Logger))
			}
			writes.POST("", greetingHandler.CreateGreeting)
			writes.DELETE("/:id", greetingHandler.DeleteGreeting)
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *MiddlewareConfig) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(config.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	router.Use(middleware.ContentTypeValidation("application/json"))
	router.Use(middleware.RateLimiter(config.RequestsPerSecond, config.Burst, config.Logger))
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler(config.Logger))
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if config.AuthService != nil {
		authHandler := NewAuthHandler(config.AuthService)
		router.POST("/dev/token", authHandler.DevToken)
	}
}
