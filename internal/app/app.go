package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"serverless-gin-api/internal/config"
	"serverless-gin-api/internal/database"
	"serverless-gin-api/internal/handlers"
	"serverless-gin-api/internal/middleware"
	"serverless-gin-api/internal/repositories/sqlite"
	"serverless-gin-api/internal/services"
)

// App is a fully configured gin engine together with the resources it owns
type App struct {
	engine    *gin.Engine
	db        *database.ConnectionManager
	logger    *logrus.Logger
	closeOnce sync.Once
	closeErr  error
}

// New opens the database, runs migrations when enabled and builds the engine.
// On failure every resource acquired so far is released.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (_ *App, err error) {
	start := time.Now()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.NewConnectionManager(cfg.Database.ToConnectionConfig(logger))
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logger.WithError(closeErr).Warn("Failed to release database after construction error")
			}
		}
	}()

	engine := gin.New()
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
	}

	handlers.SetupMiddleware(engine, &handlers.MiddlewareConfig{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		MaxBodyBytes:      cfg.RateLimit.MaxBodyBytes,
		Logger:            logger,
	})

	routerConfig := &handlers.RouterConfig{
		GreetingService: services.NewGreetingService(sqlite.NewGreetingRepository(db.GetDB(), logger)),
		Database:        db,
		DeploymentMode:  cfg.DeploymentMode(),
		Logger:          logger,
	}
	if cfg.JWT.Enabled() {
		routerConfig.AuthService = middleware.NewAuthService(&middleware.AuthConfig{
			JWTSecret:     cfg.JWT.Secret,
			TokenDuration: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
			Issuer:        cfg.JWT.Issuer,
		})
	}

	handlers.SetupRoutes(engine, routerConfig)
	if cfg.IsDevelopment() && !cfg.IsServerlessMode() {
		handlers.SetupDevelopmentRoutes(engine, routerConfig)
	}

	logger.WithFields(logrus.Fields{
		"deployment_mode": cfg.DeploymentMode(),
		"environment":     cfg.Environment,
		"auth_enabled":    cfg.JWT.Enabled(),
		"duration_ms":     time.Since(start).Milliseconds(),
	}).Info("Application initialized")

	return &App{
		engine: engine,
		db:     db,
		logger: logger,
	}, nil
}

// Engine returns the gin engine serving every route
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// ServeHTTP lets the App be used directly as an http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.engine.ServeHTTP(w, r)
}

// ConcurrencySafe reports that requests may be dispatched in parallel.
// gin engines and database/sql pools are safe for concurrent use.
func (a *App) ConcurrencySafe() bool {
	return true
}

// DB returns the underlying database handle
func (a *App) DB() *sql.DB {
	return a.db.GetDB()
}

// Close releases the database. It is safe to call more than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.db.Close()
	})
	return a.closeErr
}
