package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a backing store is reachable and answering queries
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports process and database health
type HealthHandler struct {
	db             HealthChecker
	deploymentMode string
	logger         *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker, deploymentMode string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:             db,
		deploymentMode: deploymentMode,
		logger:         logger,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	DeploymentMode string `json:"deployment_mode"`
	Database       string `json:"database"`
}

// @Summary Health check
// @Description Reports service status and database reachability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:         "healthy",
		DeploymentMode: h.deploymentMode,
		Database:       "ok",
	}

	if err := h.db.HealthCheck(ctx); err != nil {
		h.logger.WithError(err).Warn("Database health check failed")
		response.Status = "unhealthy"
		response.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
