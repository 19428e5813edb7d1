package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serverless-gin-api/internal/services"
)

// GreetingHandler handles greeting-related HTTP requests
type GreetingHandler struct {
	greetingService services.GreetingService
}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler(greetingService services.GreetingService) *GreetingHandler {
	return &GreetingHandler{
		greetingService: greetingService,
	}
}

// @Summary Create a greeting
// @Description Store a greeting for a name. The message defaults to "Hello <name>!".
// @Tags greetings
// @Accept json
// @Produce json
// @Param greeting body services.CreateGreetingRequest true "Greeting data"
// @Success 201 {object} models.Greeting
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/greetings [post]
func (h *GreetingHandler) CreateGreeting(c *gin.Context) {
	var req services.CreateGreetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	greeting, err := h.greetingService.CreateGreeting(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create greeting", err)
		return
	}

	c.JSON(http.StatusCreated, greeting)
}

// @Summary List greetings
// @Description Page through greetings, newest first
// @Tags greetings
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} services.GreetingList
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/greetings [get]
func (h *GreetingHandler) ListGreetings(c *gin.Context) {
	var req services.ListGreetingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, err := h.greetingService.ListGreetings(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to list greetings", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary Get a greeting
// @Description Get a greeting by ID
// @Tags greetings
// @Produce json
// @Param id path string true "Greeting ID"
// @Success 200 {object} models.Greeting
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/greetings/{id} [get]
func (h *GreetingHandler) GetGreeting(c *gin.Context) {
	greeting, err := h.greetingService.GetGreeting(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to get greeting", err)
		return
	}

	c.JSON(http.StatusOK, greeting)
}

// @Summary Delete a greeting
// @Description Delete a greeting by ID
// @Tags greetings
// @Param id path string true "Greeting ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/greetings/{id} [delete]
func (h *GreetingHandler) DeleteGreeting(c *gin.Context) {
	if err := h.greetingService.DeleteGreeting(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete greeting", err)
		return
	}

	c.Status(http.StatusNoContent)
}
