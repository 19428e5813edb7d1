package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"serverless-gin-api/internal/middleware"
)

// demoSubject owns tokens issued by the development token endpoint
const demoSubject = "demo-user"

// AuthHandler issues development tokens
type AuthHandler struct {
	authService *middleware.AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *middleware.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// TokenResponse represents an issued token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary Issue a demo token
// @Description Development only. Returns a bearer token accepted by the write routes.
// @Tags auth
// @Produce json
// @Success 200 {object} TokenResponse
// @Failure 500 {object} ErrorResponse
// @Router /dev/token [post]
func (h *AuthHandler) DevToken(c *gin.Context) {
	token, err := h.authService.GenerateToken(demoSubject, []string{"writer"})
	if err != nil {
		respondError(c, "Failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(h.authService.TokenDuration()).UTC(),
	})
}
