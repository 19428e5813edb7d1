package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Context keys set by Authentication
const (
	SubjectKey = "subject"
	ClaimsKey  = "claims"
)

// Claims represents JWT claims
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// AuthService issues and validates HS256 bearer tokens
type AuthService struct {
	config *AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) *AuthService {
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "serverless-gin-api"
	}
	return &AuthService{config: config}
}

// TokenDuration reports how long issued tokens stay valid
func (a *AuthService) TokenDuration() time.Duration {
	return a.config.TokenDuration
}

// GenerateToken generates a JWT token for a subject
func (a *AuthService) GenerateToken(subject string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	}, jwt.WithIssuer(a.config.Issuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Authentication middleware that validates bearer tokens
func Authentication(authService *AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(c,
				"Unauthorized",
				"Authorization header is required",
			))
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(c,
				"Unauthorized",
				"Invalid authorization header format. Expected: Bearer <token>",
			))
			return
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(tokenParts[1]))
		if err != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"error":      err.Error(),
				"path":       c.Request.URL.Path,
			}).Warn("Token validation failed")

			c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(c,
				"Unauthorized",
				"Invalid or expired token",
			))
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
