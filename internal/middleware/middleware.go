package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"serverless-gin-api/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// CORS middleware for handling Cross-Origin Resource Sharing.
// A "*" entry allows every origin without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ErrorHandler renders errors attached with c.Error as an ErrorResponse
// when the handler did not write a response itself.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := c.GetString(RequestIDKey)

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
			"error_type": strconv.FormatUint(uint64(err.Type), 10),
		}).Error("Request error")

		if c.Writer.Written() {
			return
		}

		switch err.Type {
		case gin.ErrorTypeBind:
			var validationErrors validator.ValidationErrors
			if errors.As(err.Err, &validationErrors) {
				response := NewErrorResponse(c, "Validation failed", "Request validation failed")
				response.ValidationErrors = FormatValidationErrors(validationErrors)
				c.JSON(http.StatusBadRequest, response)
				return
			}
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Invalid request format", err.Error()))

		case gin.ErrorTypePublic:
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Request failed", err.Error()))

		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Internal server error", "An internal error occurred"))
		}
	}
}

// Metrics records request counts, latency and in-flight requests per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(
			strings.ToUpper(c.Request.Method),
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
