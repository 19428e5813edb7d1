package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"serverless-gin-api/internal/middleware"
	"serverless-gin-api/internal/repositories"
	"serverless-gin-api/internal/services"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse = middleware.ErrorResponse

// statusForError maps service and repository errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), repositories.IsValidation(err):
		return http.StatusBadRequest
	case repositories.IsNotFound(err):
		return http.StatusNotFound
	case repositories.IsDuplicate(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Internal errors are attached to
// the context for the error handler to log and are not echoed to the client.
func respondError(c *gin.Context, title string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, middleware.NewErrorResponse(c, title, "An internal error occurred"))
		return
	}

	response := middleware.NewErrorResponse(c, title, err.Error())
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		response.ValidationErrors = middleware.FormatValidationErrors(validationErrors)
	}
	c.JSON(status, response)
}

// respondBindError reports a malformed request body or query
func respondBindError(c *gin.Context, err error) {
	response := middleware.NewErrorResponse(c, "Invalid request", err.Error())
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		response.ValidationErrors = middleware.FormatValidationErrors(validationErrors)
	}
	c.JSON(http.StatusBadRequest, response)
}
