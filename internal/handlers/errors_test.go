package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"serverless-gin-api/internal/repositories"
	"serverless-gin-api/internal/services"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: name is required", services.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "repository validation", err: repositories.ValidationError("greeting", "x", errors.New("bad")), want: http.StatusBadRequest},
		{name: "not found", err: repositories.NotFoundError("greeting", "x"), want: http.StatusNotFound},
		{name: "duplicate", err: repositories.DuplicateError("greeting", "id", "x"), want: http.StatusConflict},
		{name: "unknown", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/greetings", nil)

	respondError(c, "Failed to list greetings", errors.New("disk on fire"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want 500", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Message == "disk on fire" {
		t.Error("Internal error text must not reach the client")
	}
	if len(c.Errors) != 1 {
		t.Errorf("Expected the cause attached to the context, got %d errors", len(c.Errors))
	}
}
