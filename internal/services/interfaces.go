package services

import (
	"context"
	"errors"

	"serverless-gin-api/internal/models"
)

// Pagination bounds for greeting listings
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ErrInvalidInput marks requests rejected before reaching storage
var ErrInvalidInput = errors.New("invalid input")

// GreetingService defines the business operations on greetings
type GreetingService interface {
	CreateGreeting(ctx context.Context, req *CreateGreetingRequest) (*models.Greeting, error)
	GetGreeting(ctx context.Context, id string) (*models.Greeting, error)
	ListGreetings(ctx context.Context, req *ListGreetingsRequest) (*GreetingList, error)
	DeleteGreeting(ctx context.Context, id string) error
}

// Request/Response types

type CreateGreetingRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Message string `json:"message,omitempty" validate:"max=500"`
}

type ListGreetingsRequest struct {
	Limit  int `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `form:"offset" validate:"min=0"`
}

type GreetingList struct {
	Items  []*models.Greeting `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
