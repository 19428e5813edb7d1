package repositories

import (
	"context"

	"serverless-gin-api/internal/models"
)

// ListOptions bounds a list query
type ListOptions struct {
	Limit  int
	Offset int
}

// GreetingRepository persists greetings
type GreetingRepository interface {
	Create(ctx context.Context, greeting *models.Greeting) error
	GetByID(ctx context.Context, id string) (*models.Greeting, error)
	List(ctx context.Context, opts ListOptions) ([]*models.Greeting, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}
