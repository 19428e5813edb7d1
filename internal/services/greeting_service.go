package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"serverless-gin-api/internal/models"
	"serverless-gin-api/internal/repositories"
)

// greetingService implements the GreetingService interface
type greetingService struct {
	greetingRepo repositories.GreetingRepository
	validator    *validator.Validate
}

// NewGreetingService creates a new greeting service instance
func NewGreetingService(greetingRepo repositories.GreetingRepository) GreetingService {
	return &greetingService{
		greetingRepo: greetingRepo,
		validator:    validator.New(),
	}
}

// CreateGreeting validates and stores a new greeting
func (s *greetingService) CreateGreeting(ctx context.Context, req *CreateGreetingRequest) (*models.Greeting, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create greeting request cannot be nil", ErrInvalidInput)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	greeting := models.NewGreeting(req.Name, req.Message)
	if err := s.greetingRepo.Create(ctx, greeting); err != nil {
		return nil, fmt.Errorf("failed to create greeting: %w", err)
	}

	return greeting, nil
}

// GetGreeting retrieves a greeting by ID
func (s *greetingService) GetGreeting(ctx context.Context, id string) (*models.Greeting, error) {
	if err := validateGreetingID(id); err != nil {
		return nil, err
	}

	greeting, err := s.greetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get greeting: %w", err)
	}

	return greeting, nil
}

// ListGreetings returns one page of greetings, newest first, with the total count
func (s *greetingService) ListGreetings(ctx context.Context, req *ListGreetingsRequest) (*GreetingList, error) {
	if req == nil {
		req = &ListGreetingsRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	items, err := s.greetingRepo.List(ctx, repositories.ListOptions{Limit: limit, Offset: req.Offset})
	if err != nil {
		return nil, fmt.Errorf("failed to list greetings: %w", err)
	}

	total, err := s.greetingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count greetings: %w", err)
	}

	return &GreetingList{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

// DeleteGreeting removes a greeting by ID
func (s *greetingService) DeleteGreeting(ctx context.Context, id string) error {
	if err := validateGreetingID(id); err != nil {
		return err
	}

	if err := s.greetingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete greeting: %w", err)
	}

	return nil
}

func validateGreetingID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: greeting ID cannot be empty", ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid greeting ID format: %s", ErrInvalidInput, id)
	}
	return nil
}
