package repositories

import (
	"errors"
	"fmt"
)

// Sentinel repository errors, matched with errors.Is
var (
	ErrNotFound       = errors.New("entity not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrInvalidID      = errors.New("invalid ID")
	ErrValidation     = errors.New("validation error")
)

// RepositoryError carries the failed operation and entity alongside the cause
type RepositoryError struct {
	Op      string
	Entity  string
	ID      string
	Err     error
	Message string
}

func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Entity, e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError wraps err with operation context
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Entity: entity, ID: id, Err: err}
}

// NotFoundError reports a missing entity
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// DuplicateError reports a unique key collision
func DuplicateError(entity, field, value string) *RepositoryError {
	return &RepositoryError{
		Op:      "create",
		Entity:  entity,
		Err:     ErrDuplicateEntry,
		Message: fmt.Sprintf("%s with %s '%s' already exists", entity, field, value),
	}
}

// ValidationError reports an entity rejected before reaching the database
func ValidationError(entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "validate",
		Entity:  entity,
		ID:      id,
		Err:     fmt.Errorf("%w: %v", ErrValidation, err),
		Message: fmt.Sprintf("validation failed for %s: %v", entity, err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if an error is a "duplicate entry" error
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID)
}
