package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Field limits for greetings
const (
	MaxGreetingNameLength    = 100
	MaxGreetingMessageLength = 500
)

var validate = validator.New()

// Greeting is a stored greeting addressed to a name
type Greeting struct {
	ID        string    `json:"id" db:"id" validate:"required,uuid"`
	Name      string    `json:"name" db:"name" validate:"required,max=100"`
	Message   string    `json:"message" db:"message" validate:"required,max=500"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewGreeting creates a greeting with a generated ID. An empty message
// defaults to the standard salutation for the name.
func NewGreeting(name, message string) *Greeting {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if message == "" {
		message = Salutation(name)
	}

	return &Greeting{
		ID:        uuid.New().String(),
		Name:      name,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate validates the greeting data
func (g *Greeting) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("invalid greeting: %w", err)
	}
	return nil
}

// Salutation returns the plain-text greeting for name; an empty name greets the world
func Salutation(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "world"
	}
	return fmt.Sprintf("Hello %s!", name)
}
