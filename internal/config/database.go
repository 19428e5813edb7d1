package config

import (
	"fmt"
	"time"

	"serverless-gin-api/internal/database"

	"github.com/sirupsen/logrus"
)

// DefaultDatabasePath is the SQLite file used outside Lambda
const DefaultDatabasePath = "./data/app.db"

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}

	if c.MaxIdleConns < 1 {
		return fmt.Errorf("max idle connections must be at least 1")
	}

	if c.ConnMaxLifetime < time.Minute {
		return fmt.Errorf("connection max lifetime must be at least 1 minute")
	}

	return nil
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		DatabasePath:    c.Path,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		AutoMigrate:     c.AutoMigrate,
		Logger:          logger,
	}
}
