package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	DatabasePath    string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	Logger          *logrus.Logger
}

// ConnectionManager manages the application's database connection
type ConnectionManager struct {
	mu     sync.RWMutex
	config *ConnectionConfig
	db     *sql.DB
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(config *ConnectionConfig) *ConnectionManager {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &ConnectionManager{
		config: config,
	}
}

// Connect opens the database, verifies it and runs migrations when enabled.
// On failure nothing stays open and Connect may be called again.
func (cm *ConnectionManager) Connect(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.db != nil {
		return fmt.Errorf("database connection already established")
	}

	dsn, err := cm.dsn()
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cm.config.MaxOpenConns)
	db.SetMaxIdleConns(cm.config.MaxIdleConns)
	if cm.config.DatabasePath == MemoryPath {
		// recycling the only connection would discard the in-memory schema
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetConnMaxLifetime(cm.config.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if cm.config.AutoMigrate {
		if err := NewMigrationManager(db, cm.config.Logger).RunMigrations(); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	cm.db = db
	cm.config.Logger.WithField("db_path", cm.config.DatabasePath).Info("Database connection established")
	return nil
}

func (cm *ConnectionManager) dsn() (string, error) {
	if cm.config.DatabasePath == MemoryPath {
		return "file::memory:?_foreign_keys=on", nil
	}

	dbPath, err := filepath.Abs(cm.config.DatabasePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", nil
}

// GetDB returns the database connection
func (cm *ConnectionManager) GetDB() *sql.DB {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.db
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.db == nil {
		return nil
	}

	err := cm.db.Close()
	cm.db = nil

	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	cm.config.Logger.Info("Database connection closed")
	return nil
}

// Ping tests the database connection
func (cm *ConnectionManager) Ping(ctx context.Context) error {
	db := cm.GetDB()
	if db == nil {
		return fmt.Errorf("database connection not established")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// GetMigrationManager returns a migration manager for this connection
func (cm *ConnectionManager) GetMigrationManager() *MigrationManager {
	db := cm.GetDB()
	if db == nil {
		return nil
	}

	return NewMigrationManager(db, cm.config.Logger)
}

// HealthCheck pings the database and runs a trivial query against it
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	db := cm.GetDB()
	if db == nil {
		return fmt.Errorf("database connection not established")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return nil
}
