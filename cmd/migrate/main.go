package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"serverless-gin-api/internal/config"
	"serverless-gin-api/internal/database"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		dbPath  = flag.String("db", config.DefaultDatabasePath, "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	cm := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath: absDBPath,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Logger:       logger,
	})
	if err := cm.Connect(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer cm.Close()

	if err := run(cm.GetMigrationManager(), *action); err != nil {
		cm.Close()
		logger.WithError(err).WithField("action", *action).Fatal("Migration tool failed")
	}

	logger.Info("Migration tool completed successfully")
}

func run(mm *database.MigrationManager, action string) error {
	switch action {
	case "up":
		return mm.RunMigrations()
	case "down":
		return mm.RollbackMigration()
	case "status":
		status, err := mm.GetMigrationStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Migration Status:\n")
		fmt.Printf("  Version: %d\n", status.Version)
		fmt.Printf("  Applied: %t\n", status.Applied)
		fmt.Printf("  Dirty: %t\n", status.Dirty)
		return nil
	case "validate":
		if err := mm.ValidateSchema(); err != nil {
			return err
		}
		fmt.Println("Schema validation passed successfully")
		return nil
	default:
		return fmt.Errorf("unknown action %q: use up, down, status, validate", action)
	}
}
