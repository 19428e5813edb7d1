package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"serverless-gin-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BaseRepository provides query logging and error wrapping shared by SQLite repositories
type BaseRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB, table string, logger *logrus.Logger) *BaseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (r *BaseRepository) logQuery(operation string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"duration":  duration,
	}

	if err != nil && err != sql.ErrNoRows {
		r.logger.WithFields(fields).WithError(err).Error("Query failed")
		return
	}
	r.logger.WithFields(fields).Debug("Query executed")
}

func (r *BaseRepository) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logQuery(operation, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return rows, nil
}

func (r *BaseRepository) executeQueryRow(ctx context.Context, operation, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logQuery(operation, time.Since(start), row.Err())
	return row
}

func (r *BaseRepository) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logQuery(operation, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return result, nil
}

// checkRowsAffected turns a zero-row write into a not-found error
func (r *BaseRepository) checkRowsAffected(result sql.Result, operation, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, r.table, id, err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(r.table, id)
	}

	return nil
}

func (r *BaseRepository) validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return repositories.NewRepositoryError("validate", r.table, id, repositories.ErrInvalidID)
	}
	return nil
}
