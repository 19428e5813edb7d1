package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"serverless-gin-api/internal/models"
	"serverless-gin-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const greetingColumns = "id, name, message, created_at"

// GreetingRepository implements the GreetingRepository interface for SQLite
type GreetingRepository struct {
	*BaseRepository
}

// NewGreetingRepository creates a new SQLite greeting repository
func NewGreetingRepository(db *sql.DB, logger *logrus.Logger) repositories.GreetingRepository {
	return &GreetingRepository{
		BaseRepository: NewBaseRepository(db, "greetings", logger),
	}
}

// Create stores a new greeting
func (r *GreetingRepository) Create(ctx context.Context, greeting *models.Greeting) error {
	if err := greeting.Validate(); err != nil {
		return repositories.ValidationError("greeting", greeting.ID, err)
	}

	query := `INSERT INTO greetings (` + greetingColumns + `) VALUES (?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		greeting.ID,
		greeting.Name,
		greeting.Message,
		greeting.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repositories.DuplicateError("greeting", "id", greeting.ID)
		}
		return err
	}

	return nil
}

// GetByID retrieves a greeting by ID
func (r *GreetingRepository) GetByID(ctx context.Context, id string) (*models.Greeting, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `SELECT ` + greetingColumns + ` FROM greetings WHERE id = ?`
	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	greeting, err := scanGreeting(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("greeting", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "greeting", id, err)
	}

	return greeting, nil
}

// List returns greetings newest first
func (r *GreetingRepository) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Greeting, error) {
	query := `SELECT ` + greetingColumns + ` FROM greetings ORDER BY created_at DESC, id ASC`

	var args []interface{}
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.executeQuery(ctx, "list", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	greetings := make([]*models.Greeting, 0)
	for rows.Next() {
		greeting, err := scanGreeting(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "greeting", "", err)
		}
		greetings = append(greetings, greeting)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "greeting", "", err)
	}

	return greetings, nil
}

// Count returns the number of stored greetings
func (r *GreetingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.executeQueryRow(ctx, "count", "SELECT COUNT(*) FROM greetings")
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "greeting", "", err)
	}
	return count, nil
}

// Delete deletes a greeting by ID
func (r *GreetingRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "delete", "DELETE FROM greetings WHERE id = ?", id)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGreeting(row rowScanner) (*models.Greeting, error) {
	greeting := &models.Greeting{}
	err := row.Scan(
		&greeting.ID,
		&greeting.Name,
		&greeting.Message,
		&greeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	greeting.CreatedAt = greeting.CreatedAt.UTC()
	return greeting, nil
}
