package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/freightdesk/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	if user.Name == "" {
		return fmt.Errorf("user name must be set")
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, roles, salary) VALUES (?, ?, ?)",
		user.Name, user.Roles, user.Salary)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByName retrieves a user by name.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*secondary.UserRecord, error) {
	var (
		record    secondary.UserRecord
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT name, roles, salary, created_at FROM users WHERE name = ?", name,
	).Scan(&record.Name, &record.Roles, &record.Salary, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return &record, nil
}

// List retrieves all users ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, roles, salary, created_at FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var records []*secondary.UserRecord
	for rows.Next() {
		var (
			record    secondary.UserRecord
			createdAt time.Time
		)
		if err := rows.Scan(&record.Name, &record.Roles, &record.Salary, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, &record)
	}
	return records, rows.Err()
}

// UpdateRoles replaces a user's role set.
func (r *UserRepository) UpdateRoles(ctx context.Context, name, roles string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET roles = ? WHERE name = ?", roles, name)
	if err != nil {
		return fmt.Errorf("failed to update roles: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("user %s not found", name)
	}
	return nil
}

// UpdateSalary sets a user's salary input.
func (r *UserRepository) UpdateSalary(ctx context.Context, name string, salary float64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET salary = ? WHERE name = ?", salary, name)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("user %s not found", name)
	}
	return nil
}
