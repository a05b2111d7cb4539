package primary

import (
	"context"

	"github.com/example/freightdesk/internal/core/role"
)

// UserService defines the primary port for user management. Mutations
// are admin only; reads are open.
type UserService interface {
	// AddUser creates a user with the given roles and salary input.
	AddUser(ctx context.Context, name string, roles role.Set, salary float64) error

	// GetUser retrieves a user by name.
	GetUser(ctx context.Context, name string) (*User, error)

	// ListUsers lists all users.
	ListUsers(ctx context.Context) ([]*User, error)

	// SetRoles replaces a user's role set.
	SetRoles(ctx context.Context, name string, roles role.Set) error

	// SetSalary sets a user's salary input for gp_minus_salary rules.
	SetSalary(ctx context.Context, name string, salary float64) error
}

// User is the presenter-facing view of a user.
type User struct {
	Name   string
	Roles  role.Set
	Salary float64
}

// AuditService exposes the audit trail for inspection.
type AuditService interface {
	// List returns audit entries, newest first. entityID "" lists
	// across all records.
	List(ctx context.Context, entity, entityID string, limit int) ([]AuditEntryView, error)
}

// AuditEntryView is one recorded mutation.
type AuditEntryView struct {
	At       string
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Field    string
	OldValue string
	NewValue string
}
