package app

import (
	"context"
	"fmt"

	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/ports/secondary"
)

// UserService implements primary.UserService. Mutations are admin
// only.
type UserService struct {
	users    secondary.UserRepository
	identity secondary.IdentityProvider
	audit    secondary.AuditLog
}

// NewUserService creates a new user service.
func NewUserService(
	users secondary.UserRepository,
	identity secondary.IdentityProvider,
	audit secondary.AuditLog,
) *UserService {
	return &UserService{users: users, identity: identity, audit: audit}
}

// AddUser creates a user with the given roles and salary input.
func (s *UserService) AddUser(ctx context.Context, name string, roles role.Set, salary float64) error {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("user name must be set")
	}
	if len(roles) == 0 {
		return fmt.Errorf("a user needs at least one role")
	}

	if err := s.users.Create(ctx, &secondary.UserRecord{
		Name:   name,
		Roles:  roles.String(),
		Salary: salary,
	}); err != nil {
		return err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "user", EntityID: name, Actor: actor.Name,
		Action: secondary.AuditActionCreate,
		Field:  "roles", NewValue: roles.String(),
	})
	return nil
}

// GetUser retrieves a user by name.
func (s *UserService) GetUser(ctx context.Context, name string) (*primary.User, error) {
	record, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return userViewFromRecord(record)
}

// ListUsers lists all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*primary.User, error) {
	records, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*primary.User, 0, len(records))
	for _, record := range records {
		view, err := userViewFromRecord(record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// SetRoles replaces a user's role set.
func (s *UserService) SetRoles(ctx context.Context, name string, roles role.Set) error {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return fmt.Errorf("a user needs at least one role")
	}

	old, err := s.users.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.users.UpdateRoles(ctx, name, roles.String()); err != nil {
		return err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "user", EntityID: name, Actor: actor.Name,
		Action: secondary.AuditActionFieldChange,
		Field:  "roles", OldValue: old.Roles, NewValue: roles.String(),
	})
	return nil
}

// SetSalary sets a user's salary input for gp_minus_salary rules.
func (s *UserService) SetSalary(ctx context.Context, name string, salary float64) error {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if salary < 0 {
		return fmt.Errorf("salary must not be negative")
	}

	if err := s.users.UpdateSalary(ctx, name, salary); err != nil {
		return err
	}
	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "user", EntityID: name, Actor: actor.Name,
		Action: secondary.AuditActionFieldChange,
		Field:  "salary", NewValue: fmt.Sprintf("%.2f", salary),
	})
	return nil
}

func (s *UserService) requireAdmin(ctx context.Context) (secondary.Identity, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return secondary.Identity{}, err
	}
	if !user.Roles.IsAdmin() {
		return secondary.Identity{}, fmt.Errorf("managing users requires an administrator")
	}
	return user, nil
}

func (s *UserService) logAudit(ctx context.Context, entry secondary.AuditEntry) {
	_ = s.audit.Append(ctx, entry)
}

func userViewFromRecord(record *secondary.UserRecord) (*primary.User, error) {
	roles, err := role.Parse(record.Roles)
	if err != nil {
		return nil, fmt.Errorf("user %s has invalid roles: %w", record.Name, err)
	}
	return &primary.User{Name: record.Name, Roles: roles, Salary: record.Salary}, nil
}

// AuditService implements primary.AuditService.
type AuditService struct {
	audit secondary.AuditLog
}

// NewAuditService creates a new audit service.
func NewAuditService(audit secondary.AuditLog) *AuditService {
	return &AuditService{audit: audit}
}

// List returns audit entries, newest first.
func (s *AuditService) List(ctx context.Context, entity, entityID string, limit int) ([]primary.AuditEntryView, error) {
	entries, err := s.audit.List(ctx, entity, entityID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]primary.AuditEntryView, len(entries))
	for i, entry := range entries {
		views[i] = primary.AuditEntryView{
			At:       entry.At,
			Actor:    entry.Actor,
			Action:   entry.Action,
			Entity:   entry.Entity,
			EntityID: entry.EntityID,
			Field:    entry.Field,
			OldValue: entry.OldValue,
			NewValue: entry.NewValue,
		}
	}
	return views, nil
}
