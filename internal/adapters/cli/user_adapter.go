package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/ports/primary"
)

// UserAdapter translates user management CLI operations to UserService
// calls.
type UserAdapter struct {
	service primary.UserService
	out     io.Writer
}

// NewUserAdapter creates a new UserAdapter.
func NewUserAdapter(service primary.UserService, out io.Writer) *UserAdapter {
	return &UserAdapter{service: service, out: out}
}

// Add creates a user.
func (a *UserAdapter) Add(ctx context.Context, name string, roles role.Set, salary float64) error {
	if err := a.service.AddUser(ctx, name, roles, salary); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ User %s added with roles %s\n", name, roles)
	return nil
}

// List lists all users.
func (a *UserAdapter) List(ctx context.Context) error {
	users, err := a.service.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found. Seed the database or add one:")
		fmt.Fprintln(a.out, "  freightdesk user add priya --roles sales")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tROLES\tSALARY")
	fmt.Fprintln(w, "----\t-----\t------")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", u.Name, u.Roles, u.Salary)
	}
	w.Flush()
	return nil
}

// SetRoles replaces a user's role set.
func (a *UserAdapter) SetRoles(ctx context.Context, name string, roles role.Set) error {
	if err := a.service.SetRoles(ctx, name, roles); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Roles for %s set to %s\n", name, roles)
	return nil
}

// SetSalary sets a user's salary input.
func (a *UserAdapter) SetSalary(ctx context.Context, name string, salary float64) error {
	if err := a.service.SetSalary(ctx, name, salary); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Salary for %s set to %.2f\n", name, salary)
	return nil
}

// AuditAdapter renders the audit trail.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{service: service, out: out}
}

// List prints audit entries, newest first.
func (a *AuditAdapter) List(ctx context.Context, entity, entityID string, limit int) error {
	entries, err := a.service.List(ctx, entity, entityID, limit)
	if err != nil {
		return fmt.Errorf("failed to list audit entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "AT\tACTOR\tACTION\tRECORD\tCHANGE")
	fmt.Fprintln(w, "--\t-----\t------\t------\t------")
	for _, e := range entries {
		change := ""
		if e.Field != "" {
			change = fmt.Sprintf("%s: %q → %q", e.Field, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			e.At, e.Actor, e.Action, e.Entity, e.EntityID, change)
	}
	w.Flush()
	return nil
}
