package secondary

import (
	"context"

	"github.com/example/freightdesk/internal/core/role"
)

// Identity is the active user as supplied by the identity provider.
type Identity struct {
	// Name is the ownership-comparable identifier; shipments store it
	// in salesperson and owner fields.
	Name string
	// Roles is the user's held role set.
	Roles role.Set
	// SessionID identifies the editing session for lock holdership.
	SessionID string
}

// IdentityProvider defines the secondary port for resolving the
// current user. The engine never issues identities; it only consumes
// them.
type IdentityProvider interface {
	// Current returns the active identity, or an error when no valid
	// session exists.
	Current(ctx context.Context) (Identity, error)
}
