package secondary

import "context"

// AuditEntry records one accepted mutation with its old and new
// values. The audit sink is informed, never consulted.
type AuditEntry struct {
	ID       int64
	Entity   string
	EntityID string
	Actor    string
	Action   string
	Field    string
	OldValue string
	NewValue string
	At       string
}

// Audit actions.
const (
	AuditActionCreate       = "create"
	AuditActionFieldChange  = "field_change"
	AuditActionStageChange  = "stage_change"
	AuditActionMarkLost     = "mark_lost"
	AuditActionReopen       = "reopen"
	AuditActionForceRelease = "force_release_lock"
	AuditActionRuleChange   = "rule_change"
)

// AuditLog defines the secondary port for the audit sink. Every
// accepted mutation is logged by the service layer after the write.
type AuditLog interface {
	// Append records an entry. The adapter assigns ID and At.
	Append(ctx context.Context, entry AuditEntry) error

	// List returns entries for an entity, newest first; entityID ""
	// lists across all entities.
	List(ctx context.Context, entity, entityID string, limit int) ([]AuditEntry, error)
}
