package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/freightdesk/internal/ports/secondary"
)

// AuditLog implements secondary.AuditLog with SQLite. The log is
// append-only; nothing in the application updates or deletes entries.
type AuditLog struct {
	db *sql.DB
}

// NewAuditLog creates a new SQLite audit log.
func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db}
}

// Append records an entry.
func (l *AuditLog) Append(ctx context.Context, entry secondary.AuditEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO audit_log (entity, entity_id, actor, action, field, old_value, new_value)
		 VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))`,
		entry.Entity, entry.EntityID, entry.Actor, entry.Action,
		entry.Field, entry.OldValue, entry.NewValue)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (l *AuditLog) List(ctx context.Context, entity, entityID string, limit int) ([]secondary.AuditEntry, error) {
	query := `SELECT id, entity, entity_id, actor, action, field, old_value, new_value, at
		FROM audit_log`
	var args []any
	switch {
	case entity != "" && entityID != "":
		query += " WHERE entity = ? AND entity_id = ?"
		args = append(args, entity, entityID)
	case entity != "":
		query += " WHERE entity = ?"
		args = append(args, entity)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []secondary.AuditEntry
	for rows.Next() {
		var (
			entry                     secondary.AuditEntry
			field, oldValue, newValue sql.NullString
			at                        time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.Entity, &entry.EntityID, &entry.Actor,
			&entry.Action, &field, &oldValue, &newValue, &at); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Field = field.String
		entry.OldValue = oldValue.String
		entry.NewValue = newValue.String
		entry.At = at.Format(time.RFC3339)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
