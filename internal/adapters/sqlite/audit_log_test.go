package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/freightdesk/internal/adapters/sqlite"
	"github.com/example/freightdesk/internal/ports/secondary"
)

func TestAuditLogAppendAndList(t *testing.T) {
	database := setupTestDB(t)
	log := sqlite.NewAuditLog(database)
	ctx := context.Background()

	entries := []secondary.AuditEntry{
		{Entity: "shipment", EntityID: "JOB-001", Actor: "priya", Action: secondary.AuditActionCreate},
		{Entity: "shipment", EntityID: "JOB-001", Actor: "priya", Action: secondary.AuditActionFieldChange,
			Field: "client_name", OldValue: "", NewValue: "Acme Trading"},
		{Entity: "shipment", EntityID: "JOB-002", Actor: "dana", Action: secondary.AuditActionCreate},
		{Entity: "commission_rule", EntityID: "priya", Actor: "root", Action: secondary.AuditActionRuleChange},
	}
	for _, e := range entries {
		if err := log.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	all, err := log.List(ctx, "", "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(all))
	}
	// Newest first.
	if all[0].Action != secondary.AuditActionRuleChange {
		t.Errorf("expected rule_change first, got %s", all[0].Action)
	}
	if all[0].At == "" {
		t.Error("expected timestamp on listed entry")
	}

	shipment1, err := log.List(ctx, "shipment", "JOB-001", 0)
	if err != nil {
		t.Fatalf("List filtered failed: %v", err)
	}
	if len(shipment1) != 2 {
		t.Errorf("expected 2 entries for JOB-001, got %d", len(shipment1))
	}
	if shipment1[0].Field != "client_name" || shipment1[0].NewValue != "Acme Trading" {
		t.Errorf("unexpected newest entry: %+v", shipment1[0])
	}

	limited, err := log.List(ctx, "shipment", "", 1)
	if err != nil {
		t.Fatalf("List limited failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 entry with limit, got %d", len(limited))
	}
}
