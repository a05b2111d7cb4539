package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs. This is the
// single source of truth: repository tests load it via GetSchemaSQL()
// on an in-memory database, so a column referenced in code but missing
// here fails immediately with "no such column".
//
// Keep this in sync with the migrations list when adding columns or
// tables.
const SchemaSQL = `
-- Users (identity and role assignments)
CREATE TABLE IF NOT EXISTS users (
	name TEXT PRIMARY KEY,
	roles TEXT NOT NULL DEFAULT '',
	salary REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Shipments (the pipeline aggregate: lead -> pricing -> operations -> completed)
CREATE TABLE IF NOT EXISTS shipments (
	id TEXT PRIMARY KEY,
	stage TEXT NOT NULL CHECK(stage IN ('lead', 'pricing', 'operations', 'completed')) DEFAULT 'lead',
	is_lost INTEGER NOT NULL DEFAULT 0,
	salesperson TEXT NOT NULL,
	pricing_owner TEXT,
	ops_owner TEXT,

	client_name TEXT,
	currency TEXT,
	origin TEXT,
	destination TEXT,
	cargo_description TEXT,
	transport_mode TEXT,
	incoterm TEXT,
	enquiry_notes TEXT,

	carrier TEXT,
	buy_rate REAL NOT NULL DEFAULT 0,
	sell_rate REAL NOT NULL DEFAULT 0,
	quote_amount REAL NOT NULL DEFAULT 0,
	quote_validity TEXT,

	booking_number TEXT,
	vessel_voyage TEXT,
	etd TEXT,
	eta TEXT,
	do_release_date TEXT,
	invoice_number TEXT,
	invoice_amount REAL NOT NULL DEFAULT 0,

	carrier_cost REAL NOT NULL DEFAULT 0,
	agent_fees REAL NOT NULL DEFAULT 0,
	duty_amount REAL NOT NULL DEFAULT 0,

	payment_collected INTEGER NOT NULL DEFAULT 0,
	payment_date TEXT,
	collection_notes TEXT,

	client_remarks TEXT,

	total_profit REAL NOT NULL DEFAULT 0,
	total_invoice_amount REAL NOT NULL DEFAULT 0,

	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_shipments_stage ON shipments(stage);
CREATE INDEX IF NOT EXISTS idx_shipments_salesperson ON shipments(salesperson);

-- Commission rules (one per salesperson; absence means system default)
CREATE TABLE IF NOT EXISTS commission_rules (
	salesperson TEXT PRIMARY KEY,
	rule_type TEXT NOT NULL CHECK(rule_type IN ('flat_percentage', 'gp_minus_salary', 'tiered')),
	percentage REAL NOT NULL DEFAULT 0,
	salary_multiplier REAL NOT NULL DEFAULT 0,
	tiers_json TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Settings (key/value: default_commission_rate etc.)
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

-- Edit locks (advisory; one holder per record, no TTL)
CREATE TABLE IF NOT EXISTS edit_locks (
	resource_id TEXT PRIMARY KEY,
	holder_id TEXT NOT NULL,
	acquired_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit log (append-only; old/new values per accepted mutation)
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	actor TEXT NOT NULL,
	action TEXT NOT NULL,
	field TEXT,
	old_value TEXT,
	new_value TEXT,
	at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity, entity_id);

-- Schema version bookkeeping
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh
// installs.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema applies the schema and any pending migrations.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := RunMigrations(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
