// Package sqlite_test contains integration tests for the SQLite
// repositories. All test setup loads the authoritative schema via
// db.GetSchemaSQL() so test and production schemas cannot drift; do
// not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/freightdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative
// schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedShipment inserts a minimal shipment and returns its ID.
func seedShipment(t *testing.T, database *sql.DB, id, stage, salesperson string) string {
	t.Helper()
	if id == "" {
		id = "JOB-001"
	}
	if stage == "" {
		stage = "lead"
	}
	if salesperson == "" {
		salesperson = "priya"
	}
	_, err := database.Exec(
		"INSERT INTO shipments (id, stage, salesperson) VALUES (?, ?, ?)",
		id, stage, salesperson)
	if err != nil {
		t.Fatalf("failed to seed shipment: %v", err)
	}
	return id
}
