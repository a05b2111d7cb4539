package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order. Fresh installs get
// the full schema from SchemaSQL; migrations exist for databases
// created before a schema change.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_quote_validity_to_shipments",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_salary_to_users",
		Up:      migrationV2,
	},
}

// RunMigrations applies all unapplied migrations in order.
func RunMigrations(database *sql.DB) error {
	for _, m := range migrations {
		applied, err := migrationApplied(database, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

func migrationApplied(database *sql.DB, version int) (bool, error) {
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check migration %d: %w", version, err)
	}
	return count > 0, nil
}

// LatestSchemaVersion returns the version a fully migrated database
// reports.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(database *sql.DB) (int, error) {
	var version sql.NullInt64
	err := database.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}

func migrationV1(database *sql.DB) error {
	if columnExists(database, "shipments", "quote_validity") {
		return nil
	}
	_, err := database.Exec("ALTER TABLE shipments ADD COLUMN quote_validity TEXT")
	return err
}

func migrationV2(database *sql.DB) error {
	if columnExists(database, "users", "salary") {
		return nil
	}
	_, err := database.Exec("ALTER TABLE users ADD COLUMN salary REAL NOT NULL DEFAULT 0")
	return err
}

func columnExists(database *sql.DB, table, column string) bool {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
