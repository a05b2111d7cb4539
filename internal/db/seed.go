package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures:
// users covering every role, shipments across every stage, and
// commission rules of all three types.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	users := []struct {
		name   string
		roles  string
		salary float64
	}{
		{"root", "admin", 0},
		{"priya", "sales", 3000},
		{"dana", "sales", 2800},
		{"marco", "pricing", 0},
		{"chen", "ops", 0},
		{"zoe", "collections", 0},
		{"omar", "finance", 0},
	}
	for _, u := range users {
		// init may have created root already
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO users (name, roles, salary, created_at) VALUES (?, ?, ?, ?)",
			u.name, u.roles, u.salary, now,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	shipments := []struct {
		id, stage, salesperson, pricingOwner, opsOwner string
		client, origin, destination                    string
		invoiceAmount, carrierCost                     float64
		collected, lost                                bool
		completedAt                                    string
	}{
		{"JOB-001", "lead", "priya", "", "", "Meridian Textiles", "Mumbai", "Rotterdam", 0, 0, false, false, ""},
		{"JOB-002", "pricing", "priya", "marco", "", "Arcadia Foods", "Santos", "Hamburg", 0, 0, false, false, ""},
		{"JOB-003", "operations", "dana", "marco", "chen", "Northwind Metals", "Shanghai", "Felixstowe", 14200, 9800, false, false, ""},
		{"JOB-004", "completed", "priya", "marco", "chen", "Meridian Textiles", "Mumbai", "Antwerp", 21500, 15300, true, false, now},
		{"JOB-005", "completed", "dana", "marco", "chen", "Arcadia Foods", "Santos", "Le Havre", 9400, 7100, false, false, now},
		{"JOB-006", "pricing", "dana", "", "", "Helios Chemicals", "Jebel Ali", "Genoa", 0, 0, false, true, ""},
	}
	for _, s := range shipments {
		profit := s.invoiceAmount - s.carrierCost
		if _, err := database.Exec(
			`INSERT INTO shipments (
				id, stage, is_lost, salesperson, pricing_owner, ops_owner,
				client_name, currency, origin, destination,
				invoice_amount, carrier_cost,
				total_profit, total_invoice_amount,
				payment_collected, completed_at, created_at
			) VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, 'USD', ?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)`,
			s.id, s.stage, s.lost, s.salesperson, s.pricingOwner, s.opsOwner,
			s.client, s.origin, s.destination,
			s.invoiceAmount, s.carrierCost,
			profit, s.invoiceAmount,
			s.collected, s.completedAt, now,
		); err != nil {
			return fmt.Errorf("seed shipments: %w", err)
		}
	}

	rules := []struct {
		salesperson, ruleType string
		percentage, mult      float64
		tiers                 string
	}{
		{"priya", "tiered", 0, 0, `[{"min":0,"max":10000,"percentage":3},{"min":10000,"max":25000,"percentage":5},{"min":25000,"max":null,"percentage":7}]`},
		{"dana", "gp_minus_salary", 10, 1, ""},
	}
	for _, r := range rules {
		if _, err := database.Exec(
			`INSERT INTO commission_rules (salesperson, rule_type, percentage, salary_multiplier, tiers_json, created_at)
			 VALUES (?, ?, ?, ?, NULLIF(?, ''), ?)`,
			r.salesperson, r.ruleType, r.percentage, r.mult, r.tiers, now,
		); err != nil {
			return fmt.Errorf("seed commission rules: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES ('default_commission_rate', '4')",
	); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return nil
}
