package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/freightdesk/internal/ports/secondary"
)

// CommissionRuleRepository implements secondary.CommissionRuleRepository
// with SQLite.
type CommissionRuleRepository struct {
	db *sql.DB
}

// NewCommissionRuleRepository creates a new SQLite commission rule
// repository.
func NewCommissionRuleRepository(db *sql.DB) *CommissionRuleRepository {
	return &CommissionRuleRepository{db: db}
}

// Upsert creates or replaces the rule for a salesperson.
func (r *CommissionRuleRepository) Upsert(ctx context.Context, rule *secondary.CommissionRuleRecord) error {
	if rule.Salesperson == "" {
		return fmt.Errorf("commission rule salesperson must be set")
	}
	if rule.RuleType == "" {
		return fmt.Errorf("commission rule type must be set")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO commission_rules (salesperson, rule_type, percentage, salary_multiplier, tiers_json)
		 VALUES (?, ?, ?, ?, NULLIF(?, ''))
		 ON CONFLICT(salesperson) DO UPDATE SET
			rule_type = excluded.rule_type,
			percentage = excluded.percentage,
			salary_multiplier = excluded.salary_multiplier,
			tiers_json = excluded.tiers_json,
			updated_at = CURRENT_TIMESTAMP`,
		rule.Salesperson, rule.RuleType, rule.Percentage, rule.SalaryMultiplier, rule.TiersJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert commission rule: %w", err)
	}
	return nil
}

// GetBySalesperson retrieves the rule for a salesperson. A missing
// rule is not an error; it returns nil so the caller falls back to the
// system default.
func (r *CommissionRuleRepository) GetBySalesperson(ctx context.Context, salesperson string) (*secondary.CommissionRuleRecord, error) {
	record, err := scanRule(r.db.QueryRowContext(ctx,
		`SELECT salesperson, rule_type, percentage, salary_multiplier, tiers_json, created_at, updated_at
		 FROM commission_rules WHERE salesperson = ?`, salesperson))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission rule: %w", err)
	}
	return record, nil
}

// List retrieves all rules ordered by salesperson.
func (r *CommissionRuleRepository) List(ctx context.Context) ([]*secondary.CommissionRuleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT salesperson, rule_type, percentage, salary_multiplier, tiers_json, created_at, updated_at
		 FROM commission_rules ORDER BY salesperson`)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission rules: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CommissionRuleRecord
	for rows.Next() {
		record, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission rule: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes the rule for a salesperson. Deleting a missing rule
// is a no-op.
func (r *CommissionRuleRepository) Delete(ctx context.Context, salesperson string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM commission_rules WHERE salesperson = ?", salesperson); err != nil {
		return fmt.Errorf("failed to delete commission rule: %w", err)
	}
	return nil
}

func scanRule(row rowScanner) (*secondary.CommissionRuleRecord, error) {
	var (
		record    secondary.CommissionRuleRecord
		tiersJSON sql.NullString
		createdAt time.Time
		updatedAt sql.NullTime
	)
	err := row.Scan(&record.Salesperson, &record.RuleType, &record.Percentage,
		&record.SalaryMultiplier, &tiersJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.TiersJSON = tiersJSON.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}
	return &record, nil
}
