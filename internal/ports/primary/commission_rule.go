package primary

import "context"

// CommissionRuleService defines the primary port for commission rule
// management. All mutations are admin only.
type CommissionRuleService interface {
	// SetRule creates or replaces the rule for a salesperson. Tiered
	// rules are normalized (contiguous brackets, open-ended last
	// tier) before validation.
	SetRule(ctx context.Context, req SetRuleRequest) error

	// GetRule returns the effective rule for a salesperson: the
	// explicit rule when present, else the synthesized system
	// default.
	GetRule(ctx context.Context, salesperson string) (*RuleView, error)

	// ListRules lists all explicit rules.
	ListRules(ctx context.Context) ([]*RuleView, error)

	// DeleteRule removes the explicit rule for a salesperson; the
	// system default applies afterwards.
	DeleteRule(ctx context.Context, salesperson string) error

	// ImportRules replaces rules in bulk, validating each before any
	// write.
	ImportRules(ctx context.Context, reqs []SetRuleRequest) error

	// SetDefaultRate sets the system default commission percentage.
	SetDefaultRate(ctx context.Context, percentage float64) error

	// DefaultRate returns the effective system default percentage.
	DefaultRate(ctx context.Context) (float64, error)
}

// SetRuleRequest contains parameters for creating or replacing a rule.
type SetRuleRequest struct {
	Salesperson      string
	RuleType         string
	Percentage       float64
	SalaryMultiplier float64
	Tiers            []TierSpec
}

// TierSpec is one bracket of a tiered rule. Max nil means open-ended.
type TierSpec struct {
	Min        float64
	Max        *float64
	Percentage float64
}

// RuleView is the presenter-facing view of an effective rule.
type RuleView struct {
	Salesperson      string
	RuleType         string
	Percentage       float64
	SalaryMultiplier float64
	Tiers            []TierSpec
	// Default is true when no explicit rule exists and the system
	// default rate was synthesized.
	Default bool
}
