package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/example/freightdesk/internal/core/commission"
	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/ports/secondary"
)

// CommissionRuleService implements primary.CommissionRuleService. All
// mutations are admin only; reads are open so salespeople can inspect
// their own formula.
type CommissionRuleService struct {
	rules    secondary.CommissionRuleRepository
	settings secondary.SettingsRepository
	identity secondary.IdentityProvider
	audit    secondary.AuditLog
}

// NewCommissionRuleService creates a new commission rule service.
func NewCommissionRuleService(
	rules secondary.CommissionRuleRepository,
	settings secondary.SettingsRepository,
	identity secondary.IdentityProvider,
	audit secondary.AuditLog,
) *CommissionRuleService {
	return &CommissionRuleService{
		rules:    rules,
		settings: settings,
		identity: identity,
		audit:    audit,
	}
}

// SetRule creates or replaces the rule for a salesperson.
func (s *CommissionRuleService) SetRule(ctx context.Context, req primary.SetRuleRequest) error {
	user, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	record, err := buildRuleRecord(req)
	if err != nil {
		return err
	}
	if err := s.rules.Upsert(ctx, record); err != nil {
		return err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "commission_rule", EntityID: req.Salesperson, Actor: user.Name,
		Action: secondary.AuditActionRuleChange,
		Field:  "rule_type", NewValue: req.RuleType,
	})
	return nil
}

// GetRule returns the effective rule for a salesperson: the explicit
// rule when present, else the synthesized system default.
func (s *CommissionRuleService) GetRule(ctx context.Context, salesperson string) (*primary.RuleView, error) {
	record, err := s.rules.GetBySalesperson(ctx, salesperson)
	if err != nil {
		return nil, err
	}
	if record == nil {
		rate, err := s.defaultRate(ctx)
		if err != nil {
			return nil, err
		}
		return &primary.RuleView{
			Salesperson: salesperson,
			RuleType:    string(commission.FlatPercentage),
			Percentage:  rate,
			Default:     true,
		}, nil
	}
	return ruleViewFromRecord(record)
}

// ListRules lists all explicit rules.
func (s *CommissionRuleService) ListRules(ctx context.Context) ([]*primary.RuleView, error) {
	records, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*primary.RuleView, 0, len(records))
	for _, record := range records {
		view, err := ruleViewFromRecord(record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// DeleteRule removes the explicit rule for a salesperson.
func (s *CommissionRuleService) DeleteRule(ctx context.Context, salesperson string) error {
	user, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.rules.Delete(ctx, salesperson); err != nil {
		return err
	}
	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "commission_rule", EntityID: salesperson, Actor: user.Name,
		Action: secondary.AuditActionRuleChange,
		Field:  "rule_type", NewValue: "(default)",
	})
	return nil
}

// ImportRules replaces rules in bulk. Every rule is validated before
// the first write so a bad file changes nothing.
func (s *CommissionRuleService) ImportRules(ctx context.Context, reqs []primary.SetRuleRequest) error {
	user, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	records := make([]*secondary.CommissionRuleRecord, 0, len(reqs))
	for _, req := range reqs {
		record, err := buildRuleRecord(req)
		if err != nil {
			return fmt.Errorf("rule for %s: %w", req.Salesperson, err)
		}
		records = append(records, record)
	}

	for _, record := range records {
		if err := s.rules.Upsert(ctx, record); err != nil {
			return err
		}
		s.logAudit(ctx, secondary.AuditEntry{
			Entity: "commission_rule", EntityID: record.Salesperson, Actor: user.Name,
			Action: secondary.AuditActionRuleChange,
			Field:  "rule_type", NewValue: record.RuleType,
		})
	}
	return nil
}

// SetDefaultRate sets the system default commission percentage.
func (s *CommissionRuleService) SetDefaultRate(ctx context.Context, percentage float64) error {
	user, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("default commission rate must be between 0 and 100")
	}

	old, err := s.settings.Get(ctx, secondary.SettingDefaultCommissionRate)
	if err != nil {
		return err
	}
	value := strconv.FormatFloat(percentage, 'f', -1, 64)
	if err := s.settings.Set(ctx, secondary.SettingDefaultCommissionRate, value); err != nil {
		return err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "setting", EntityID: secondary.SettingDefaultCommissionRate, Actor: user.Name,
		Action: secondary.AuditActionRuleChange,
		Field:  secondary.SettingDefaultCommissionRate, OldValue: old, NewValue: value,
	})
	return nil
}

// DefaultRate returns the effective system default percentage.
func (s *CommissionRuleService) DefaultRate(ctx context.Context) (float64, error) {
	return s.defaultRate(ctx)
}

// defaultRate reads the system default commission rate, falling back
// to the built-in rate when unset or malformed.
func (s *CommissionRuleService) defaultRate(ctx context.Context) (float64, error) {
	value, err := s.settings.Get(ctx, secondary.SettingDefaultCommissionRate)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return commission.FallbackPercentage, nil
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return commission.FallbackPercentage, nil
	}
	return rate, nil
}

func (s *CommissionRuleService) requireAdmin(ctx context.Context) (secondary.Identity, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return secondary.Identity{}, err
	}
	if !user.Roles.IsAdmin() {
		return secondary.Identity{}, fmt.Errorf("managing commission rules requires an administrator")
	}
	return user, nil
}

func (s *CommissionRuleService) logAudit(ctx context.Context, entry secondary.AuditEntry) {
	_ = s.audit.Append(ctx, entry)
}

// buildRuleRecord validates a request and converts it to its storage
// form. Tiered rules are normalized before validation, mirroring the
// tier editor: changing a bracket's max propagates into the next
// bracket's min and the last bracket is forced open-ended.
func buildRuleRecord(req primary.SetRuleRequest) (*secondary.CommissionRuleRecord, error) {
	if req.Salesperson == "" {
		return nil, fmt.Errorf("salesperson must be set")
	}

	record := &secondary.CommissionRuleRecord{
		Salesperson:      req.Salesperson,
		RuleType:         req.RuleType,
		Percentage:       req.Percentage,
		SalaryMultiplier: req.SalaryMultiplier,
	}

	switch commission.RuleType(req.RuleType) {
	case commission.FlatPercentage:
		if req.Percentage < 0 || req.Percentage > 100 {
			return nil, fmt.Errorf("percentage must be between 0 and 100")
		}
	case commission.GPMinusSalary:
		if req.Percentage < 0 || req.Percentage > 100 {
			return nil, fmt.Errorf("percentage must be between 0 and 100")
		}
		if req.SalaryMultiplier < 0 {
			return nil, fmt.Errorf("salary multiplier must not be negative")
		}
	case commission.Tiered:
		tiers := commission.NormalizeTiers(tiersFromSpecs(req.Tiers))
		if err := commission.ValidateTiers(tiers); err != nil {
			return nil, err
		}
		data, err := json.Marshal(tiers)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tiers: %w", err)
		}
		record.TiersJSON = string(data)
	default:
		return nil, fmt.Errorf("unknown rule type %q", req.RuleType)
	}
	return record, nil
}

func tiersFromSpecs(specs []primary.TierSpec) []commission.Tier {
	tiers := make([]commission.Tier, len(specs))
	for i, spec := range specs {
		tiers[i] = commission.Tier{Min: spec.Min, Max: spec.Max, Percentage: spec.Percentage}
	}
	return tiers
}

func tierSpecs(tiers []commission.Tier) []primary.TierSpec {
	specs := make([]primary.TierSpec, len(tiers))
	for i, tier := range tiers {
		specs[i] = primary.TierSpec{Min: tier.Min, Max: tier.Max, Percentage: tier.Percentage}
	}
	return specs
}

// parseTiersJSON decodes the stored tier brackets. Malformed JSON
// yields no tiers; the engine then falls back to the flat default at
// calculation time.
func parseTiersJSON(data string) []commission.Tier {
	if data == "" {
		return nil
	}
	var tiers []commission.Tier
	if err := json.Unmarshal([]byte(data), &tiers); err != nil {
		return nil
	}
	return tiers
}

func ruleViewFromRecord(record *secondary.CommissionRuleRecord) (*primary.RuleView, error) {
	return &primary.RuleView{
		Salesperson:      record.Salesperson,
		RuleType:         record.RuleType,
		Percentage:       record.Percentage,
		SalaryMultiplier: record.SalaryMultiplier,
		Tiers:            tierSpecs(parseTiersJSON(record.TiersJSON)),
	}, nil
}
