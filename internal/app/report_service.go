package app

import (
	"context"
	"strconv"

	"github.com/example/freightdesk/internal/core/commission"
	"github.com/example/freightdesk/internal/core/stage"
	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/ports/secondary"
)

// ReportService implements primary.ReportService. Reports are derived
// views; nothing here writes.
type ReportService struct {
	shipments secondary.ShipmentRepository
	rules     secondary.CommissionRuleRepository
	users     secondary.UserRepository
	settings  secondary.SettingsRepository
}

// NewReportService creates a new report service.
func NewReportService(
	shipments secondary.ShipmentRepository,
	rules secondary.CommissionRuleRepository,
	users secondary.UserRepository,
	settings secondary.SettingsRepository,
) *ReportService {
	return &ReportService{
		shipments: shipments,
		rules:     rules,
		users:     users,
		settings:  settings,
	}
}

// CommissionReport computes per-salesperson commissions over completed
// shipments. Lost shipments never earn commission; a lost flag on a
// completed record excludes it.
func (s *ReportService) CommissionReport(ctx context.Context) (*primary.CommissionReport, error) {
	notLost := false
	records, err := s.shipments.List(ctx, secondary.ShipmentFilters{
		Stage: string(stage.Completed),
		Lost:  &notLost,
	})
	if err != nil {
		return nil, err
	}

	defaultRate, err := s.defaultRate(ctx)
	if err != nil {
		return nil, err
	}

	ruleCache := make(map[string]commission.Rule)
	salaryCache := make(map[string]float64)
	var items []commission.ShipmentCommission
	var shipmentRows []primary.ShipmentCommissionRow

	for _, record := range records {
		rule, ok := ruleCache[record.Salesperson]
		if !ok {
			rule, err = s.resolveRule(ctx, record.Salesperson, defaultRate)
			if err != nil {
				return nil, err
			}
			ruleCache[record.Salesperson] = rule
		}

		salary, ok := salaryCache[record.Salesperson]
		if !ok {
			salary = s.salaryOf(ctx, record.Salesperson)
			salaryCache[record.Salesperson] = salary
		}

		breakdown := commission.Calculate(rule, record.TotalProfit, salary)
		items = append(items, commission.ShipmentCommission{
			ShipmentID:       record.ID,
			Salesperson:      record.Salesperson,
			GrossProfit:      record.TotalProfit,
			Commission:       breakdown.Commission,
			PaymentCollected: record.PaymentCollected,
		})
		shipmentRows = append(shipmentRows, primary.ShipmentCommissionRow{
			ShipmentID:       record.ID,
			Salesperson:      record.Salesperson,
			GrossProfit:      record.TotalProfit,
			Commission:       breakdown.Commission,
			PaymentCollected: record.PaymentCollected,
		})
	}

	report := &primary.CommissionReport{
		DefaultRate: defaultRate,
		Shipments:   shipmentRows,
	}
	for _, total := range commission.Aggregate(items) {
		report.Rows = append(report.Rows, primary.CommissionRow{
			Salesperson: total.Salesperson,
			RuleType:    string(ruleCache[total.Salesperson].Type),
			Realized:    total.Realized,
			Pending:     total.Pending,
			Total:       total.Total(),
			Shipments:   total.Shipments,
		})
	}
	return report, nil
}

// PipelineReport counts shipments per stage. Lost shipments are
// counted separately, not inside their stage.
func (s *ReportService) PipelineReport(ctx context.Context) (*primary.PipelineReport, error) {
	records, err := s.shipments.List(ctx, secondary.ShipmentFilters{})
	if err != nil {
		return nil, err
	}

	report := &primary.PipelineReport{ByStage: make(map[string]int)}
	for _, record := range records {
		report.Total++
		if record.IsLost {
			report.Lost++
			continue
		}
		report.ByStage[record.Stage]++
	}
	return report, nil
}

// resolveRule loads a salesperson's explicit rule, synthesizing the
// flat default when none exists.
func (s *ReportService) resolveRule(ctx context.Context, salesperson string, defaultRate float64) (commission.Rule, error) {
	record, err := s.rules.GetBySalesperson(ctx, salesperson)
	if err != nil {
		return commission.Rule{}, err
	}
	if record == nil {
		return commission.DefaultRule(salesperson, defaultRate), nil
	}
	return commission.Rule{
		Salesperson:      record.Salesperson,
		Type:             commission.RuleType(record.RuleType),
		Percentage:       record.Percentage,
		SalaryMultiplier: record.SalaryMultiplier,
		Tiers:            parseTiersJSON(record.TiersJSON),
	}, nil
}

// salaryOf returns the salesperson's salary input, or zero for an
// unknown user. A missing salary makes gp_minus_salary degrade to the
// plain percentage, which is the report's best available answer.
func (s *ReportService) salaryOf(ctx context.Context, name string) float64 {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return 0
	}
	return user.Salary
}

func (s *ReportService) defaultRate(ctx context.Context) (float64, error) {
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
