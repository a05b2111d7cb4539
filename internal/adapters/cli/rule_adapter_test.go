package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/freightdesk/internal/ports/primary"
)

// mockRuleService implements primary.CommissionRuleService for testing.
type mockRuleService struct {
	setRuleFn        func(ctx context.Context, req primary.SetRuleRequest) error
	getRuleFn        func(ctx context.Context, salesperson string) (*primary.RuleView, error)
	listRulesFn      func(ctx context.Context) ([]*primary.RuleView, error)
	deleteRuleFn     func(ctx context.Context, salesperson string) error
	importRulesFn    func(ctx context.Context, reqs []primary.SetRuleRequest) error
	setDefaultRateFn func(ctx context.Context, percentage float64) error
	defaultRateFn    func(ctx context.Context) (float64, error)
}

func (m *mockRuleService) SetRule(ctx context.Context, req primary.SetRuleRequest) error {
	return m.setRuleFn(ctx, req)
}
func (m *mockRuleService) GetRule(ctx context.Context, salesperson string) (*primary.RuleView, error) {
	return m.getRuleFn(ctx, salesperson)
}
func (m *mockRuleService) ListRules(ctx context.Context) ([]*primary.RuleView, error) {
	return m.listRulesFn(ctx)
}
func (m *mockRuleService) DeleteRule(ctx context.Context, salesperson string) error {
	return m.deleteRuleFn(ctx, salesperson)
}
func (m *mockRuleService) ImportRules(ctx context.Context, reqs []primary.SetRuleRequest) error {
	return m.importRulesFn(ctx, reqs)
}
func (m *mockRuleService) SetDefaultRate(ctx context.Context, percentage float64) error {
	return m.setDefaultRateFn(ctx, percentage)
}
func (m *mockRuleService) DefaultRate(ctx context.Context) (float64, error) {
	return m.defaultRateFn(ctx)
}

func TestRuleShowTiered(t *testing.T) {
	var buf bytes.Buffer
	max := 10000.0
	mock := &mockRuleService{
		getRuleFn: func(ctx context.Context, salesperson string) (*primary.RuleView, error) {
			return &primary.RuleView{
				Salesperson: salesperson,
				RuleType:    "tiered",
				Tiers: []primary.TierSpec{
					{Min: 0, Max: &max, Percentage: 3},
					{Min: 10000, Percentage: 5},
				},
			}, nil
		},
	}
	adapter := NewRuleAdapter(mock, &buf)

	if err := adapter.Show(context.Background(), "priya"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"priya", "tiered", "10000.00", "open", "5.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRuleShowDefault(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockRuleService{
		getRuleFn: func(ctx context.Context, salesperson string) (*primary.RuleView, error) {
			return &primary.RuleView{
				Salesperson: salesperson, RuleType: "flat_percentage",
				Percentage: 4, Default: true,
			}, nil
		},
	}
	adapter := NewRuleAdapter(mock, &buf)

	if err := adapter.Show(context.Background(), "zoe"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !strings.Contains(buf.String(), "system default") {
		t.Errorf("expected default marker, got:\n%s", buf.String())
	}
}

func TestRuleImportFromYAML(t *testing.T) {
	var buf bytes.Buffer
	var imported []primary.SetRuleRequest
	var gotRate float64
	mock := &mockRuleService{
		importRulesFn: func(ctx context.Context, reqs []primary.SetRuleRequest) error {
			imported = reqs
			return nil
		},
		setDefaultRateFn: func(ctx context.Context, percentage float64) error {
			gotRate = percentage
			return nil
		},
	}
	adapter := NewRuleAdapter(mock, &buf)

	yaml := `
default_rate: 4
rules:
  - salesperson: dana
    type: flat_percentage
    percentage: 6
`
	if err := adapter.Import(context.Background(), strings.NewReader(yaml)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(imported) != 1 || imported[0].Salesperson != "dana" {
		t.Errorf("unexpected imported rules: %+v", imported)
	}
	if gotRate != 4 {
		t.Errorf("expected default rate 4 applied, got %v", gotRate)
	}
	if !strings.Contains(buf.String(), "Imported 1 rule") {
		t.Errorf("expected confirmation, got:\n%s", buf.String())
	}
}

// mockReportService implements primary.ReportService for testing.
type mockReportService struct {
	commissionFn func(ctx context.Context) (*primary.CommissionReport, error)
	pipelineFn   func(ctx context.Context) (*primary.PipelineReport, error)
}

func (m *mockReportService) CommissionReport(ctx context.Context) (*primary.CommissionReport, error) {
	return m.commissionFn(ctx)
}
func (m *mockReportService) PipelineReport(ctx context.Context) (*primary.PipelineReport, error) {
	return m.pipelineFn(ctx)
}

func TestReportCommissions(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockReportService{
		commissionFn: func(ctx context.Context) (*primary.CommissionReport, error) {
			return &primary.CommissionReport{
				DefaultRate: 4,
				Rows: []primary.CommissionRow{
					{Salesperson: "priya", RuleType: "tiered", Realized: 800, Pending: 300, Total: 1100, Shipments: 2},
				},
				Shipments: []primary.ShipmentCommissionRow{
					{ShipmentID: "JOB-001", Salesperson: "priya", GrossProfit: 20000, Commission: 800, PaymentCollected: true},
				},
			}, nil
		},
	}
	adapter := NewReportAdapter(mock, &buf)

	if err := adapter.Commissions(context.Background(), true); err != nil {
		t.Fatalf("Commissions failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"priya", "800.00", "300.00", "1100.00", "JOB-001"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestReportPipeline(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockReportService{
		pipelineFn: func(ctx context.Context) (*primary.PipelineReport, error) {
			return &primary.PipelineReport{
				ByStage: map[string]int{"lead": 2, "pricing": 1},
				Lost:    1,
				Total:   4,
			}, nil
		},
	}
	adapter := NewReportAdapter(mock, &buf)

	if err := adapter.Pipeline(context.Background()); err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Total: 4 shipment(s)") {
		t.Errorf("expected total line, got:\n%s", out)
	}
	if !strings.Contains(out, "lost") {
		t.Errorf("expected lost row, got:\n%s", out)
	}
}
