package app

import (
	"context"
	"testing"

	"github.com/example/freightdesk/internal/ports/secondary"
)

type reportFixture struct {
	shipments *mockShipmentRepo
	rules     *mockRuleRepo
	users     *mockUserRepo
	settings  *mockSettings
	service   *ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		shipments: newMockShipmentRepo(),
		rules:     newMockRuleRepo(),
		users:     newMockUserRepo(),
		settings:  newMockSettings(),
	}
	f.service = NewReportService(f.shipments, f.rules, f.users, f.settings)
	return f
}

func (f *reportFixture) seedShipment(record secondary.ShipmentRecord) {
	f.shipments.shipments[record.ID] = &record
}

func TestCommissionReport(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()

	f.settings.values[secondary.SettingDefaultCommissionRate] = "4"
	f.users.users["dana"] = &secondary.UserRecord{Name: "dana", Roles: "sales", Salary: 4000}

	// priya: tiered rule over two completed shipments, one collected.
	f.rules.rules["priya"] = &secondary.CommissionRuleRecord{
		Salesperson: "priya",
		RuleType:    "tiered",
		TiersJSON:   `[{"min":0,"max":10000,"percentage":3},{"min":10000,"max":25000,"percentage":5},{"min":25000,"max":null,"percentage":7}]`,
	}
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-001", Stage: "completed", Salesperson: "priya",
		TotalProfit: 20000, PaymentCollected: true,
	})
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-002", Stage: "completed", Salesperson: "priya",
		TotalProfit: 10000,
	})
	// dana: gp_minus_salary, salary deducted before the rate.
	f.rules.rules["dana"] = &secondary.CommissionRuleRecord{
		Salesperson: "dana", RuleType: "gp_minus_salary",
		Percentage: 10, SalaryMultiplier: 1,
	}
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-003", Stage: "completed", Salesperson: "dana",
		TotalProfit: 14000, PaymentCollected: true,
	})
	// zoe: no rule, system default applies.
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-004", Stage: "completed", Salesperson: "zoe",
		TotalProfit: 1000,
	})
	// Excluded: not completed, or lost.
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-005", Stage: "operations", Salesperson: "priya", TotalProfit: 9999,
	})
	f.seedShipment(secondary.ShipmentRecord{
		ID: "JOB-006", Stage: "completed", Salesperson: "priya", IsLost: true, TotalProfit: 9999,
	})

	report, err := f.service.CommissionReport(ctx)
	if err != nil {
		t.Fatalf("CommissionReport failed: %v", err)
	}
	if report.DefaultRate != 4 {
		t.Errorf("expected default rate 4, got %v", report.DefaultRate)
	}
	if len(report.Shipments) != 4 {
		t.Fatalf("expected 4 shipment rows, got %d", len(report.Shipments))
	}
	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 salesperson rows, got %d", len(report.Rows))
	}

	rows := make(map[string]int)
	for i, row := range report.Rows {
		rows[row.Salesperson] = i
	}

	// priya marginal tiers: 20000 -> 300 + 500 = 800 (realized),
	// 10000 -> 300 (pending).
	priya := report.Rows[rows["priya"]]
	if priya.Realized != 800 || priya.Pending != 300 {
		t.Errorf("priya: expected realized 800 pending 300, got %v/%v", priya.Realized, priya.Pending)
	}
	if priya.Total != 1100 || priya.Shipments != 2 {
		t.Errorf("priya: expected total 1100 over 2 shipments, got %v/%d", priya.Total, priya.Shipments)
	}
	if priya.RuleType != "tiered" {
		t.Errorf("priya: expected tiered, got %s", priya.RuleType)
	}

	// dana: (14000 - 1*4000) * 10% = 1000 realized.
	dana := report.Rows[rows["dana"]]
	if dana.Realized != 1000 || dana.Pending != 0 {
		t.Errorf("dana: expected realized 1000, got %v/%v", dana.Realized, dana.Pending)
	}

	// zoe: default 4% of 1000 = 40 pending.
	zoe := report.Rows[rows["zoe"]]
	if zoe.Pending != 40 {
		t.Errorf("zoe: expected pending 40, got %v", zoe.Pending)
	}
	if zoe.RuleType != "flat_percentage" {
		t.Errorf("zoe: expected flat default, got %s", zoe.RuleType)
	}
}

func TestCommissionReportEmptyPipeline(t *testing.T) {
	f := newReportFixture()

	report, err := f.service.CommissionReport(context.Background())
	if err != nil {
		t.Fatalf("CommissionReport failed: %v", err)
	}
	if len(report.Rows) != 0 || len(report.Shipments) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if report.DefaultRate != 5 {
		t.Errorf("expected fallback default rate 5, got %v", report.DefaultRate)
	}
}

func TestPipelineReport(t *testing.T) {
	f := newReportFixture()

	f.seedShipment(secondary.ShipmentRecord{ID: "JOB-001", Stage: "lead", Salesperson: "priya"})
	f.seedShipment(secondary.ShipmentRecord{ID: "JOB-002", Stage: "lead", Salesperson: "dana"})
	f.seedShipment(secondary.ShipmentRecord{ID: "JOB-003", Stage: "pricing", Salesperson: "priya"})
	f.seedShipment(secondary.ShipmentRecord{ID: "JOB-004", Stage: "completed", Salesperson: "priya"})
	f.seedShipment(secondary.ShipmentRecord{ID: "JOB-005", Stage: "pricing", Salesperson: "dana", IsLost: true})

	report, err := f.service.PipelineReport(context.Background())
	if err != nil {
		t.Fatalf("PipelineReport failed: %v", err)
	}
	if report.Total != 5 {
		t.Errorf("expected total 5, got %d", report.Total)
	}
	if report.Lost != 1 {
		t.Errorf("expected 1 lost, got %d", report.Lost)
	}
	if report.ByStage["lead"] != 2 || report.ByStage["pricing"] != 1 || report.ByStage["completed"] != 1 {
		t.Errorf("unexpected stage counts: %v", report.ByStage)
	}
}
