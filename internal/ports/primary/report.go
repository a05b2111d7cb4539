package primary

import "context"

// ReportService defines the primary port for derived reports.
type ReportService interface {
	// CommissionReport computes per-salesperson commissions over
	// completed shipments, split into realized (payment collected)
	// and pending totals.
	CommissionReport(ctx context.Context) (*CommissionReport, error)

	// PipelineReport counts shipments per stage.
	PipelineReport(ctx context.Context) (*PipelineReport, error)
}

// CommissionReport is the full commission statement.
type CommissionReport struct {
	DefaultRate float64
	Rows        []CommissionRow
	Shipments   []ShipmentCommissionRow
}

// CommissionRow is one salesperson's totals.
type CommissionRow struct {
	Salesperson string
	RuleType    string
	Realized    float64
	Pending     float64
	Total       float64
	Shipments   int
}

// ShipmentCommissionRow itemizes one shipment's commission.
type ShipmentCommissionRow struct {
	ShipmentID       string
	Salesperson      string
	GrossProfit      float64
	Commission       float64
	PaymentCollected bool
}

// PipelineReport counts shipments by stage plus lost shipments.
type PipelineReport struct {
	ByStage map[string]int
	Lost    int
	Total   int
}
