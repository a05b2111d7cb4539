package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/freightdesk/internal/ports/primary"
)

var (
	realizedColor = color.New(color.FgGreen)
	pendingColor  = color.New(color.FgYellow)
)

// ReportAdapter renders derived reports.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{service: service, out: out}
}

// Commissions renders the commission report, with an optional
// per-shipment breakdown.
func (a *ReportAdapter) Commissions(ctx context.Context, detailed bool) error {
	report, err := a.service.CommissionReport(ctx)
	if err != nil {
		return err
	}

	if len(report.Rows) == 0 {
		fmt.Fprintln(a.out, "No completed shipments; nothing to report.")
		return nil
	}

	fmt.Fprintf(a.out, "Commission report (default rate %.2f%%)\n\n", report.DefaultRate)
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SALESPERSON\tRULE\tREALIZED\tPENDING\tTOTAL\tSHIPMENTS")
	fmt.Fprintln(w, "-----------\t----\t--------\t-------\t-----\t---------")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\n",
			row.Salesperson,
			row.RuleType,
			realizedColor.Sprintf("%.2f", row.Realized),
			pendingColor.Sprintf("%.2f", row.Pending),
			row.Total,
			row.Shipments,
		)
	}
	w.Flush()

	if !detailed {
		return nil
	}

	fmt.Fprintln(a.out)
	w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SHIPMENT\tSALESPERSON\tGP\tCOMMISSION\tCOLLECTED")
	fmt.Fprintln(w, "--------\t-----------\t--\t----------\t---------")
	for _, row := range report.Shipments {
		collected := "no"
		if row.PaymentCollected {
			collected = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\n",
			row.ShipmentID, row.Salesperson, row.GrossProfit, row.Commission, collected)
	}
	w.Flush()
	return nil
}

// Pipeline renders shipment counts per stage.
func (a *ReportAdapter) Pipeline(ctx context.Context) error {
	report, err := a.service.PipelineReport(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STAGE\tCOUNT")
	fmt.Fprintln(w, "-----\t-----")
	for _, stage := range []string{"lead", "pricing", "operations", "completed"} {
		fmt.Fprintf(w, "%s\t%d\n", stage, report.ByStage[stage])
	}
	fmt.Fprintf(w, "%s\t%d\n", lostColor.Sprint("lost"), report.Lost)
	w.Flush()
	fmt.Fprintf(a.out, "\nTotal: %d shipment(s)\n", report.Total)
	return nil
}
