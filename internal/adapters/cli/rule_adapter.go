package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/rulefile"
)

// RuleAdapter translates commission rule CLI operations to
// CommissionRuleService calls.
type RuleAdapter struct {
	service primary.CommissionRuleService
	out     io.Writer
}

// NewRuleAdapter creates a new RuleAdapter.
func NewRuleAdapter(service primary.CommissionRuleService, out io.Writer) *RuleAdapter {
	return &RuleAdapter{service: service, out: out}
}

// Set creates or replaces a rule.
func (a *RuleAdapter) Set(ctx context.Context, req primary.SetRuleRequest) error {
	if err := a.service.SetRule(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Commission rule for %s set to %s\n", req.Salesperson, req.RuleType)
	return nil
}

// List lists all explicit rules.
func (a *RuleAdapter) List(ctx context.Context) error {
	views, err := a.service.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No explicit rules; the system default rate applies to everyone.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SALESPERSON\tTYPE\tPERCENTAGE\tMULTIPLIER\tTIERS")
	fmt.Fprintln(w, "-----------\t----\t----------\t----------\t-----")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%d\n",
			v.Salesperson, v.RuleType, v.Percentage, v.SalaryMultiplier, len(v.Tiers))
	}
	w.Flush()
	return nil
}

// Show displays the effective rule for a salesperson.
func (a *RuleAdapter) Show(ctx context.Context, salesperson string) error {
	view, err := a.service.GetRule(ctx, salesperson)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSalesperson: %s\n", view.Salesperson)
	fmt.Fprintf(a.out, "Type:        %s", view.RuleType)
	if view.Default {
		fmt.Fprint(a.out, " (system default)")
	}
	fmt.Fprintln(a.out)
	switch view.RuleType {
	case "tiered":
		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "FROM\tTO\tRATE")
		for _, tier := range view.Tiers {
			to := "open"
			if tier.Max != nil {
				to = fmt.Sprintf("%.2f", *tier.Max)
			}
			fmt.Fprintf(w, "%.2f\t%s\t%.2f%%\n", tier.Min, to, tier.Percentage)
		}
		w.Flush()
	case "gp_minus_salary":
		fmt.Fprintf(a.out, "Rate:        %.2f%% of (GP - %.2fx salary)\n",
			view.Percentage, view.SalaryMultiplier)
	default:
		fmt.Fprintf(a.out, "Rate:        %.2f%%\n", view.Percentage)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Delete removes the explicit rule for a salesperson.
func (a *RuleAdapter) Delete(ctx context.Context, salesperson string) error {
	if err := a.service.DeleteRule(ctx, salesperson); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Rule for %s removed; system default applies\n", salesperson)
	return nil
}

// Import loads rules from a YAML file, all-or-nothing.
func (a *RuleAdapter) Import(ctx context.Context, r io.Reader) error {
	file, err := rulefile.Read(r)
	if err != nil {
		return err
	}
	if err := a.service.ImportRules(ctx, file.Requests()); err != nil {
		return err
	}
	if file.DefaultRate != nil {
		if err := a.service.SetDefaultRate(ctx, *file.DefaultRate); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "✓ Imported %d rule(s)\n", len(file.Rules))
	return nil
}

// Export writes all explicit rules and the default rate as YAML.
func (a *RuleAdapter) Export(ctx context.Context, w io.Writer) error {
	views, err := a.service.ListRules(ctx)
	if err != nil {
		return err
	}
	rate, err := a.service.DefaultRate(ctx)
	if err != nil {
		return err
	}
	return rulefile.Write(w, rulefile.FromViews(views, rate))
}

// SetDefaultRate sets the system default commission percentage.
func (a *RuleAdapter) SetDefaultRate(ctx context.Context, percentage float64) error {
	if err := a.service.SetDefaultRate(ctx, percentage); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Default commission rate set to %.2f%%\n", percentage)
	return nil
}
