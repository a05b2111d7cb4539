package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived reports over the shipment ledger",
	}

	commissionsCmd := &cobra.Command{
		Use:   "commissions",
		Short: "Commission report per salesperson, realized vs pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			detailed, _ := cmd.Flags().GetBool("detailed")
			return wire.ReportAdapter().Commissions(cmd.Context(), detailed)
		},
	}
	commissionsCmd.Flags().Bool("detailed", false, "Include the per-shipment breakdown")

	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Shipment counts per stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Pipeline(cmd.Context())
		},
	}

	cmd.AddCommand(commissionsCmd)
	cmd.AddCommand(pipelineCmd)
	return cmd
}
