package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/wire"
)

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, _ := cmd.Flags().GetString("entity")
			entityID, _ := cmd.Flags().GetString("id")
			limit, _ := cmd.Flags().GetInt("limit")
			return wire.AuditAdapter().List(cmd.Context(), entity, entityID, limit)
		},
	}
	listCmd.Flags().String("entity", "", "Filter by entity (shipment, rule, user, setting)")
	listCmd.Flags().String("id", "", "Filter by record ID")
	listCmd.Flags().Int("limit", 50, "Limit the number of entries")

	cmd.AddCommand(listCmd)
	return cmd
}
