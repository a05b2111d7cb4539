package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/wire"
)

// ShipmentCmd returns the shipment command
func ShipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipment",
		Short: "Manage shipments through the pipeline",
		Long:  "List, inspect, edit, and move shipments through lead, pricing, operations and completed.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments",
		RunE: func(cmd *cobra.Command, args []string) error {
			stageFilter, _ := cmd.Flags().GetString("stage")
			salesperson, _ := cmd.Flags().GetString("salesperson")
			lostOnly, _ := cmd.Flags().GetBool("lost")
			limit, _ := cmd.Flags().GetInt("limit")

			filters := primary.ShipmentFilters{
				Stage:       stageFilter,
				Salesperson: salesperson,
				Limit:       limit,
			}
			if lostOnly {
				lost := true
				filters.Lost = &lost
			}
			_, err := wire.ShipmentAdapter().List(cmd.Context(), filters)
			return err
		},
	}
	listCmd.Flags().String("stage", "", "Filter by stage (lead, pricing, operations, completed)")
	listCmd.Flags().String("salesperson", "", "Filter by salesperson")
	listCmd.Flags().Bool("lost", false, "Show only lost shipments")
	listCmd.Flags().Int("limit", 0, "Limit the number of rows")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, _ := cmd.Flags().GetBool("fields")
			if fields {
				return wire.ShipmentAdapter().ShowFields(cmd.Context(), args[0])
			}
			_, err := wire.ShipmentAdapter().Show(cmd.Context(), args[0])
			return err
		},
	}
	showCmd.Flags().Bool("fields", false, "Show every field with your edit permissions")

	editCmd := &cobra.Command{
		Use:   "edit [id] [field=value]...",
		Short: "Edit shipment fields",
		Long: `Edit one or more fields atomically. All fields must be editable
by your role at the current stage or nothing is written.

Examples:
  freightdesk shipment edit JOB-001 origin="Shanghai" destination="Rotterdam"
  freightdesk shipment edit JOB-002 buy_rate=7000 quote_amount=9500`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(map[string]string)
			for _, arg := range args[1:] {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid assignment %q, expected field=value", arg)
				}
				fields[name] = value
			}
			return wire.ShipmentAdapter().Edit(cmd.Context(), args[0], fields)
		},
	}

	advanceCmd := &cobra.Command{
		Use:   "advance [id]",
		Short: "Advance a shipment to the next stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().Advance(cmd.Context(), args[0])
		},
	}

	revertCmd := &cobra.Command{
		Use:   "revert [id]",
		Short: "Send a shipment back one stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().Revert(cmd.Context(), args[0])
		},
	}

	loseCmd := &cobra.Command{
		Use:   "lose [id]",
		Short: "Mark a shipment as lost business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().Lose(cmd.Context(), args[0])
		},
	}

	reopenCmd := &cobra.Command{
		Use:   "reopen [id]",
		Short: "Reopen a lost shipment (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().Reopen(cmd.Context(), args[0])
		},
	}

	claimCmd := &cobra.Command{
		Use:   "claim [id]",
		Short: "Claim the open ownership slot for your role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().Claim(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	cmd.AddCommand(editCmd)
	cmd.AddCommand(advanceCmd)
	cmd.AddCommand(revertCmd)
	cmd.AddCommand(loseCmd)
	cmd.AddCommand(reopenCmd)
	cmd.AddCommand(claimCmd)
	return cmd
}
