package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/wire"
)

// LockCmd returns the lock command
func LockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Inspect and release edit locks",
	}

	statusCmd := &cobra.Command{
		Use:   "status [id]",
		Short: "Show who holds the edit lock on a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().LockStatus(cmd.Context(), args[0])
		},
	}

	releaseCmd := &cobra.Command{
		Use:   "release [id]",
		Short: "Force-release a stuck edit lock (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ShipmentAdapter().ForceRelease(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(statusCmd)
	cmd.AddCommand(releaseCmd)
	return cmd
}
