package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/wire"
)

// LeadCmd returns the lead command
func LeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Capture new business enquiries",
	}

	createCmd := &cobra.Command{
		Use:   "create [client]",
		Short: "Create a new lead",
		Long:  "Create a shipment at the lead stage, owned by the logged-in salesperson.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			currency, _ := cmd.Flags().GetString("currency")
			origin, _ := cmd.Flags().GetString("origin")
			destination, _ := cmd.Flags().GetString("destination")
			cargo, _ := cmd.Flags().GetString("cargo")
			mode, _ := cmd.Flags().GetString("mode")
			incoterm, _ := cmd.Flags().GetString("incoterm")
			notes, _ := cmd.Flags().GetString("notes")

			_, err := wire.ShipmentAdapter().CreateLead(cmd.Context(), primary.CreateLeadRequest{
				ClientName:       args[0],
				Currency:         currency,
				Origin:           origin,
				Destination:      destination,
				CargoDescription: cargo,
				TransportMode:    mode,
				Incoterm:         incoterm,
				EnquiryNotes:     notes,
			})
			return err
		},
	}
	createCmd.Flags().String("currency", "USD", "Quote currency")
	createCmd.Flags().String("origin", "", "Origin port or city")
	createCmd.Flags().String("destination", "", "Destination port or city")
	createCmd.Flags().String("cargo", "", "Cargo description")
	createCmd.Flags().String("mode", "", "Transport mode (sea, air, road)")
	createCmd.Flags().String("incoterm", "", "Incoterm (FOB, CIF, ...)")
	createCmd.Flags().String("notes", "", "Enquiry notes")

	cmd.AddCommand(createCmd)
	return cmd
}
