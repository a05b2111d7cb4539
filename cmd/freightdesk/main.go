package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/cli"
	"github.com/example/freightdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "freightdesk",
		Short:   "freightdesk - shipment pipeline for freight forwarders",
		Version: version.String(),
		Long: `freightdesk is a CLI tool for managing freight shipments from enquiry
to delivery. It moves each shipment through lead, pricing, operations and
completed, enforcing who may edit what at every stage.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.LeadCmd())
	rootCmd.AddCommand(cli.ShipmentCmd())
	rootCmd.AddCommand(cli.LockCmd())
	rootCmd.AddCommand(cli.RuleCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.AuditCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
