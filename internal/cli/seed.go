package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/db"
	"github.com/example/freightdesk/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development fixtures",
		Long: `Populate the database with example users, shipments across every
stage, and commission rules of every type. Intended for a fresh database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Open(wire.Config().DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Seeding fixtures..."
			s.Start()
			err = db.SeedFixtures(database)
			s.Stop()
			if err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Fixtures loaded")
			fmt.Println()
			fmt.Println("Try:")
			fmt.Println("  freightdesk login root")
			fmt.Println("  freightdesk shipment list")
			fmt.Println("  freightdesk report commissions")
			return nil
		},
	}
}
