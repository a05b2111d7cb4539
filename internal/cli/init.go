package cli

import (
	"fmt"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/adapters/sqlite"
	"github.com/example/freightdesk/internal/config"
	"github.com/example/freightdesk/internal/db"
	"github.com/example/freightdesk/internal/ports/secondary"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the freightdesk database and configuration",
		Long:  `Initialize the freightdesk database at ~/.freightdesk/freightdesk.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			banner := figure.NewFigure("freightdesk", "", true)
			banner.Print()
			fmt.Println()

			fmt.Printf("Initializing database at %s\n", cfg.DBPath)
			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			// A fresh install has nobody who could grant admin, so
			// create the root administrator here.
			users := sqlite.NewUserRepository(database)
			existing, err := users.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				root := &secondary.UserRecord{
					Name:      "root",
					Roles:     "admin",
					CreatedAt: time.Now().Format(time.RFC3339),
				}
				if err := users.Create(cmd.Context(), root); err != nil {
					return fmt.Errorf("failed to create root user: %w", err)
				}
				fmt.Println("✓ Created root administrator")
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to write configuration: %w", err)
			}
			fmt.Printf("✓ Configuration written to %s/config.json\n", cfg.Home)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  freightdesk login root")
			fmt.Println("  freightdesk user add priya --roles sales --salary 3000")
			fmt.Println("  freightdesk lead create \"Acme Corp\"")
			return nil
		},
	}
}
