package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/db"
	"github.com/example/freightdesk/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// staleLockAge is how long a lock may sit before doctor flags it.
const staleLockAge = 2 * time.Hour

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the freightdesk environment",
		Long: `Health check for a freightdesk installation.

Validates:
- Configuration directory and file
- Database reachability and schema version
- Stuck edit locks
- Session validity

Examples:
  freightdesk doctor          # Run full health check
  freightdesk doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkDatabase(),
				checkLocks(cmd),
				checkSession(cmd),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s %s: %s\n", r.Status, r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Exit code only, no output")
	return cmd
}

func checkConfig() CheckResult {
	cfg := wire.Config()
	if _, err := os.Stat(filepath.Join(cfg.Home, "config.json")); err != nil {
		return CheckResult{
			Name: "Configuration", Status: "⚠",
			Details: "no config.json, run: freightdesk init",
		}
	}
	return CheckResult{Name: "Configuration", Status: "✓"}
}

func checkDatabase() CheckResult {
	database, err := db.Open(wire.Config().DBPath)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: err.Error()}
	}
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: err.Error()}
	}
	version, err := db.SchemaVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: err.Error()}
	}
	if version < db.LatestSchemaVersion() {
		return CheckResult{
			Name: "Database", Status: "⚠",
			Details: fmt.Sprintf("schema at version %d, want %d; run: freightdesk init", version, db.LatestSchemaVersion()),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

func checkLocks(cmd *cobra.Command) CheckResult {
	stale, err := wire.LockManager().Stale(cmd.Context(), staleLockAge, time.Now())
	if err != nil {
		return CheckResult{Name: "Edit locks", Status: "✗", Details: err.Error()}
	}
	if len(stale) > 0 {
		return CheckResult{
			Name: "Edit locks", Status: "⚠",
			Details: fmt.Sprintf("%d lock(s) older than %s, inspect with: freightdesk lock status <id>", len(stale), staleLockAge),
		}
	}
	return CheckResult{Name: "Edit locks", Status: "✓"}
}

func checkSession(cmd *cobra.Command) CheckResult {
	identity, err := wire.Sessions().Current(cmd.Context())
	if err != nil {
		return CheckResult{Name: "Session", Status: "⚠", Details: err.Error()}
	}
	return CheckResult{Name: "Session", Status: "✓", Details: identity.Name}
}
