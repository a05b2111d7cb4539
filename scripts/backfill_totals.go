//go:build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Backfills total_invoice_amount and total_profit for shipments
// written before the derived totals were recomputed on every edit.
// Run with -dry-run first to preview the rows that would change.
func main() {
	dryRun := flag.Bool("dry-run", false, "Preview backfill without executing")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".freightdesk", "freightdesk.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, invoice_amount, carrier_cost, agent_fees, duty_amount,
		       total_invoice_amount, total_profit
		FROM shipments`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading shipments: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	type fix struct {
		id                  string
		totalInvoice, total float64
	}
	var fixes []fix

	for rows.Next() {
		var id string
		var invoice, carrier, agent, duty, storedInvoice, storedProfit float64
		if err := rows.Scan(&id, &invoice, &carrier, &agent, &duty, &storedInvoice, &storedProfit); err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning row: %v\n", err)
			os.Exit(1)
		}
		wantInvoice := invoice
		wantProfit := invoice - carrier - agent - duty
		if storedInvoice != wantInvoice || storedProfit != wantProfit {
			fixes = append(fixes, fix{id: id, totalInvoice: wantInvoice, total: wantProfit})
		}
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error iterating shipments: %v\n", err)
		os.Exit(1)
	}

	if len(fixes) == 0 {
		fmt.Println("All derived totals are consistent; nothing to do.")
		return
	}

	for _, f := range fixes {
		fmt.Printf("%s: total_invoice_amount=%.2f total_profit=%.2f\n", f.id, f.totalInvoice, f.total)
	}
	if *dryRun {
		fmt.Printf("\nDry run: %d shipment(s) would be updated.\n", len(fixes))
		return
	}

	for _, f := range fixes {
		if _, err := db.Exec(
			"UPDATE shipments SET total_invoice_amount = ?, total_profit = ? WHERE id = ?",
			f.totalInvoice, f.total, f.id,
		); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", f.id, err)
			os.Exit(1)
		}
	}
	fmt.Printf("\nUpdated %d shipment(s).\n", len(fixes))
}
