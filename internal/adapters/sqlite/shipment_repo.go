// Package sqlite contains SQLite implementations of the secondary
// ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/freightdesk/internal/ports/secondary"
)

// ShipmentRepository implements secondary.ShipmentRepository with SQLite.
type ShipmentRepository struct {
	db *sql.DB
}

// NewShipmentRepository creates a new SQLite shipment repository.
func NewShipmentRepository(db *sql.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// columnKind describes how a field value string is converted before
// storage.
type columnKind int

const (
	kindText columnKind = iota
	kindReal
	kindBool
)

// fieldColumns is the whitelist of writable fields. Field names match
// the permission engine's; anything else is rejected.
var fieldColumns = map[string]columnKind{
	"client_name":       kindText,
	"currency":          kindText,
	"origin":            kindText,
	"destination":       kindText,
	"cargo_description": kindText,
	"transport_mode":    kindText,
	"incoterm":          kindText,
	"enquiry_notes":     kindText,
	"pricing_owner":     kindText,
	"ops_owner":         kindText,
	"carrier":           kindText,
	"buy_rate":          kindReal,
	"sell_rate":         kindReal,
	"quote_amount":      kindReal,
	"quote_validity":    kindText,
	"booking_number":    kindText,
	"vessel_voyage":     kindText,
	"etd":               kindText,
	"eta":               kindText,
	"do_release_date":   kindText,
	"invoice_number":    kindText,
	"invoice_amount":    kindReal,
	"carrier_cost":      kindReal,
	"agent_fees":        kindReal,
	"duty_amount":       kindReal,
	"payment_collected": kindBool,
	"payment_date":      kindText,
	"collection_notes":  kindText,
	"client_remarks":    kindText,
}

// Create persists a new shipment. ID, stage and salesperson must be
// pre-populated by the service layer.
func (r *ShipmentRepository) Create(ctx context.Context, shipment *secondary.ShipmentRecord) error {
	if shipment.ID == "" {
		return fmt.Errorf("shipment ID must be pre-populated by service layer")
	}
	if shipment.Stage == "" {
		return fmt.Errorf("shipment stage must be pre-populated by service layer")
	}
	if shipment.Salesperson == "" {
		return fmt.Errorf("shipment salesperson must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shipments (
			id, stage, is_lost, salesperson,
			client_name, currency, origin, destination,
			cargo_description, transport_mode, incoterm, enquiry_notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shipment.ID, shipment.Stage, shipment.IsLost, shipment.Salesperson,
		nullable(shipment.ClientName), nullable(shipment.Currency),
		nullable(shipment.Origin), nullable(shipment.Destination),
		nullable(shipment.CargoDescription), nullable(shipment.TransportMode),
		nullable(shipment.Incoterm), nullable(shipment.EnquiryNotes),
	)
	if err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}
	return nil
}

const shipmentColumns = `
	id, stage, is_lost, salesperson, pricing_owner, ops_owner,
	client_name, currency, origin, destination,
	cargo_description, transport_mode, incoterm, enquiry_notes,
	carrier, buy_rate, sell_rate, quote_amount, quote_validity,
	booking_number, vessel_voyage, etd, eta,
	do_release_date, invoice_number, invoice_amount,
	carrier_cost, agent_fees, duty_amount,
	payment_collected, payment_date, collection_notes,
	client_remarks, total_profit, total_invoice_amount,
	completed_at, created_at, updated_at`

// GetByID retrieves a shipment by its ID.
func (r *ShipmentRepository) GetByID(ctx context.Context, id string) (*secondary.ShipmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+shipmentColumns+" FROM shipments WHERE id = ?", id)
	record, err := scanShipment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("shipment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	return record, nil
}

// List retrieves shipments matching the given filters, newest first.
func (r *ShipmentRepository) List(ctx context.Context, filters secondary.ShipmentFilters) ([]*secondary.ShipmentRecord, error) {
	query := "SELECT" + shipmentColumns + " FROM shipments"
	var conditions []string
	var args []any

	if filters.Stage != "" {
		conditions = append(conditions, "stage = ?")
		args = append(args, filters.Stage)
	}
	if filters.Salesperson != "" {
		conditions = append(conditions, "salesperson = ?")
		args = append(args, filters.Salesperson)
	}
	if filters.Lost != nil {
		conditions = append(conditions, "is_lost = ?")
		args = append(args, *filters.Lost)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ShipmentRecord
	for rows.Next() {
		record, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateFields applies field values inside one transaction and
// recomputes the derived totals in the same write, so a reader never
// observes stale computed values.
func (r *ShipmentRepository) UpdateFields(ctx context.Context, id string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	var sets []string
	var args []any
	for name, raw := range fields {
		kind, ok := fieldColumns[name]
		if !ok {
			return fmt.Errorf("field %s is not writable", name)
		}
		value, err := convertField(name, raw, kind)
		if err != nil {
			return err
		}
		sets = append(sets, name+" = ?")
		args = append(args, value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE shipments SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE shipments SET
			total_invoice_amount = invoice_amount,
			total_profit = invoice_amount - carrier_cost - agent_fees - duty_amount
		 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to recompute totals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// UpdateStage moves a shipment to a new stage, setting or clearing the
// completion timestamp in the same write.
func (r *ShipmentRepository) UpdateStage(ctx context.Context, id, stage, completedAt string, clearCompletedAt bool) error {
	var result sql.Result
	var err error
	switch {
	case completedAt != "":
		result, err = r.db.ExecContext(ctx,
			"UPDATE shipments SET stage = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			stage, completedAt, id)
	case clearCompletedAt:
		result, err = r.db.ExecContext(ctx,
			"UPDATE shipments SET stage = ?, completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			stage, id)
	default:
		result, err = r.db.ExecContext(ctx,
			"UPDATE shipments SET stage = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			stage, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}
	return nil
}

// SetLost flags or unflags a shipment as lost.
func (r *ShipmentRepository) SetLost(ctx context.Context, id string, lost bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE shipments SET is_lost = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		lost, id)
	if err != nil {
		return fmt.Errorf("failed to set lost flag: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("shipment %s not found", id)
	}
	return nil
}

// GetNextID returns the next available shipment ID (JOB-NNN).
func (r *ShipmentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT MAX(id) FROM shipments WHERE id LIKE 'JOB-%'").Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next shipment ID: %w", err)
	}
	next := 1
	if maxID.Valid {
		var n int
		if _, err := fmt.Sscanf(maxID.String, "JOB-%d", &n); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("JOB-%03d", next), nil
}

func convertField(name, raw string, kind columnKind) (any, error) {
	switch kind {
	case kindReal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s wants a number, got %q", name, raw)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s wants true or false, got %q", name, raw)
		}
		return b, nil
	default:
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	}
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShipment(row rowScanner) (*secondary.ShipmentRecord, error) {
	var (
		record                                         secondary.ShipmentRecord
		pricingOwner, opsOwner                         sql.NullString
		clientName, currency, origin, destination      sql.NullString
		cargoDescription, transportMode                sql.NullString
		incoterm, enquiryNotes, carrier, quoteValidity sql.NullString
		bookingNumber, vesselVoyage, etd, eta          sql.NullString
		doReleaseDate, invoiceNumber                   sql.NullString
		paymentDate, collectionNotes, clientRemarks    sql.NullString
		completedAt, updatedAt                         sql.NullTime
		createdAt                                      time.Time
	)

	err := row.Scan(
		&record.ID, &record.Stage, &record.IsLost, &record.Salesperson,
		&pricingOwner, &opsOwner,
		&clientName, &currency, &origin, &destination,
		&cargoDescription, &transportMode, &incoterm, &enquiryNotes,
		&carrier, &record.BuyRate, &record.SellRate, &record.QuoteAmount, &quoteValidity,
		&bookingNumber, &vesselVoyage, &etd, &eta,
		&doReleaseDate, &invoiceNumber, &record.InvoiceAmount,
		&record.CarrierCost, &record.AgentFees, &record.DutyAmount,
		&record.PaymentCollected, &paymentDate, &collectionNotes,
		&clientRemarks, &record.TotalProfit, &record.TotalInvoiceAmount,
		&completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.PricingOwner = pricingOwner.String
	record.OpsOwner = opsOwner.String
	record.ClientName = clientName.String
	record.Currency = currency.String
	record.Origin = origin.String
	record.Destination = destination.String
	record.CargoDescription = cargoDescription.String
	record.TransportMode = transportMode.String
	record.Incoterm = incoterm.String
	record.EnquiryNotes = enquiryNotes.String
	record.Carrier = carrier.String
	record.QuoteValidity = quoteValidity.String
	record.BookingNumber = bookingNumber.String
	record.VesselVoyage = vesselVoyage.String
	record.ETD = etd.String
	record.ETA = eta.String
	record.DOReleaseDate = doReleaseDate.String
	record.InvoiceNumber = invoiceNumber.String
	record.PaymentDate = paymentDate.String
	record.CollectionNotes = collectionNotes.String
	record.ClientRemarks = clientRemarks.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}
	return &record, nil
}
