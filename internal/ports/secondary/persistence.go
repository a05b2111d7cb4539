// Package secondary defines the secondary ports (driven adapters) for
// the application: persistence, identity and the audit sink.
package secondary

import (
	"context"
	"strconv"
)

// ShipmentRepository defines the secondary port for shipment
// persistence. The repository never evaluates policy; services decide
// and the repository writes.
type ShipmentRepository interface {
	// Create persists a new shipment.
	Create(ctx context.Context, shipment *ShipmentRecord) error

	// GetByID retrieves a shipment by its ID.
	GetByID(ctx context.Context, id string) (*ShipmentRecord, error)

	// List retrieves shipments matching the given filters.
	List(ctx context.Context, filters ShipmentFilters) ([]*ShipmentRecord, error)

	// UpdateFields applies the given field values (keyed by field
	// name) to a shipment. Unknown field names are rejected.
	UpdateFields(ctx context.Context, id string, fields map[string]string) error

	// UpdateStage moves a shipment to a new stage, setting or clearing
	// the completion timestamp in the same write.
	UpdateStage(ctx context.Context, id, stage string, completedAt string, clearCompletedAt bool) error

	// SetLost flags or unflags a shipment as lost.
	SetLost(ctx context.Context, id string, lost bool) error

	// GetNextID returns the next available shipment ID.
	GetNextID(ctx context.Context) (string, error)
}

// ShipmentRecord represents a shipment as stored in persistence.
// Timestamps are RFC3339 strings; money fields are in the shipment's
// currency.
type ShipmentRecord struct {
	ID          string
	Stage       string
	IsLost      bool
	Salesperson string

	// Ownership, claimed once per stage entry; empty until assigned.
	PricingOwner string
	OpsOwner     string

	// Lead intake
	ClientName       string
	Currency         string
	Origin           string
	Destination      string
	CargoDescription string
	TransportMode    string
	Incoterm         string
	EnquiryNotes     string

	// Pricing
	Carrier       string
	BuyRate       float64
	SellRate      float64
	QuoteAmount   float64
	QuoteValidity string

	// Operations
	BookingNumber string
	VesselVoyage  string
	ETD           string
	ETA           string
	DOReleaseDate string
	InvoiceNumber string
	InvoiceAmount float64

	// Payables
	CarrierCost float64
	AgentFees   float64
	DutyAmount  float64

	// Collections
	PaymentCollected bool
	PaymentDate      string
	CollectionNotes  string

	ClientRemarks string

	// Derived outputs, recomputed on every accepted write.
	TotalProfit        float64
	TotalInvoiceAmount float64

	CompletedAt string
	CreatedAt   string
	UpdatedAt   string
}

// Field renders the named mutable or derived field as a string, for
// audit old/new values and presenters. ok is false for unknown names.
func (r *ShipmentRecord) Field(name string) (string, bool) {
	switch name {
	case "client_name":
		return r.ClientName, true
	case "currency":
		return r.Currency, true
	case "origin":
		return r.Origin, true
	case "destination":
		return r.Destination, true
	case "cargo_description":
		return r.CargoDescription, true
	case "transport_mode":
		return r.TransportMode, true
	case "incoterm":
		return r.Incoterm, true
	case "enquiry_notes":
		return r.EnquiryNotes, true
	case "pricing_owner":
		return r.PricingOwner, true
	case "ops_owner":
		return r.OpsOwner, true
	case "carrier":
		return r.Carrier, true
	case "buy_rate":
		return formatFloat(r.BuyRate), true
	case "sell_rate":
		return formatFloat(r.SellRate), true
	case "quote_amount":
		return formatFloat(r.QuoteAmount), true
	case "quote_validity":
		return r.QuoteValidity, true
	case "booking_number":
		return r.BookingNumber, true
	case "vessel_voyage":
		return r.VesselVoyage, true
	case "etd":
		return r.ETD, true
	case "eta":
		return r.ETA, true
	case "do_release_date":
		return r.DOReleaseDate, true
	case "invoice_number":
		return r.InvoiceNumber, true
	case "invoice_amount":
		return formatFloat(r.InvoiceAmount), true
	case "carrier_cost":
		return formatFloat(r.CarrierCost), true
	case "agent_fees":
		return formatFloat(r.AgentFees), true
	case "duty_amount":
		return formatFloat(r.DutyAmount), true
	case "payment_collected":
		return strconv.FormatBool(r.PaymentCollected), true
	case "payment_date":
		return r.PaymentDate, true
	case "collection_notes":
		return r.CollectionNotes, true
	case "client_remarks":
		return r.ClientRemarks, true
	case "total_profit":
		return formatFloat(r.TotalProfit), true
	case "total_invoice_amount":
		return formatFloat(r.TotalInvoiceAmount), true
	case "completed_at":
		return r.CompletedAt, true
	}
	return "", false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ShipmentFilters contains filter options for querying shipments.
type ShipmentFilters struct {
	Stage       string
	Salesperson string
	// Lost filters on the lost flag when non-nil.
	Lost  *bool
	Limit int
}

// CommissionRuleRepository defines the secondary port for commission
// rule persistence. Rules are admin-managed and read by the engine on
// every commission computation.
type CommissionRuleRepository interface {
	// Upsert creates or replaces the rule for a salesperson.
	Upsert(ctx context.Context, rule *CommissionRuleRecord) error

	// GetBySalesperson retrieves the rule for a salesperson, or nil
	// when none exists.
	GetBySalesperson(ctx context.Context, salesperson string) (*CommissionRuleRecord, error)

	// List retrieves all rules ordered by salesperson.
	List(ctx context.Context) ([]*CommissionRuleRecord, error)

	// Delete removes the rule for a salesperson.
	Delete(ctx context.Context, salesperson string) error
}

// CommissionRuleRecord represents a commission rule as stored in
// persistence. Tiers are serialized as JSON.
type CommissionRuleRecord struct {
	Salesperson      string
	RuleType         string
	Percentage       float64
	SalaryMultiplier float64
	TiersJSON        string
	CreatedAt        string
	UpdatedAt        string
}

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByName retrieves a user by name.
	GetByName(ctx context.Context, name string) (*UserRecord, error)

	// List retrieves all users ordered by name.
	List(ctx context.Context) ([]*UserRecord, error)

	// UpdateRoles replaces a user's role set.
	UpdateRoles(ctx context.Context, name, roles string) error

	// UpdateSalary sets a user's salary input for commission rules.
	UpdateSalary(ctx context.Context, name string, salary float64) error
}

// UserRecord represents a user as stored in persistence. Roles is the
// comma-separated storage form parsed by role.Parse.
type UserRecord struct {
	Name      string
	Roles     string
	Salary    float64
	CreatedAt string
}

// SettingsRepository defines the secondary port for key/value
// settings, such as the system default commission rate.
type SettingsRepository interface {
	// Get returns the value for key, or "" when unset.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value for key.
	Set(ctx context.Context, key, value string) error
}

// Settings keys.
const (
	SettingDefaultCommissionRate = "default_commission_rate"
)
