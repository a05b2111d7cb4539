// Package primary defines the primary ports (driving adapters) for
// the application. Presenters depend on these interfaces only.
package primary

import "context"

// ShipmentService defines the primary port for shipment operations.
// Every mutation re-checks the permission engine for the acting user;
// presenters consult the same engine to disable controls up front, but
// the service layer is authoritative.
type ShipmentService interface {
	// CreateLead creates a new shipment at the lead stage, owned by
	// the acting salesperson.
	CreateLead(ctx context.Context, req CreateLeadRequest) (*Shipment, error)

	// GetShipment retrieves a shipment by ID.
	GetShipment(ctx context.Context, shipmentID string) (*Shipment, error)

	// ListShipments lists shipments with optional filters.
	ListShipments(ctx context.Context, filters ShipmentFilters) ([]*Shipment, error)

	// FieldViews renders every shipment field with the acting user's
	// visibility, editability and lock reason.
	FieldViews(ctx context.Context, shipmentID string) ([]FieldView, error)

	// UpdateFields applies field edits under the record's edit lock.
	// Each field is checked against the permission engine; any
	// disallowed field refuses the whole update.
	UpdateFields(ctx context.Context, shipmentID string, fields map[string]string) error

	// Advance moves the shipment to the next stage, enforcing the
	// stage guards and, for operations, the completion gate.
	Advance(ctx context.Context, shipmentID string) (*Shipment, error)

	// Revert moves the shipment one stage backward, clearing the
	// completion timestamp when leaving completed.
	Revert(ctx context.Context, shipmentID string) (*Shipment, error)

	// MarkLost flags the shipment as lost.
	MarkLost(ctx context.Context, shipmentID string) error

	// Reopen clears the lost flag (admin only).
	Reopen(ctx context.Context, shipmentID string) error

	// Claim assigns the acting user as the owner for the shipment's
	// current stage (pricing owner during lead/pricing, ops owner
	// during operations). Ownership is assigned exactly once.
	Claim(ctx context.Context, shipmentID string) error

	// LockStatus returns the current edit lock on the shipment, if
	// any.
	LockStatus(ctx context.Context, shipmentID string) (*LockInfo, error)

	// ForceReleaseLock clears the edit lock regardless of holder
	// (admin only).
	ForceReleaseLock(ctx context.Context, shipmentID string) error
}

// CreateLeadRequest contains parameters for creating a lead.
type CreateLeadRequest struct {
	ClientName       string
	Currency         string
	Origin           string
	Destination      string
	CargoDescription string
	TransportMode    string
	Incoterm         string
	EnquiryNotes     string
}

// Shipment is the presenter-facing view of a shipment.
type Shipment struct {
	ID           string
	Stage        string
	IsLost       bool
	Salesperson  string
	PricingOwner string
	OpsOwner     string

	ClientName  string
	Currency    string
	Origin      string
	Destination string

	QuoteAmount   float64
	InvoiceNumber string
	InvoiceAmount float64
	TotalProfit   float64

	PaymentCollected bool
	ClientRemarks    string

	CompletedAt string
	CreatedAt   string
	UpdatedAt   string
}

// ShipmentFilters contains filter options for listing shipments.
type ShipmentFilters struct {
	Stage       string
	Salesperson string
	Lost        *bool
	Limit       int
}

// FieldView is one field rendered with the acting user's permissions.
type FieldView struct {
	Name     string
	Category string
	Value    string
	Visible  bool
	Editable bool
	// LockReason explains a non-editable field; empty when editable.
	LockReason string
}

// LockInfo describes a held edit lock.
type LockInfo struct {
	ShipmentID string
	HolderID   string
	AcquiredAt string
}
