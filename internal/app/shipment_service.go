// Package app composes the pure core packages with the secondary
// ports into the application services behind the primary ports. The
// services are authoritative: every mutation re-evaluates the guards
// for the acting user, no matter what the surface already checked.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/freightdesk/internal/core/editlock"
	"github.com/example/freightdesk/internal/core/fieldperm"
	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/core/stage"
	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/ports/secondary"
)

// ShipmentService implements primary.ShipmentService.
type ShipmentService struct {
	shipments secondary.ShipmentRepository
	locks     *editlock.Manager
	identity  secondary.IdentityProvider
	audit     secondary.AuditLog
	now       func() time.Time
}

// NewShipmentService creates a new shipment service.
func NewShipmentService(
	shipments secondary.ShipmentRepository,
	locks *editlock.Manager,
	identity secondary.IdentityProvider,
	audit secondary.AuditLog,
) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		locks:     locks,
		identity:  identity,
		audit:     audit,
		now:       time.Now,
	}
}

// CreateLead creates a new shipment at the lead stage, owned by the
// acting salesperson.
func (s *ShipmentService) CreateLead(ctx context.Context, req primary.CreateLeadRequest) (*primary.Shipment, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Roles.IsAdmin() && !user.Roles.Has(role.Sales) {
		return nil, fmt.Errorf("creating a lead requires the sales role")
	}

	id, err := s.shipments.GetNextID(ctx)
	if err != nil {
		return nil, err
	}

	record := &secondary.ShipmentRecord{
		ID:               id,
		Stage:            string(stage.InitialStage()),
		Salesperson:      user.Name,
		ClientName:       req.ClientName,
		Currency:         req.Currency,
		Origin:           req.Origin,
		Destination:      req.Destination,
		CargoDescription: req.CargoDescription,
		TransportMode:    req.TransportMode,
		Incoterm:         req.Incoterm,
		EnquiryNotes:     req.EnquiryNotes,
	}
	if err := s.shipments.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: id, Actor: user.Name,
		Action: secondary.AuditActionCreate,
	})

	created, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipmentView(created), nil
}

// GetShipment retrieves a shipment by ID.
func (s *ShipmentService) GetShipment(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return toShipmentView(record), nil
}

// ListShipments lists shipments with optional filters.
func (s *ShipmentService) ListShipments(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
	records, err := s.shipments.List(ctx, secondary.ShipmentFilters{
		Stage:       filters.Stage,
		Salesperson: filters.Salesperson,
		Lost:        filters.Lost,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, err
	}
	views := make([]*primary.Shipment, len(records))
	for i, record := range records {
		views[i] = toShipmentView(record)
	}
	return views, nil
}

// FieldViews renders every shipment field with the acting user's
// visibility, editability and lock reason.
func (s *ShipmentService) FieldViews(ctx context.Context, shipmentID string) ([]primary.FieldView, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	perm := permShipment(record)
	var views []primary.FieldView
	for _, name := range fieldperm.AllFields() {
		category, _ := fieldperm.CategoryOf(name)
		view := primary.FieldView{
			Name:     name,
			Category: string(category),
			Visible:  fieldperm.Visible(name, user.Roles),
			Editable: fieldperm.CanEditField(perm, name, user.Roles, user.Name),
		}
		if view.Visible {
			view.Value, _ = record.Field(name)
		}
		if !view.Editable {
			view.LockReason = fieldperm.FieldLockReason(name, user.Roles, perm)
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateFields applies field edits under the record's edit lock. Any
// field the permission engine refuses fails the whole update; partial
// writes never happen.
func (s *ShipmentService) UpdateFields(ctx context.Context, shipmentID string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	user, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}

	guard, err := s.acquireLock(ctx, shipmentID, user.SessionID)
	if err != nil {
		return err
	}
	defer guard.Release(ctx)

	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}
	perm := permShipment(record)

	for name := range fields {
		if !fieldperm.CanEditField(perm, name, user.Roles, user.Name) {
			return fmt.Errorf("cannot edit %s: %s", name, fieldperm.FieldLockReason(name, user.Roles, perm))
		}
	}
	// Ownership is claimed once; reassigning takes an administrator.
	if !user.Roles.IsAdmin() {
		if v, ok := fields["pricing_owner"]; ok && record.PricingOwner != "" && v != record.PricingOwner {
			return fmt.Errorf("pricing owner is already %s", record.PricingOwner)
		}
		if v, ok := fields["ops_owner"]; ok && record.OpsOwner != "" && v != record.OpsOwner {
			return fmt.Errorf("ops owner is already %s", record.OpsOwner)
		}
	}

	if err := s.shipments.UpdateFields(ctx, shipmentID, fields); err != nil {
		return err
	}

	for name, newValue := range fields {
		oldValue, _ := record.Field(name)
		if oldValue == newValue {
			continue
		}
		s.logAudit(ctx, secondary.AuditEntry{
			Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
			Action: secondary.AuditActionFieldChange,
			Field:  name, OldValue: oldValue, NewValue: newValue,
		})
	}
	return nil
}

// Advance moves the shipment to the next stage.
func (s *ShipmentService) Advance(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if record.IsLost {
		return nil, fmt.Errorf("a lost shipment cannot advance; reopen it first")
	}

	current := stage.Stage(record.Stage)
	if guard := stage.CanAdvance(user.Roles, current); !guard.Allowed {
		return nil, guard.Error()
	}
	if current == stage.Operations {
		gate := stage.CanComplete(stage.CompletionContext{
			DOReleaseDate: record.DOReleaseDate,
			InvoiceNumber: record.InvoiceNumber,
			InvoiceAmount: record.InvoiceAmount,
		})
		if !gate.Allowed {
			return nil, gate.Error()
		}
	}

	result := stage.ApplyAdvance(current, s.now())
	completedAt := ""
	if result.CompletedAt != nil {
		completedAt = result.CompletedAt.UTC().Format(time.RFC3339)
	}
	if err := s.shipments.UpdateStage(ctx, shipmentID, string(result.NewStage), completedAt, false); err != nil {
		return nil, err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionStageChange,
		Field:  "stage", OldValue: string(current), NewValue: string(result.NewStage),
	})
	return s.GetShipment(ctx, shipmentID)
}

// Revert moves the shipment one stage backward, clearing the
// completion timestamp when leaving completed.
func (s *ShipmentService) Revert(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	current := stage.Stage(record.Stage)
	if guard := stage.CanRevert(user.Roles, current); !guard.Allowed {
		return nil, guard.Error()
	}

	result := stage.ApplyRevert(current)
	if err := s.shipments.UpdateStage(ctx, shipmentID, string(result.NewStage), "", result.ClearCompletedAt); err != nil {
		return nil, err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionStageChange,
		Field:  "stage", OldValue: string(current), NewValue: string(result.NewStage),
	})
	return s.GetShipment(ctx, shipmentID)
}

// MarkLost flags the shipment as lost.
func (s *ShipmentService) MarkLost(ctx context.Context, shipmentID string) error {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}
	if record.IsLost {
		return nil
	}
	if guard := stage.CanMarkLost(stage.Stage(record.Stage)); !guard.Allowed {
		return guard.Error()
	}
	if !fieldperm.CanEditShipment(permShipment(record), user.Roles, user.Name) {
		return fmt.Errorf("you do not have access to this shipment")
	}

	if err := s.shipments.SetLost(ctx, shipmentID, true); err != nil {
		return err
	}
	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionMarkLost,
	})
	return nil
}

// Reopen clears the lost flag. Admin only.
func (s *ShipmentService) Reopen(ctx context.Context, shipmentID string) error {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	if !user.Roles.IsAdmin() {
		return fmt.Errorf("reopening a lost shipment requires an administrator")
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !record.IsLost {
		return fmt.Errorf("shipment %s is not marked lost", shipmentID)
	}

	if err := s.shipments.SetLost(ctx, shipmentID, false); err != nil {
		return err
	}
	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionReopen,
	})
	return nil
}

// Claim assigns the acting user as the owner slot for the shipment's
// current stage. Ownership is claimed once; reassignment takes an
// administrator edit.
func (s *ShipmentService) Claim(ctx context.Context, shipmentID string) error {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	record, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}

	var field string
	switch stage.Stage(record.Stage) {
	case stage.Lead, stage.Pricing:
		if !user.Roles.IsAdmin() && !user.Roles.Has(role.Pricing) {
			return fmt.Errorf("claiming pricing ownership requires the pricing role")
		}
		if record.PricingOwner != "" {
			return fmt.Errorf("pricing owner is already %s", record.PricingOwner)
		}
		field = "pricing_owner"
	case stage.Operations:
		if !user.Roles.IsAdmin() && !user.Roles.Has(role.Ops) {
			return fmt.Errorf("claiming ops ownership requires the ops role")
		}
		if record.OpsOwner != "" {
			return fmt.Errorf("ops owner is already %s", record.OpsOwner)
		}
		field = "ops_owner"
	default:
		return fmt.Errorf("a %s shipment has no owner slot to claim", record.Stage)
	}

	if err := s.shipments.UpdateFields(ctx, shipmentID, map[string]string{field: user.Name}); err != nil {
		return err
	}
	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionFieldChange,
		Field:  field, NewValue: user.Name,
	})
	return nil
}

// LockStatus returns the current edit lock on the shipment, if any.
func (s *ShipmentService) LockStatus(ctx context.Context, shipmentID string) (*primary.LockInfo, error) {
	lock, held, err := s.locks.Holder(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, nil
	}
	return &primary.LockInfo{
		ShipmentID: lock.ResourceID,
		HolderID:   lock.HolderID,
		AcquiredAt: lock.AcquiredAt.UTC().Format(time.RFC3339),
	}, nil
}

// ForceReleaseLock clears the edit lock regardless of holder. Admin
// only; the release is audited because it can break another user's
// editing session.
func (s *ShipmentService) ForceReleaseLock(ctx context.Context, shipmentID string) error {
	user, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	if !user.Roles.IsAdmin() {
		return fmt.Errorf("force-releasing a lock requires an administrator")
	}

	lock, held, err := s.locks.Holder(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !held {
		return fmt.Errorf("no lock held on %s", shipmentID)
	}
	if err := s.locks.ForceRelease(ctx, shipmentID); err != nil {
		return err
	}

	s.logAudit(ctx, secondary.AuditEntry{
		Entity: "shipment", EntityID: shipmentID, Actor: user.Name,
		Action: secondary.AuditActionForceRelease,
		Field:  "lock", OldValue: lock.HolderID,
	})
	return nil
}

// acquireLock claims the edit lock on a shipment, translating
// contention into the user-facing refusal.
func (s *ShipmentService) acquireLock(ctx context.Context, shipmentID, sessionID string) (*editlock.Guard, error) {
	guard, granted, err := s.locks.Acquire(ctx, shipmentID, sessionID)
	if err != nil {
		return nil, err
	}
	if !granted {
		lock, held, err := s.locks.Holder(ctx, shipmentID)
		if err != nil || !held {
			return nil, fmt.Errorf("this record is being edited by someone else")
		}
		return nil, fmt.Errorf("%s", editlock.ContentionMessage(lock))
	}
	return guard, nil
}

// logAudit appends an audit entry. The write already happened; a
// failing audit sink must not roll it back, so failures are dropped.
func (s *ShipmentService) logAudit(ctx context.Context, entry secondary.AuditEntry) {
	_ = s.audit.Append(ctx, entry)
}

func permShipment(record *secondary.ShipmentRecord) fieldperm.Shipment {
	return fieldperm.Shipment{
		Stage:        stage.Stage(record.Stage),
		IsLost:       record.IsLost,
		Salesperson:  record.Salesperson,
		PricingOwner: record.PricingOwner,
		OpsOwner:     record.OpsOwner,
	}
}

func toShipmentView(record *secondary.ShipmentRecord) *primary.Shipment {
	return &primary.Shipment{
		ID:               record.ID,
		Stage:            record.Stage,
		IsLost:           record.IsLost,
		Salesperson:      record.Salesperson,
		PricingOwner:     record.PricingOwner,
		OpsOwner:         record.OpsOwner,
		ClientName:       record.ClientName,
		Currency:         record.Currency,
		Origin:           record.Origin,
		Destination:      record.Destination,
		QuoteAmount:      record.QuoteAmount,
		InvoiceNumber:    record.InvoiceNumber,
		InvoiceAmount:    record.InvoiceAmount,
		TotalProfit:      record.TotalProfit,
		PaymentCollected: record.PaymentCollected,
		ClientRemarks:    record.ClientRemarks,
		CompletedAt:      record.CompletedAt,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
