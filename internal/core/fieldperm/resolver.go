package fieldperm

import (
	"fmt"

	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/core/stage"
)

// Shipment carries the slice of shipment state the resolver needs.
// Ownership fields are empty until claimed.
type Shipment struct {
	Stage        stage.Stage
	IsLost       bool
	Salesperson  string
	PricingOwner string
	OpsOwner     string
}

// CanEditField reports whether the user may edit the named field.
// Deterministic and side-effect free; presenters call it on every
// render to decide whether a control is enabled.
func CanEditField(s Shipment, field string, roles role.Set, userName string) bool {
	allowed, _ := decide(s, field, roles, userName)
	return allowed
}

// FieldLockReason returns a human-readable explanation of why the
// field is not editable, or "" when it is. Reasons are values, never
// errors; presenters render them as tooltips.
func FieldLockReason(field string, roles role.Set, s Shipment) string {
	allowed, reason := decide(s, field, roles, "")
	if allowed {
		return ""
	}
	return reason
}

// decide is the single ordered pipeline behind CanEditField and
// FieldLockReason. The first matching rule decides; later rules are
// not consulted. Terminal-state, hidden and read-only rules are safety
// invariants and dominate every ownership or role nuance; ownership
// checks run before the role matrix because the matrix alone cannot
// express "only the assigned owner".
func decide(s Shipment, field string, roles role.Set, userName string) (bool, string) {
	// 1. System-computed fields are never editable.
	if ReadOnly(field) {
		return false, "this value is calculated by the system"
	}

	category, known := CategoryOf(field)
	if !known {
		return false, fmt.Sprintf("unknown field %q", field)
	}

	// 2. A field hidden for every held role is neither visible nor
	// editable.
	if !Visible(field, roles) {
		return false, "this field is not visible to your role"
	}

	// 3. Lost and completed shipments are terminal for editing.
	if s.IsLost && !roles.IsAdmin() {
		return false, "this shipment is marked lost; only an administrator can edit it"
	}
	if s.Stage == stage.Completed && !roles.IsAdmin() {
		return false, "this shipment is completed; only an administrator can edit it"
	}

	// 4. Admin may edit any remaining field.
	if roles.IsAdmin() {
		return true, ""
	}

	// 5. Ownership-gated categories: payables and collections open to
	// the shipment's owners and to finance, regardless of stage.
	if category == CategoryPayables || category == CategoryCollections {
		if isOwner(s, userName) || roles.Has(role.Finance) {
			return true, ""
		}
	}

	// 6. Stage-scoped ownership: once an owner is assigned for the
	// current stage, only that owner edits the stage's fields.
	if denied, reason := ownershipDenies(s, category, userName); denied {
		return false, reason
	}

	// 7. Role x category matrix; any one held role granting access is
	// sufficient.
	if roles.Any(func(r role.Role) bool { return matrixGrants(r, s, category, field, userName) }) {
		return true, ""
	}

	return false, fmt.Sprintf("your role does not allow editing %s fields at the %s stage", category, s.Stage)
}

// isOwner reports whether the user is one of the shipment's named
// owners (salesperson, pricing owner, ops owner).
func isOwner(s Shipment, userName string) bool {
	if userName == "" {
		return false
	}
	return userName == s.Salesperson ||
		(s.PricingOwner != "" && userName == s.PricingOwner) ||
		(s.OpsOwner != "" && userName == s.OpsOwner)
}

// ownershipDenies applies the stage-scoped ownership filters. A field
// belonging to the current stage is reserved for the assigned owner;
// an unassigned owner slot lets the first editor claim the record.
func ownershipDenies(s Shipment, category Category, userName string) (bool, string) {
	switch {
	case category == CategoryOperations && s.Stage == stage.Operations:
		if s.OpsOwner != "" && userName != s.OpsOwner {
			return true, fmt.Sprintf("this job's operations are handled by %s", s.OpsOwner)
		}
	case category == CategoryPricing && s.Stage == stage.Pricing:
		if s.PricingOwner != "" && userName != s.PricingOwner {
			return true, fmt.Sprintf("this job's pricing is handled by %s", s.PricingOwner)
		}
	case category == CategoryLead && s.Stage == stage.Lead:
		if userName != s.Salesperson {
			return true, fmt.Sprintf("this lead belongs to %s", s.Salesperson)
		}
	}
	return false, ""
}

// matrixGrants is the final per-role x per-category decision table.
func matrixGrants(r role.Role, s Shipment, category Category, field, userName string) bool {
	switch r {
	case role.Sales:
		// Lead fields only during the lead stage, only on own
		// shipments; client remarks on own shipments at any stage.
		// Never pricing or operations fields.
		switch category {
		case CategoryLead:
			return s.Stage == stage.Lead && userName == s.Salesperson
		case CategoryClientRemarks:
			return userName == s.Salesperson
		}
		return false

	case role.Pricing:
		// During pricing: pricing and lead fields (lead fields cover
		// client name and currency corrections). During lead: may
		// claim the record by setting the pricing owner.
		switch category {
		case CategoryPricing:
			if s.Stage == stage.Pricing {
				return true
			}
			return s.Stage == stage.Lead && field == "pricing_owner"
		case CategoryLead:
			return s.Stage == stage.Pricing
		}
		return false

	case role.Ops:
		return category == CategoryOperations && s.Stage == stage.Operations

	case role.Collections:
		return category == CategoryCollections

	case role.Finance:
		return category == CategoryPayables
	}
	return false
}

// CanEditShipment is the coarse, whole-record version of the same
// precedence: terminal lock, admin override, then stage ownership.
// Presenters use it to decide whether a row opens for editing at all.
func CanEditShipment(s Shipment, roles role.Set, userName string) bool {
	if s.IsLost || s.Stage == stage.Completed {
		return roles.IsAdmin()
	}
	if roles.IsAdmin() {
		return true
	}
	if roles.Has(role.Sales) && userName == s.Salesperson {
		return true
	}
	if roles.Has(role.Pricing) {
		switch s.Stage {
		case stage.Lead:
			// May open to claim pricing ownership.
			return true
		case stage.Pricing:
			if s.PricingOwner == "" || userName == s.PricingOwner {
				return true
			}
		}
	}
	if roles.Has(role.Ops) && s.Stage == stage.Operations {
		if s.OpsOwner == "" || userName == s.OpsOwner {
			return true
		}
	}
	if roles.HasAny(role.Collections, role.Finance) {
		return true
	}
	// Named owners keep access to payables and collections.
	return isOwner(s, userName)
}
