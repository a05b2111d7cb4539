// Package fieldperm contains the pure business logic for per-field
// edit and visibility decisions on shipments. Every function is total
// and side-effect free: decisions are values, never errors, so
// presenters can disable controls before a mutation is attempted.
package fieldperm

import "github.com/example/freightdesk/internal/core/role"

// Category is the functional grouping a mutable shipment field belongs
// to. Category membership is static configuration, not derived from
// shipment data.
type Category string

const (
	CategoryLead          Category = "lead"
	CategoryPricing       Category = "pricing"
	CategoryOperations    Category = "operations"
	CategoryPayables      Category = "payables"
	CategoryCollections   Category = "collections"
	CategoryClientRemarks Category = "clientRemarks"
)

// fieldCategories assigns each mutable shipment field to exactly one
// category. Field names match the shipment storage columns.
var fieldCategories = map[string]Category{
	// Lead intake
	"client_name":       CategoryLead,
	"currency":          CategoryLead,
	"origin":            CategoryLead,
	"destination":       CategoryLead,
	"cargo_description": CategoryLead,
	"transport_mode":    CategoryLead,
	"incoterm":          CategoryLead,
	"enquiry_notes":     CategoryLead,

	// Pricing / quotation
	"pricing_owner":  CategoryPricing,
	"carrier":        CategoryPricing,
	"buy_rate":       CategoryPricing,
	"sell_rate":      CategoryPricing,
	"quote_amount":   CategoryPricing,
	"quote_validity": CategoryPricing,

	// Operations
	"ops_owner":       CategoryOperations,
	"booking_number":  CategoryOperations,
	"vessel_voyage":   CategoryOperations,
	"etd":             CategoryOperations,
	"eta":             CategoryOperations,
	"do_release_date": CategoryOperations,
	"invoice_number":  CategoryOperations,
	"invoice_amount":  CategoryOperations,

	// Payables (job costs owed to vendors)
	"carrier_cost": CategoryPayables,
	"agent_fees":   CategoryPayables,
	"duty_amount":  CategoryPayables,

	// Collections
	"payment_collected": CategoryCollections,
	"payment_date":      CategoryCollections,
	"collection_notes":  CategoryCollections,

	// Client-facing remarks
	"client_remarks": CategoryClientRemarks,
}

// readOnlyFields are system-computed values nobody edits directly.
var readOnlyFields = map[string]bool{
	"total_profit":         true,
	"total_invoice_amount": true,
	"completed_at":         true,
}

// hiddenFields lists, per role, fields that role must not see. A field
// is hidden only when every held role hides it; any role that can see
// it makes it visible.
var hiddenFields = map[role.Role]map[string]bool{
	role.Ops: {
		"buy_rate":     true,
		"sell_rate":    true,
		"total_profit": true,
	},
	role.Collections: {
		"buy_rate":     true,
		"total_profit": true,
	},
}

// CategoryOf returns the category of a mutable field. ok is false for
// read-only and unknown fields.
func CategoryOf(field string) (Category, bool) {
	c, ok := fieldCategories[field]
	return c, ok
}

// ReadOnly reports whether the field is globally read-only.
func ReadOnly(field string) bool {
	return readOnlyFields[field]
}

// Visible reports whether any held role can see the field. With no
// roles held nothing hides the field; editability is still denied by
// the role matrix.
func Visible(field string, roles role.Set) bool {
	if len(roles) == 0 {
		return true
	}
	return roles.Any(func(r role.Role) bool {
		return !hiddenFields[r][field]
	})
}

// Fields returns the names of all mutable fields in a category.
func Fields(c Category) []string {
	var out []string
	for f, fc := range fieldCategories {
		if fc == c {
			out = append(out, f)
		}
	}
	return out
}

// fieldOrder is the display order of every shipment field, mutable
// and derived, grouped by lifecycle.
var fieldOrder = []string{
	"client_name", "currency", "origin", "destination",
	"cargo_description", "transport_mode", "incoterm", "enquiry_notes",
	"pricing_owner", "carrier", "buy_rate", "sell_rate",
	"quote_amount", "quote_validity",
	"ops_owner", "booking_number", "vessel_voyage", "etd", "eta",
	"do_release_date", "invoice_number", "invoice_amount",
	"carrier_cost", "agent_fees", "duty_amount",
	"payment_collected", "payment_date", "collection_notes",
	"client_remarks",
	"total_invoice_amount", "total_profit", "completed_at",
}

// AllFields returns every shipment field in display order.
func AllFields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}
