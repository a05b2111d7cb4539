package stage

import (
	"fmt"
	"strings"

	"github.com/example/freightdesk/internal/core/role"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

func denied(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// advanceOwner maps each stage to the single role that owns the
// forward transition out of it. Admin always may advance.
var advanceOwner = map[Stage]role.Role{
	Lead:       role.Sales,
	Pricing:    role.Pricing,
	Operations: role.Ops,
}

// CanAdvance evaluates whether the given role set may advance a
// shipment out of current. Rules:
// - Admin may always advance (except out of completed).
// - Otherwise exactly the owning role of the forward edge may advance.
// - Nothing advances out of completed.
func CanAdvance(roles role.Set, current Stage) GuardResult {
	if current == Completed {
		return denied("shipment is completed; there is no further stage")
	}
	if roles.IsAdmin() {
		return allowed()
	}
	owner, ok := advanceOwner[current]
	if !ok {
		return denied("unknown stage %q", current)
	}
	if !roles.Has(owner) {
		return denied("moving a shipment from %s to %s requires the %s role", current, Next(current), owner)
	}
	return allowed()
}

// CanRevert evaluates whether the given role set may revert a shipment
// one step backward. Lead has no predecessor and never reverts. The
// owning role of the backward edge is the role that owns advancing
// into the current stage.
func CanRevert(roles role.Set, current Stage) GuardResult {
	prev := Previous(current)
	if prev == "" {
		return denied("a lead is already at the first stage")
	}
	if roles.IsAdmin() {
		return allowed()
	}
	owner := advanceOwner[prev]
	if !roles.Has(owner) {
		return denied("moving a shipment back from %s to %s requires the %s role", current, prev, owner)
	}
	return allowed()
}

// CompletionContext provides the required operational fields checked
// before a shipment may enter the completed stage. Zero values mean
// the field has not been filled in.
type CompletionContext struct {
	DOReleaseDate string
	InvoiceNumber string
	InvoiceAmount float64
}

// CanComplete evaluates the completion gate for operations → completed.
// The transition is refused atomically when any required field is
// missing; the reason lists every missing field, not just the first.
func CanComplete(ctx CompletionContext) GuardResult {
	var missing []string
	if strings.TrimSpace(ctx.DOReleaseDate) == "" {
		missing = append(missing, "DO release date")
	}
	if strings.TrimSpace(ctx.InvoiceNumber) == "" {
		missing = append(missing, "invoice number")
	}
	if ctx.InvoiceAmount == 0 {
		missing = append(missing, "invoice amount")
	}
	if len(missing) > 0 {
		return denied("cannot complete shipment: missing %s", strings.Join(missing, ", "))
	}
	return allowed()
}

// CanMarkLost evaluates whether a shipment may be flagged lost. Lost is
// an absorbing flag reachable from any stage except completed.
func CanMarkLost(current Stage) GuardResult {
	if current == Completed {
		return denied("a completed shipment cannot be marked lost")
	}
	return allowed()
}
