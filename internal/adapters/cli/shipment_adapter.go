// Package cli contains thin adapters translating CLI operations to
// service calls and rendering the results. Adapters depend only on the
// primary port interfaces, enabling easy testing with mocks.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/freightdesk/internal/ports/primary"
)

var (
	stageColors = map[string]*color.Color{
		"lead":       color.New(color.FgCyan),
		"pricing":    color.New(color.FgYellow),
		"operations": color.New(color.FgBlue),
		"completed":  color.New(color.FgGreen),
	}
	lostColor   = color.New(color.FgRed)
	lockedColor = color.New(color.FgHiBlack)
)

// renderStage colors a stage name, with lost overriding the stage.
func renderStage(stage string, isLost bool) string {
	if isLost {
		return lostColor.Sprintf("%s (lost)", stage)
	}
	if c, ok := stageColors[stage]; ok {
		return c.Sprint(stage)
	}
	return stage
}

// ShipmentAdapter translates shipment CLI operations to
// ShipmentService calls.
type ShipmentAdapter struct {
	service primary.ShipmentService
	out     io.Writer
}

// NewShipmentAdapter creates a new ShipmentAdapter.
func NewShipmentAdapter(service primary.ShipmentService, out io.Writer) *ShipmentAdapter {
	return &ShipmentAdapter{service: service, out: out}
}

// CreateLead creates a new lead and prints its ID.
func (a *ShipmentAdapter) CreateLead(ctx context.Context, req primary.CreateLeadRequest) (*primary.Shipment, error) {
	shipment, err := a.service.CreateLead(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Lead %s created for %s\n", shipment.ID, shipment.ClientName)
	return shipment, nil
}

// List lists shipments with optional filters.
func (a *ShipmentAdapter) List(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
	shipments, err := a.service.ListShipments(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	if len(shipments) == 0 {
		fmt.Fprintln(a.out, "No shipments found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first lead:")
		fmt.Fprintln(a.out, "  freightdesk lead create \"Acme Trading\" --origin SGSIN --destination NLRTM")
		return shipments, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSTAGE\tCLIENT\tROUTE\tSALES\tQUOTE")
	fmt.Fprintln(w, "--\t-----\t------\t-----\t-----\t-----")
	for _, s := range shipments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s → %s\t%s\t%.2f\n",
			s.ID,
			renderStage(s.Stage, s.IsLost),
			s.ClientName,
			s.Origin, s.Destination,
			s.Salesperson,
			s.QuoteAmount,
		)
	}
	w.Flush()
	return shipments, nil
}

// Show displays details for a single shipment.
func (a *ShipmentAdapter) Show(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	s, err := a.service.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nShipment: %s\n", s.ID)
	fmt.Fprintf(a.out, "Stage:    %s\n", renderStage(s.Stage, s.IsLost))
	fmt.Fprintf(a.out, "Client:   %s\n", s.ClientName)
	fmt.Fprintf(a.out, "Route:    %s → %s\n", s.Origin, s.Destination)
	fmt.Fprintf(a.out, "Sales:    %s\n", s.Salesperson)
	if s.PricingOwner != "" {
		fmt.Fprintf(a.out, "Pricing:  %s\n", s.PricingOwner)
	}
	if s.OpsOwner != "" {
		fmt.Fprintf(a.out, "Ops:      %s\n", s.OpsOwner)
	}
	if s.InvoiceNumber != "" {
		fmt.Fprintf(a.out, "Invoice:  %s (%.2f %s)\n", s.InvoiceNumber, s.InvoiceAmount, s.Currency)
	}
	if s.CompletedAt != "" {
		fmt.Fprintf(a.out, "Completed: %s\n", s.CompletedAt)
	}
	fmt.Fprintf(a.out, "Created:  %s\n", s.CreatedAt)
	fmt.Fprintln(a.out)
	return s, nil
}

// ShowFields renders every field with the acting user's visibility and
// editability. Non-editable fields carry their lock reason.
func (a *ShipmentAdapter) ShowFields(ctx context.Context, shipmentID string) error {
	views, err := a.service.FieldViews(ctx, shipmentID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FIELD\tVALUE\tEDIT\tNOTE")
	fmt.Fprintln(w, "-----\t-----\t----\t----")
	for _, v := range views {
		if !v.Visible {
			continue
		}
		edit := "yes"
		note := ""
		if !v.Editable {
			edit = "no"
			note = lockedColor.Sprint(v.LockReason)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, v.Value, edit, note)
	}
	w.Flush()
	return nil
}

// Edit applies field updates to a shipment.
func (a *ShipmentAdapter) Edit(ctx context.Context, shipmentID string, fields map[string]string) error {
	if err := a.service.UpdateFields(ctx, shipmentID, fields); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s updated (%d field(s))\n", shipmentID, len(fields))
	return nil
}

// Advance moves a shipment to the next stage.
func (a *ShipmentAdapter) Advance(ctx context.Context, shipmentID string) error {
	s, err := a.service.Advance(ctx, shipmentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s advanced to %s\n", s.ID, renderStage(s.Stage, s.IsLost))
	return nil
}

// Revert moves a shipment one stage backward.
func (a *ShipmentAdapter) Revert(ctx context.Context, shipmentID string) error {
	s, err := a.service.Revert(ctx, shipmentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s reverted to %s\n", s.ID, renderStage(s.Stage, s.IsLost))
	return nil
}

// Lose marks a shipment as lost.
func (a *ShipmentAdapter) Lose(ctx context.Context, shipmentID string) error {
	if err := a.service.MarkLost(ctx, shipmentID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s marked %s\n", shipmentID, lostColor.Sprint("lost"))
	return nil
}

// Reopen clears the lost flag.
func (a *ShipmentAdapter) Reopen(ctx context.Context, shipmentID string) error {
	if err := a.service.Reopen(ctx, shipmentID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s reopened\n", shipmentID)
	return nil
}

// Claim assigns the acting user as the owner for the current stage.
func (a *ShipmentAdapter) Claim(ctx context.Context, shipmentID string) error {
	if err := a.service.Claim(ctx, shipmentID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Shipment %s claimed\n", shipmentID)
	return nil
}

// LockStatus prints the current edit lock, if any.
func (a *ShipmentAdapter) LockStatus(ctx context.Context, shipmentID string) error {
	info, err := a.service.LockStatus(ctx, shipmentID)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintf(a.out, "No lock held on %s\n", shipmentID)
		return nil
	}
	fmt.Fprintf(a.out, "Shipment %s is locked by %s since %s\n",
		info.ShipmentID, info.HolderID, info.AcquiredAt)
	return nil
}

// ForceRelease clears the edit lock regardless of holder.
func (a *ShipmentAdapter) ForceRelease(ctx context.Context, shipmentID string) error {
	if err := a.service.ForceReleaseLock(ctx, shipmentID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Lock on %s released\n", shipmentID)
	return nil
}
