package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/freightdesk/internal/ports/primary"
)

// mockShipmentService implements primary.ShipmentService for testing.
type mockShipmentService struct {
	createLeadFn    func(ctx context.Context, req primary.CreateLeadRequest) (*primary.Shipment, error)
	getShipmentFn   func(ctx context.Context, shipmentID string) (*primary.Shipment, error)
	listShipmentsFn func(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error)
	fieldViewsFn    func(ctx context.Context, shipmentID string) ([]primary.FieldView, error)
	updateFieldsFn  func(ctx context.Context, shipmentID string, fields map[string]string) error
	advanceFn       func(ctx context.Context, shipmentID string) (*primary.Shipment, error)
	revertFn        func(ctx context.Context, shipmentID string) (*primary.Shipment, error)
	markLostFn      func(ctx context.Context, shipmentID string) error
	reopenFn        func(ctx context.Context, shipmentID string) error
	claimFn         func(ctx context.Context, shipmentID string) error
	lockStatusFn    func(ctx context.Context, shipmentID string) (*primary.LockInfo, error)
	forceReleaseFn  func(ctx context.Context, shipmentID string) error
}

func (m *mockShipmentService) CreateLead(ctx context.Context, req primary.CreateLeadRequest) (*primary.Shipment, error) {
	return m.createLeadFn(ctx, req)
}
func (m *mockShipmentService) GetShipment(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	return m.getShipmentFn(ctx, shipmentID)
}
func (m *mockShipmentService) ListShipments(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
	return m.listShipmentsFn(ctx, filters)
}
func (m *mockShipmentService) FieldViews(ctx context.Context, shipmentID string) ([]primary.FieldView, error) {
	return m.fieldViewsFn(ctx, shipmentID)
}
func (m *mockShipmentService) UpdateFields(ctx context.Context, shipmentID string, fields map[string]string) error {
	return m.updateFieldsFn(ctx, shipmentID, fields)
}
func (m *mockShipmentService) Advance(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	return m.advanceFn(ctx, shipmentID)
}
func (m *mockShipmentService) Revert(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
	return m.revertFn(ctx, shipmentID)
}
func (m *mockShipmentService) MarkLost(ctx context.Context, shipmentID string) error {
	return m.markLostFn(ctx, shipmentID)
}
func (m *mockShipmentService) Reopen(ctx context.Context, shipmentID string) error {
	return m.reopenFn(ctx, shipmentID)
}
func (m *mockShipmentService) Claim(ctx context.Context, shipmentID string) error {
	return m.claimFn(ctx, shipmentID)
}
func (m *mockShipmentService) LockStatus(ctx context.Context, shipmentID string) (*primary.LockInfo, error) {
	return m.lockStatusFn(ctx, shipmentID)
}
func (m *mockShipmentService) ForceReleaseLock(ctx context.Context, shipmentID string) error {
	return m.forceReleaseFn(ctx, shipmentID)
}

func TestShipmentListRendersTable(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		listShipmentsFn: func(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
			return []*primary.Shipment{
				{ID: "JOB-002", Stage: "pricing", ClientName: "Acme", Origin: "SGSIN",
					Destination: "NLRTM", Salesperson: "priya", QuoteAmount: 18500},
				{ID: "JOB-001", Stage: "lead", ClientName: "Globex", Salesperson: "dana", IsLost: true},
			}, nil
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	shipments, err := adapter.List(context.Background(), primary.ShipmentFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(shipments) != 2 {
		t.Fatalf("expected 2 shipments, got %d", len(shipments))
	}

	out := buf.String()
	for _, want := range []string{"JOB-002", "Acme", "priya", "18500.00", "lost"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestShipmentListEmpty(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		listShipmentsFn: func(ctx context.Context, filters primary.ShipmentFilters) ([]*primary.Shipment, error) {
			return nil, nil
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	if _, err := adapter.List(context.Background(), primary.ShipmentFilters{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No shipments found") {
		t.Errorf("expected empty-state hint, got:\n%s", buf.String())
	}
}

func TestShipmentShowFields(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		fieldViewsFn: func(ctx context.Context, shipmentID string) ([]primary.FieldView, error) {
			return []primary.FieldView{
				{Name: "booking_number", Value: "BK-1", Visible: true, Editable: true},
				{Name: "total_profit", Value: "4200", Visible: true, Editable: false,
					LockReason: "this value is calculated by the system"},
				{Name: "buy_rate", Visible: false},
			}, nil
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	if err := adapter.ShowFields(context.Background(), "JOB-001"); err != nil {
		t.Fatalf("ShowFields failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "booking_number") || !strings.Contains(out, "BK-1") {
		t.Errorf("expected editable field rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "calculated by the system") {
		t.Errorf("expected lock reason rendered, got:\n%s", out)
	}
	if strings.Contains(out, "buy_rate") {
		t.Errorf("hidden fields must not render, got:\n%s", out)
	}
}

func TestShipmentEditPropagatesError(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		updateFieldsFn: func(ctx context.Context, shipmentID string, fields map[string]string) error {
			return errors.New("this record is being edited by someone else (marco:s2)")
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	err := adapter.Edit(context.Background(), "JOB-001", map[string]string{"client_name": "X"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if strings.Contains(buf.String(), "✓") {
		t.Error("failed edit must not print success")
	}
}

func TestShipmentAdvance(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		advanceFn: func(ctx context.Context, shipmentID string) (*primary.Shipment, error) {
			return &primary.Shipment{ID: shipmentID, Stage: "pricing"}, nil
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	if err := adapter.Advance(context.Background(), "JOB-001"); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if !strings.Contains(buf.String(), "advanced to") {
		t.Errorf("expected advance confirmation, got:\n%s", buf.String())
	}
}

func TestShipmentLockStatus(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockShipmentService{
		lockStatusFn: func(ctx context.Context, shipmentID string) (*primary.LockInfo, error) {
			return &primary.LockInfo{
				ShipmentID: shipmentID, HolderID: "priya:s1",
				AcquiredAt: "2026-02-01T09:00:00Z",
			}, nil
		},
	}
	adapter := NewShipmentAdapter(mock, &buf)

	if err := adapter.LockStatus(context.Background(), "JOB-001"); err != nil {
		t.Fatalf("LockStatus failed: %v", err)
	}
	if !strings.Contains(buf.String(), "priya:s1") {
		t.Errorf("expected holder in output, got:\n%s", buf.String())
	}

	buf.Reset()
	mock.lockStatusFn = func(ctx context.Context, shipmentID string) (*primary.LockInfo, error) {
		return nil, nil
	}
	if err := adapter.LockStatus(context.Background(), "JOB-001"); err != nil {
		t.Fatalf("LockStatus failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No lock held") {
		t.Errorf("expected no-lock message, got:\n%s", buf.String())
	}
}
