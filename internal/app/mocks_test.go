package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/freightdesk/internal/ports/secondary"
)

// mockShipmentRepo is an in-memory ShipmentRepository.
type mockShipmentRepo struct {
	shipments map[string]*secondary.ShipmentRecord
	nextID    int
}

func newMockShipmentRepo() *mockShipmentRepo {
	return &mockShipmentRepo{shipments: make(map[string]*secondary.ShipmentRecord), nextID: 1}
}

func (m *mockShipmentRepo) Create(ctx context.Context, shipment *secondary.ShipmentRecord) error {
	if shipment.ID == "" || shipment.Stage == "" || shipment.Salesperson == "" {
		return fmt.Errorf("shipment must be pre-populated")
	}
	copied := *shipment
	copied.CreatedAt = "2026-01-01T00:00:00Z"
	m.shipments[shipment.ID] = &copied
	m.nextID++
	return nil
}

func (m *mockShipmentRepo) GetByID(ctx context.Context, id string) (*secondary.ShipmentRecord, error) {
	record, ok := m.shipments[id]
	if !ok {
		return nil, fmt.Errorf("shipment %s not found", id)
	}
	copied := *record
	return &copied, nil
}

func (m *mockShipmentRepo) List(ctx context.Context, filters secondary.ShipmentFilters) ([]*secondary.ShipmentRecord, error) {
	var ids []string
	for id := range m.shipments {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	var out []*secondary.ShipmentRecord
	for _, id := range ids {
		record := m.shipments[id]
		if filters.Stage != "" && record.Stage != filters.Stage {
			continue
		}
		if filters.Salesperson != "" && record.Salesperson != filters.Salesperson {
			continue
		}
		if filters.Lost != nil && record.IsLost != *filters.Lost {
			continue
		}
		copied := *record
		out = append(out, &copied)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockShipmentRepo) UpdateFields(ctx context.Context, id string, fields map[string]string) error {
	record, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	for name, value := range fields {
		if err := applyField(record, name, value); err != nil {
			return err
		}
	}
	record.TotalInvoiceAmount = record.InvoiceAmount
	record.TotalProfit = record.InvoiceAmount - record.CarrierCost - record.AgentFees - record.DutyAmount
	record.UpdatedAt = "2026-01-02T00:00:00Z"
	return nil
}

func (m *mockShipmentRepo) UpdateStage(ctx context.Context, id, stage, completedAt string, clearCompletedAt bool) error {
	record, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	record.Stage = stage
	if completedAt != "" {
		record.CompletedAt = completedAt
	}
	if clearCompletedAt {
		record.CompletedAt = ""
	}
	return nil
}

func (m *mockShipmentRepo) SetLost(ctx context.Context, id string, lost bool) error {
	record, ok := m.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s not found", id)
	}
	record.IsLost = lost
	return nil
}

func (m *mockShipmentRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("JOB-%03d", m.nextID), nil
}

func applyField(record *secondary.ShipmentRecord, name, value string) error {
	switch name {
	case "client_name":
		record.ClientName = value
	case "currency":
		record.Currency = value
	case "origin":
		record.Origin = value
	case "destination":
		record.Destination = value
	case "enquiry_notes":
		record.EnquiryNotes = value
	case "pricing_owner":
		record.PricingOwner = value
	case "ops_owner":
		record.OpsOwner = value
	case "carrier":
		record.Carrier = value
	case "quote_validity":
		record.QuoteValidity = value
	case "booking_number":
		record.BookingNumber = value
	case "do_release_date":
		record.DOReleaseDate = value
	case "invoice_number":
		record.InvoiceNumber = value
	case "payment_date":
		record.PaymentDate = value
	case "collection_notes":
		record.CollectionNotes = value
	case "client_remarks":
		record.ClientRemarks = value
	case "buy_rate", "sell_rate", "quote_amount", "invoice_amount",
		"carrier_cost", "agent_fees", "duty_amount":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("field %s wants a number, got %q", name, value)
		}
		switch name {
		case "buy_rate":
			record.BuyRate = f
		case "sell_rate":
			record.SellRate = f
		case "quote_amount":
			record.QuoteAmount = f
		case "invoice_amount":
			record.InvoiceAmount = f
		case "carrier_cost":
			record.CarrierCost = f
		case "agent_fees":
			record.AgentFees = f
		case "duty_amount":
			record.DutyAmount = f
		}
	case "payment_collected":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("field %s wants true or false, got %q", name, value)
		}
		record.PaymentCollected = b
	default:
		return fmt.Errorf("field %s is not writable", name)
	}
	return nil
}

// mockRuleRepo is an in-memory CommissionRuleRepository.
type mockRuleRepo struct {
	rules map[string]*secondary.CommissionRuleRecord
}

func newMockRuleRepo() *mockRuleRepo {
	return &mockRuleRepo{rules: make(map[string]*secondary.CommissionRuleRecord)}
}

func (m *mockRuleRepo) Upsert(ctx context.Context, rule *secondary.CommissionRuleRecord) error {
	copied := *rule
	m.rules[rule.Salesperson] = &copied
	return nil
}

func (m *mockRuleRepo) GetBySalesperson(ctx context.Context, salesperson string) (*secondary.CommissionRuleRecord, error) {
	record, ok := m.rules[salesperson]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *mockRuleRepo) List(ctx context.Context) ([]*secondary.CommissionRuleRecord, error) {
	var names []string
	for name := range m.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*secondary.CommissionRuleRecord, 0, len(names))
	for _, name := range names {
		copied := *m.rules[name]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockRuleRepo) Delete(ctx context.Context, salesperson string) error {
	delete(m.rules, salesperson)
	return nil
}

// mockUserRepo is an in-memory UserRepository.
type mockUserRepo struct {
	users map[string]*secondary.UserRecord
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*secondary.UserRecord)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *secondary.UserRecord) error {
	if user.Name == "" {
		return fmt.Errorf("user name must be set")
	}
	if _, exists := m.users[user.Name]; exists {
		return fmt.Errorf("user %s already exists", user.Name)
	}
	copied := *user
	m.users[user.Name] = &copied
	return nil
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*secondary.UserRecord, error) {
	record, ok := m.users[name]
	if !ok {
		return nil, fmt.Errorf("user %s not found", name)
	}
	copied := *record
	return &copied, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	var names []string
	for name := range m.users {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*secondary.UserRecord, 0, len(names))
	for _, name := range names {
		copied := *m.users[name]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUserRepo) UpdateRoles(ctx context.Context, name, roles string) error {
	record, ok := m.users[name]
	if !ok {
		return fmt.Errorf("user %s not found", name)
	}
	record.Roles = roles
	return nil
}

func (m *mockUserRepo) UpdateSalary(ctx context.Context, name string, salary float64) error {
	record, ok := m.users[name]
	if !ok {
		return fmt.Errorf("user %s not found", name)
	}
	record.Salary = salary
	return nil
}

// mockSettings is an in-memory SettingsRepository.
type mockSettings struct {
	values map[string]string
}

func newMockSettings() *mockSettings {
	return &mockSettings{values: make(map[string]string)}
}

func (m *mockSettings) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *mockSettings) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

// mockAudit records appended entries for assertions.
type mockAudit struct {
	entries []secondary.AuditEntry
}

func (m *mockAudit) Append(ctx context.Context, entry secondary.AuditEntry) error {
	entry.ID = int64(len(m.entries) + 1)
	entry.At = "2026-01-01T00:00:00Z"
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAudit) List(ctx context.Context, entity, entityID string, limit int) ([]secondary.AuditEntry, error) {
	var out []secondary.AuditEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if entity != "" && entry.Entity != entity {
			continue
		}
		if entityID != "" && entry.EntityID != entityID {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockAudit) lastAction() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.entries[len(m.entries)-1].Action
}

// mockIdentity is a swappable identity provider.
type mockIdentity struct {
	identity secondary.Identity
	err      error
}

func (m *mockIdentity) Current(ctx context.Context) (secondary.Identity, error) {
	if m.err != nil {
		return secondary.Identity{}, m.err
	}
	return m.identity, nil
}
