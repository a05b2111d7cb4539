package commission

import "sort"

// ShipmentCommission is one shipment's computed commission together
// with its collection state.
type ShipmentCommission struct {
	ShipmentID       string
	Salesperson      string
	GrossProfit      float64
	Commission       float64
	PaymentCollected bool
}

// SalespersonTotal sums a salesperson's commissions, split into
// realized (payment collected) and pending. Commission is reportable
// before cash arrives, but earned-and-paid amounts must stay
// distinguishable.
type SalespersonTotal struct {
	Salesperson string
	Realized    float64
	Pending     float64
	Shipments   int
}

// Total returns realized plus pending commission.
func (t SalespersonTotal) Total() float64 {
	return t.Realized + t.Pending
}

// Aggregate sums shipment commissions per salesperson, ordered by
// salesperson name.
func Aggregate(items []ShipmentCommission) []SalespersonTotal {
	byName := make(map[string]*SalespersonTotal)
	for _, item := range items {
		total, ok := byName[item.Salesperson]
		if !ok {
			total = &SalespersonTotal{Salesperson: item.Salesperson}
			byName[item.Salesperson] = total
		}
		if item.PaymentCollected {
			total.Realized += item.Commission
		} else {
			total.Pending += item.Commission
		}
		total.Shipments++
	}

	out := make([]SalespersonTotal, 0, len(byName))
	for _, total := range byName {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Salesperson < out[j].Salesperson })
	return out
}
