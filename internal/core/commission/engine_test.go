package commission

import (
	"math"
	"testing"
)

func fptr(f float64) *float64 { return &f }

// canonicalTiers is the three-bracket set used across tests:
// [0, 10000) at 3%, [10000, 25000) at 5%, [25000, ∞) at 7%.
func canonicalTiers() []Tier {
	return []Tier{
		{Min: 0, Max: fptr(10000), Percentage: 3},
		{Min: 10000, Max: fptr(25000), Percentage: 5},
		{Min: 25000, Max: nil, Percentage: 7},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateFlatPercentage(t *testing.T) {
	rule := Rule{Salesperson: "priya", Type: FlatPercentage, Percentage: 4}

	b := Calculate(rule, 12500, 0)
	if !almostEqual(b.Commission, 500) {
		t.Errorf("Commission = %v, want 500", b.Commission)
	}
	if b.RuleType != FlatPercentage {
		t.Errorf("RuleType = %v, want flat_percentage", b.RuleType)
	}
	if !almostEqual(b.AdjustedGP, 12500) {
		t.Errorf("AdjustedGP = %v, want 12500", b.AdjustedGP)
	}
}

func TestCalculateGPMinusSalary(t *testing.T) {
	rule := Rule{Salesperson: "marco", Type: GPMinusSalary, Percentage: 10, SalaryMultiplier: 2}

	b := Calculate(rule, 20000, 4000)
	if !almostEqual(b.AdjustedGP, 12000) {
		t.Errorf("AdjustedGP = %v, want 12000", b.AdjustedGP)
	}
	if !almostEqual(b.Commission, 1200) {
		t.Errorf("Commission = %v, want 1200", b.Commission)
	}
}

// A salary exceeding profit yields a negative commission, surfaced
// as-is rather than clamped.
func TestCalculateGPMinusSalaryNegative(t *testing.T) {
	rule := Rule{Salesperson: "marco", Type: GPMinusSalary, Percentage: 10, SalaryMultiplier: 3}

	b := Calculate(rule, 5000, 4000)
	if !almostEqual(b.AdjustedGP, -7000) {
		t.Errorf("AdjustedGP = %v, want -7000", b.AdjustedGP)
	}
	if !almostEqual(b.Commission, -700) {
		t.Errorf("Commission = %v, want -700", b.Commission)
	}
}

// Tiered commission is marginal: each bracket's slice earns that
// bracket's rate, confirming this is not flat-top-rate computation.
func TestCalculateTiered(t *testing.T) {
	rule := Rule{Salesperson: "priya", Type: Tiered, Tiers: canonicalTiers()}

	tests := []struct {
		name         string
		grossProfit  float64
		want         float64
		wantPortions int
	}{
		{name: "all in first bracket", grossProfit: 10000, want: 300, wantPortions: 1},
		{name: "spans two brackets", grossProfit: 20000, want: 800, wantPortions: 2},
		{name: "spans all brackets", grossProfit: 30000, want: 300 + 750 + 350, wantPortions: 3},
		{name: "exactly at second boundary", grossProfit: 25000, want: 300 + 750, wantPortions: 2},
		{name: "zero profit", grossProfit: 0, want: 0, wantPortions: 0},
		{name: "negative profit earns nothing", grossProfit: -500, want: 0, wantPortions: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(rule, tt.grossProfit, 0)
			if !almostEqual(b.Commission, tt.want) {
				t.Errorf("Calculate(%v) Commission = %v, want %v", tt.grossProfit, b.Commission, tt.want)
			}
			if len(b.Portions) != tt.wantPortions {
				t.Errorf("Calculate(%v) portions = %d, want %d", tt.grossProfit, len(b.Portions), tt.wantPortions)
			}
		})
	}
}

func TestCalculateTieredPortionItemization(t *testing.T) {
	rule := Rule{Salesperson: "priya", Type: Tiered, Tiers: canonicalTiers()}

	b := Calculate(rule, 20000, 0)
	if len(b.Portions) != 2 {
		t.Fatalf("portions = %d, want 2", len(b.Portions))
	}
	if !almostEqual(b.Portions[0].Portion, 10000) || !almostEqual(b.Portions[0].Amount, 300) {
		t.Errorf("first portion = %+v, want portion 10000 amount 300", b.Portions[0])
	}
	if !almostEqual(b.Portions[1].Portion, 10000) || !almostEqual(b.Portions[1].Amount, 500) {
		t.Errorf("second portion = %+v, want portion 10000 amount 500", b.Portions[1])
	}
}

// An unrecognized formula type computes a flat 5% instead of failing.
func TestCalculateUnknownRuleTypeFallsBack(t *testing.T) {
	rule := Rule{Salesperson: "priya", Type: RuleType("percentage_of_moon"), Percentage: 42}

	b := Calculate(rule, 10000, 0)
	if !almostEqual(b.Commission, 500) {
		t.Errorf("Commission = %v, want 500 (flat %v%% fallback)", b.Commission, FallbackPercentage)
	}
}

// A salesperson with no explicit rule and a system default of 4%
// earns exactly what an explicit flat 4% rule would pay.
func TestResolveDefaultFallback(t *testing.T) {
	implicit := Resolve(nil, "dana", 4)
	explicit := Resolve(&Rule{Salesperson: "dana", Type: FlatPercentage, Percentage: 4}, "dana", 9)

	for _, gp := range []float64{0, 1000, 12500, 99999} {
		got := Calculate(implicit, gp, 0).Commission
		want := Calculate(explicit, gp, 0).Commission
		if !almostEqual(got, want) {
			t.Errorf("gp %v: implicit %v != explicit %v", gp, got, want)
		}
		if !almostEqual(got, 0.04*gp) {
			t.Errorf("gp %v: commission = %v, want %v", gp, got, 0.04*gp)
		}
	}
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []Tier
		wantErr bool
	}{
		{name: "canonical set valid", tiers: canonicalTiers()},
		{name: "single open-ended tier valid", tiers: []Tier{{Min: 0, Max: nil, Percentage: 5}}},
		{name: "empty set invalid", tiers: nil, wantErr: true},
		{
			name: "last tier must be open-ended",
			tiers: []Tier{
				{Min: 0, Max: fptr(10000), Percentage: 3},
				{Min: 10000, Max: fptr(25000), Percentage: 5},
			},
			wantErr: true,
		},
		{
			name: "gap between tiers invalid",
			tiers: []Tier{
				{Min: 0, Max: fptr(10000), Percentage: 3},
				{Min: 12000, Max: nil, Percentage: 5},
			},
			wantErr: true,
		},
		{
			name: "inverted bracket invalid",
			tiers: []Tier{
				{Min: 10000, Max: fptr(5000), Percentage: 3},
				{Min: 5000, Max: nil, Percentage: 5},
			},
			wantErr: true,
		},
		{
			name: "open-ended tier in the middle invalid",
			tiers: []Tier{
				{Min: 0, Max: nil, Percentage: 3},
				{Min: 10000, Max: nil, Percentage: 5},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTiers() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// A changed max propagates into the next tier's min, and the last tier
// is forced open-ended.
func TestNormalizeTiers(t *testing.T) {
	tiers := []Tier{
		{Min: 0, Max: fptr(12000), Percentage: 3},
		{Min: 10000, Max: fptr(25000), Percentage: 5},
		{Min: 25000, Max: fptr(99999), Percentage: 7},
	}

	normalized := NormalizeTiers(tiers)
	if normalized[1].Min != 12000 {
		t.Errorf("second tier min = %v, want 12000", normalized[1].Min)
	}
	if normalized[2].Min != 25000 {
		t.Errorf("third tier min = %v, want 25000", normalized[2].Min)
	}
	if normalized[2].Max != nil {
		t.Errorf("last tier max = %v, want open-ended", *normalized[2].Max)
	}
	if err := ValidateTiers(normalized); err != nil {
		t.Errorf("normalized tiers invalid: %v", err)
	}
	// Input is untouched.
	if tiers[1].Min != 10000 {
		t.Errorf("NormalizeTiers mutated its input: %v", tiers[1].Min)
	}
}
