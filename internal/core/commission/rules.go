// Package commission contains the pure business logic for salesperson
// commission computation. Formula evaluation is total: malformed or
// missing configuration falls back to a flat default rather than
// failing, so commission reports always render.
package commission

import "fmt"

// RuleType identifies a commission formula.
type RuleType string

const (
	// FlatPercentage applies a single rate to the whole gross profit.
	FlatPercentage RuleType = "flat_percentage"
	// GPMinusSalary deducts a salary multiple from gross profit before
	// applying the rate. The result is not clamped at zero.
	GPMinusSalary RuleType = "gp_minus_salary"
	// Tiered taxes marginal slices of gross profit at per-bracket
	// rates, like income tax brackets.
	Tiered RuleType = "tiered"
)

// FallbackPercentage is applied when a rule carries an unrecognized
// formula type.
const FallbackPercentage = 5.0

// Tier is one [Min, Max) bracket of a tiered rule. Max nil means
// open-ended; only the last tier may be open-ended.
type Tier struct {
	Min        float64  `json:"min"`
	Max        *float64 `json:"max"`
	Percentage float64  `json:"percentage"`
}

// Rule is a per-salesperson commission formula. Fields beyond Type are
// interpreted according to the type: Percentage for flat and
// gp-minus-salary, SalaryMultiplier for gp-minus-salary, Tiers for
// tiered.
type Rule struct {
	Salesperson      string
	Type             RuleType
	Percentage       float64
	SalaryMultiplier float64
	Tiers            []Tier
}

// DefaultRule synthesizes the implicit flat rule applied to a
// salesperson with no explicit rule.
func DefaultRule(salesperson string, defaultRate float64) Rule {
	return Rule{
		Salesperson: salesperson,
		Type:        FlatPercentage,
		Percentage:  defaultRate,
	}
}

// Resolve returns the explicit rule when present, else the implicit
// default.
func Resolve(explicit *Rule, salesperson string, defaultRate float64) Rule {
	if explicit != nil {
		return *explicit
	}
	return DefaultRule(salesperson, defaultRate)
}

// ValidateTiers checks that tiers form ordered, contiguous,
// non-overlapping [min, max) brackets with an open-ended last tier.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("a tiered rule needs at least one tier")
	}
	for i, tier := range tiers {
		last := i == len(tiers)-1
		if last {
			if tier.Max != nil {
				return fmt.Errorf("the last tier must be open-ended")
			}
			continue
		}
		if tier.Max == nil {
			return fmt.Errorf("tier %d is open-ended but is not the last tier", i+1)
		}
		if *tier.Max <= tier.Min {
			return fmt.Errorf("tier %d has max %.2f not above min %.2f", i+1, *tier.Max, tier.Min)
		}
		if next := tiers[i+1]; next.Min != *tier.Max {
			return fmt.Errorf("tier %d starts at %.2f but the previous tier ends at %.2f", i+2, next.Min, *tier.Max)
		}
	}
	return nil
}

// NormalizeTiers returns a copy with each tier's min pulled up to the
// previous tier's max and the last tier forced open-ended. This is the
// editor behavior: changing a max propagates into the next tier's min.
func NormalizeTiers(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	for i := range out {
		if i > 0 && out[i-1].Max != nil {
			out[i].Min = *out[i-1].Max
		}
		if i == len(out)-1 {
			out[i].Max = nil
		}
	}
	return out
}
