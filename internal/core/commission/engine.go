package commission

// TierPortion itemizes how much of the gross profit fell into one
// bracket and what it earned.
type TierPortion struct {
	Min        float64
	Max        *float64
	Portion    float64
	Percentage float64
	Amount     float64
}

// Breakdown is the result of a commission computation. Commission may
// be negative under gp_minus_salary; it is surfaced as-is.
type Breakdown struct {
	Salesperson string
	RuleType    RuleType
	GrossProfit float64
	// AdjustedGP is GrossProfit minus the salary deduction; equal to
	// GrossProfit for the other formula types.
	AdjustedGP float64
	Commission float64
	// Portions itemizes bracket earnings for tiered rules.
	Portions []TierPortion
}

// Calculate evaluates a rule against a shipment's realized gross
// profit. salary is the salesperson's salary input, used only by
// gp_minus_salary. The function is total: an unrecognized rule type
// computes a flat FallbackPercentage instead of failing.
func Calculate(rule Rule, grossProfit, salary float64) Breakdown {
	switch rule.Type {
	case FlatPercentage:
		return flat(rule.Salesperson, FlatPercentage, rule.Percentage, grossProfit)
	case GPMinusSalary:
		adjusted := grossProfit - rule.SalaryMultiplier*salary
		return Breakdown{
			Salesperson: rule.Salesperson,
			RuleType:    GPMinusSalary,
			GrossProfit: grossProfit,
			AdjustedGP:  adjusted,
			Commission:  adjusted * rule.Percentage / 100,
		}
	case Tiered:
		return tiered(rule, grossProfit)
	default:
		return flat(rule.Salesperson, rule.Type, FallbackPercentage, grossProfit)
	}
}

func flat(salesperson string, ruleType RuleType, percentage, grossProfit float64) Breakdown {
	return Breakdown{
		Salesperson: salesperson,
		RuleType:    ruleType,
		GrossProfit: grossProfit,
		AdjustedGP:  grossProfit,
		Commission:  grossProfit * percentage / 100,
	}
}

// tiered computes progressive bracket commission: each [min, max)
// slice of profit earns its own rate, not the top bracket's rate on
// the whole amount.
func tiered(rule Rule, grossProfit float64) Breakdown {
	b := Breakdown{
		Salesperson: rule.Salesperson,
		RuleType:    Tiered,
		GrossProfit: grossProfit,
		AdjustedGP:  grossProfit,
	}
	for _, tier := range rule.Tiers {
		if grossProfit <= tier.Min {
			break
		}
		upper := grossProfit
		if tier.Max != nil && *tier.Max < upper {
			upper = *tier.Max
		}
		portion := upper - tier.Min
		amount := portion * tier.Percentage / 100
		b.Portions = append(b.Portions, TierPortion{
			Min:        tier.Min,
			Max:        tier.Max,
			Portion:    portion,
			Percentage: tier.Percentage,
			Amount:     amount,
		})
		b.Commission += amount
	}
	return b
}
