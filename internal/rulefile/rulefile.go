// Package rulefile reads and writes commission rules as YAML, the
// exchange format for `rule import` and `rule export`.
package rulefile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/freightdesk/internal/ports/primary"
)

// File is the top-level YAML document.
type File struct {
	DefaultRate *float64 `yaml:"default_rate,omitempty"`
	Rules       []Rule   `yaml:"rules"`
}

// Rule is one commission rule in the file.
type Rule struct {
	Salesperson      string  `yaml:"salesperson"`
	Type             string  `yaml:"type"`
	Percentage       float64 `yaml:"percentage,omitempty"`
	SalaryMultiplier float64 `yaml:"salary_multiplier,omitempty"`
	Tiers            []Tier  `yaml:"tiers,omitempty"`
}

// Tier is one bracket of a tiered rule. A missing max means
// open-ended.
type Tier struct {
	Min        float64  `yaml:"min"`
	Max        *float64 `yaml:"max,omitempty"`
	Percentage float64  `yaml:"percentage"`
}

// Read parses a rule file.
func Read(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rule file contains no rules")
	}
	return &file, nil
}

// Write renders a rule file.
func Write(w io.Writer, file *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to write rule file: %w", err)
	}
	return enc.Close()
}

// Requests converts file rules to service requests.
func (f *File) Requests() []primary.SetRuleRequest {
	reqs := make([]primary.SetRuleRequest, len(f.Rules))
	for i, rule := range f.Rules {
		req := primary.SetRuleRequest{
			Salesperson:      rule.Salesperson,
			RuleType:         rule.Type,
			Percentage:       rule.Percentage,
			SalaryMultiplier: rule.SalaryMultiplier,
		}
		for _, tier := range rule.Tiers {
			req.Tiers = append(req.Tiers, primary.TierSpec{
				Min: tier.Min, Max: tier.Max, Percentage: tier.Percentage,
			})
		}
		reqs[i] = req
	}
	return reqs
}

// FromViews builds a file from rule views, for export.
func FromViews(views []*primary.RuleView, defaultRate float64) *File {
	file := &File{DefaultRate: &defaultRate}
	for _, view := range views {
		rule := Rule{
			Salesperson:      view.Salesperson,
			Type:             view.RuleType,
			Percentage:       view.Percentage,
			SalaryMultiplier: view.SalaryMultiplier,
		}
		for _, tier := range view.Tiers {
			rule.Tiers = append(rule.Tiers, Tier{
				Min: tier.Min, Max: tier.Max, Percentage: tier.Percentage,
			})
		}
		file.Rules = append(file.Rules, rule)
	}
	return file
}
