package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/ports/primary"
	"github.com/example/freightdesk/internal/wire"
)

// RuleCmd returns the rule command
func RuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage commission rules (admin only)",
	}

	setCmd := &cobra.Command{
		Use:   "set [salesperson]",
		Short: "Create or replace a commission rule",
		Long: `Create or replace the commission rule for a salesperson.

Examples:
  freightdesk rule set priya --type flat_percentage --percentage 6
  freightdesk rule set dana --type gp_minus_salary --percentage 10 --multiplier 1
  freightdesk rule set priya --type tiered --tier 0:10000:3 --tier 10000::5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleType, _ := cmd.Flags().GetString("type")
			percentage, _ := cmd.Flags().GetFloat64("percentage")
			multiplier, _ := cmd.Flags().GetFloat64("multiplier")
			tierSpecs, _ := cmd.Flags().GetStringArray("tier")

			tiers := make([]primary.TierSpec, 0, len(tierSpecs))
			for _, spec := range tierSpecs {
				tier, err := parseTier(spec)
				if err != nil {
					return err
				}
				tiers = append(tiers, tier)
			}

			return wire.RuleAdapter().Set(cmd.Context(), primary.SetRuleRequest{
				Salesperson:      args[0],
				RuleType:         ruleType,
				Percentage:       percentage,
				SalaryMultiplier: multiplier,
				Tiers:            tiers,
			})
		},
	}
	setCmd.Flags().String("type", "", "Rule type (flat_percentage, gp_minus_salary, tiered)")
	setCmd.Flags().Float64("percentage", 0, "Commission percentage")
	setCmd.Flags().Float64("multiplier", 1, "Salary multiplier for gp_minus_salary")
	setCmd.Flags().StringArray("tier", nil, "Tier bracket as min:max:percentage, empty max is open-ended")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List explicit commission rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RuleAdapter().List(cmd.Context())
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [salesperson]",
		Short: "Show the effective rule for a salesperson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RuleAdapter().Show(cmd.Context(), args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [salesperson]",
		Short: "Remove an explicit rule, reverting to the system default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RuleAdapter().Delete(cmd.Context(), args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import rules from a YAML file, all-or-nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open rule file: %w", err)
			}
			defer f.Close()
			return wire.RuleAdapter().Import(cmd.Context(), f)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all rules as YAML (stdout if no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create rule file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return wire.RuleAdapter().Export(cmd.Context(), out)
		},
	}

	defaultRateCmd := &cobra.Command{
		Use:   "default-rate [percentage]",
		Short: "Set the system default commission rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid percentage %q", args[0])
			}
			return wire.RuleAdapter().SetDefaultRate(cmd.Context(), rate)
		},
	}

	cmd.AddCommand(setCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	cmd.AddCommand(deleteCmd)
	cmd.AddCommand(importCmd)
	cmd.AddCommand(exportCmd)
	cmd.AddCommand(defaultRateCmd)
	return cmd
}

// parseTier parses a min:max:percentage bracket. An empty max means the
// bracket is open-ended.
func parseTier(spec string) (primary.TierSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return primary.TierSpec{}, fmt.Errorf("invalid tier %q, expected min:max:percentage", spec)
	}
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return primary.TierSpec{}, fmt.Errorf("invalid tier minimum %q", parts[0])
	}
	percentage, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return primary.TierSpec{}, fmt.Errorf("invalid tier percentage %q", parts[2])
	}
	tier := primary.TierSpec{Min: min, Percentage: percentage}
	if parts[1] != "" {
		max, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return primary.TierSpec{}, fmt.Errorf("invalid tier maximum %q", parts[1])
		}
		tier.Max = &max
	}
	return tier, nil
}
