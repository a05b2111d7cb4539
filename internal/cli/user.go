package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/wire"
)

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their roles",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rolesFlag, _ := cmd.Flags().GetString("roles")
			salary, _ := cmd.Flags().GetFloat64("salary")
			roles, err := role.Parse(rolesFlag)
			if err != nil {
				return err
			}
			return wire.UserAdapter().Add(cmd.Context(), args[0], roles, salary)
		},
	}
	addCmd.Flags().String("roles", "", "Comma-separated roles (admin, sales, pricing, ops, collections, finance)")
	addCmd.Flags().Float64("salary", 0, "Monthly salary input for commission rules")
	if err := addCmd.MarkFlagRequired("roles"); err != nil {
		panic(err)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UserAdapter().List(cmd.Context())
		},
	}

	setRolesCmd := &cobra.Command{
		Use:   "set-roles [name] [roles]",
		Short: "Replace a user's roles (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := role.Parse(args[1])
			if err != nil {
				return err
			}
			return wire.UserAdapter().SetRoles(cmd.Context(), args[0], roles)
		},
	}

	setSalaryCmd := &cobra.Command{
		Use:   "set-salary [name] [amount]",
		Short: "Set a user's salary input (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid salary %q", args[1])
			}
			return wire.UserAdapter().SetSalary(cmd.Context(), args[0], salary)
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(setRolesCmd)
	cmd.AddCommand(setSalaryCmd)
	return cmd
}
