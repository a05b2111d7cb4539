package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/freightdesk/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [user]",
		Short: "Start a session as the given user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			user, err := wire.UserService().GetUser(cmd.Context(), name)
			if err != nil {
				return err
			}
			if err := wire.Sessions().Login(user.Name, user.Roles); err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}
			fmt.Printf("✓ Logged in as %s (%s)\n", user.Name, user.Roles)
			return nil
		},
	}
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Sessions().Logout(); err != nil {
				return err
			}
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := wire.Sessions().Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", identity.Name, identity.Roles)
			return nil
		},
	}
}
