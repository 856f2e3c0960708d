package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/rules"
	"github.com/searchcasa/scadmin/pkg/api"
)

const permUserManage = "users.manage"

var (
	usersJSON    bool
	userName     string
	userEmail    string
	userPassword string
	userType     string
	userYes      bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE:  runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE:  runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var usersSetPasswordCmd = &cobra.Command{
	Use:   "set-password <user-id>",
	Short: "Set a new password for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersSetPassword,
}

var usersToggleCmd = &cobra.Command{
	Use:   "toggle <user-id>",
	Short: "Flip a user between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersToggle,
}

func init() {
	usersListCmd.Flags().BoolVar(&usersJSON, "json", false, "Output in JSON format")
	usersGetCmd.Flags().BoolVar(&usersJSON, "json", false, "Output in JSON format")
	usersCreateCmd.Flags().StringVar(&userName, "name", "", "display name (required)")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "email (required)")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password (required)")
	usersCreateCmd.Flags().StringVar(&userType, "type", "buyer", "user type (buyer, seller, agent)")
	usersCreateCmd.MarkFlagRequired("name")
	usersCreateCmd.MarkFlagRequired("email")
	usersCreateCmd.MarkFlagRequired("password")
	usersUpdateCmd.Flags().StringVar(&userName, "name", "", "new display name")
	usersUpdateCmd.Flags().StringVar(&userEmail, "email", "", "new email")
	usersDeleteCmd.Flags().BoolVarP(&userYes, "yes", "y", false, "skip the confirmation prompt")
	usersSetPasswordCmd.Flags().StringVar(&userPassword, "password", "", "new password (required)")
	usersSetPasswordCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersSetPasswordCmd)
	usersCmd.AddCommand(usersToggleCmd)
	rootCmd.AddCommand(usersCmd)
}

func formatUserTable(users []api.User) {
	if len(users) == 0 {
		printer.Info("No users found\n")
		return
	}

	printer.Printf("%-10s %-24s %-28s %-8s %s\n", "ID", "NAME", "EMAIL", "TYPE", "ACTIVE")
	for _, u := range users {
		printer.Printf("%-10.10s %-24.24s %-28.28s %-8s %t\n", u.ID, u.Name, u.Email, u.UserType, u.Active)
	}
	printer.Printf("\n%d users found\n", len(users))
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	users, err := a.admin.ListUsers(context.Background(), nil)
	if err != nil {
		return printer.Error("Failed to list users", err.Error(), nil)
	}

	if usersJSON {
		return rules.FormatJSON(os.Stdout, users)
	}
	formatUserTable(users)
	return nil
}

func runUsersGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	user, err := a.admin.GetUser(context.Background(), args[0])
	if err != nil {
		return printer.Error("Failed to load user", err.Error(), nil)
	}
	return rules.FormatJSON(os.Stdout, user)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permUserManage, func() error {
		payload := map[string]string{
			"name":     userName,
			"email":    userEmail,
			"password": userPassword,
			"userType": userType,
		}
		user, err := a.admin.CreateUser(context.Background(), payload)
		if err != nil {
			return printer.Error("Failed to create user", err.Error(), nil)
		}
		printer.Success("Created user %s (%s)\n", user.Email, user.ID)
		return nil
	})
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permUserManage, func() error {
		payload := map[string]string{}
		if userName != "" {
			payload["name"] = userName
		}
		if userEmail != "" {
			payload["email"] = userEmail
		}
		if len(payload) == 0 {
			return printer.Error("Nothing to update", "Pass --name and/or --email.", nil)
		}

		user, err := a.admin.UpdateUser(context.Background(), args[0], payload)
		if err != nil {
			return printer.Error("Failed to update user", err.Error(), nil)
		}
		printer.Success("Updated user %s\n", user.ID)
		return nil
	})
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permUserManage, func() error {
		if !userYes && !confirm(fmt.Sprintf("Delete user %s? This cannot be undone.", args[0])) {
			printer.Info("Aborted\n")
			return nil
		}
		if err := a.admin.DeleteUser(context.Background(), args[0]); err != nil {
			return printer.Error("Failed to delete user", err.Error(), nil)
		}
		printer.Success("Deleted user %s\n", args[0])
		return nil
	})
}

func runUsersSetPassword(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permUserManage, func() error {
		if err := a.admin.UpdateUserPassword(context.Background(), args[0], userPassword); err != nil {
			return printer.Error("Failed to set password", err.Error(), nil)
		}
		printer.Success("Password updated for user %s\n", args[0])
		return nil
	})
}

func runUsersToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permUserManage, func() error {
		user, err := a.admin.ToggleUserStatus(context.Background(), args[0])
		if err != nil {
			return printer.Error("Failed to toggle user status", err.Error(), nil)
		}
		state := "inactive"
		if user.Active {
			state = "active"
		}
		printer.Success("User %s is now %s\n", user.ID, state)
		return nil
	})
}
