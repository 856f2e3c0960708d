package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `End the current session.

The server is notified best-effort; the local session is cleared even when
the server cannot be reached.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := session.Logout(context.Background(), a.auth, a.store); err != nil {
		return err
	}

	printer.Success("Logged out\n")
	return nil
}
