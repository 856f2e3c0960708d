package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/session"
	"github.com/searchcasa/scadmin/pkg/api"
)

var (
	loginEmail    string
	loginPassword string
	loginStaff    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Search Casa admin API",
	Long: `Log in to the Search Casa admin API and persist the session locally.

Login is a two-step handshake: a short-lived pre-auth token is fetched first
and used to sign the credentials request. Use --staff to log in as a staff
principal instead of an admin.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginStaff, "staff", false, "log in as a staff principal")
	loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password := loginPassword
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return printer.Error("Login failed", "Password cannot be empty.", nil)
	}

	creds := api.Credentials{Email: loginEmail, Password: password}

	var (
		result   *api.LoginResult
		userType = session.UserTypeAdmin
	)
	if loginStaff {
		userType = session.UserTypeStaff
		result, err = a.auth.StaffLogin(ctx, creds)
	} else {
		result, err = a.auth.Login(ctx, creds)
	}
	if err != nil {
		return printer.Error("Login failed", err.Error(), []string{
			"Check the email and password",
			"Check the API endpoint in your config",
		})
	}

	// The server's answer wins when it names the principal kind itself.
	if result.UserType != "" {
		userType = session.UserType(result.UserType)
	}

	// The auth service returns the token; persisting the session is this
	// command's job.
	sess := session.Session{
		Token:       result.Token,
		UserType:    userType,
		Permissions: result.Permissions,
		LoggedIn:    true,
	}
	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	printer.Success("Logged in as %s (%s)\n", loginEmail, userType)
	return nil
}
