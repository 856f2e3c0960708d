package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	// Global flags
	cfgFile      string
	languageFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scadmin",
	Short: "scadmin - Search Casa platform administration",
	Long: `scadmin is the administration tool for the Search Casa real-estate
matching platform.

It manages matching rules (named rule sets of ordered comparator options),
subscription plans, and user accounts, and shows the platform metrics
dashboard. All operations go through the Search Casa admin REST API; a login
session is persisted locally and attached to every request.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.scadmin/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&languageFlag, "language", "", "language scope for matching-rule reads (default: from config)")
}
