package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchcasa/scadmin/internal/dashboard"
	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/rules"
)

var dashboardJSON bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the platform metrics dashboard",
	Long: `Show the platform metrics dashboard: overview counts, per-category
growth, revenue by payment platform, and the recent-activity feed.

The two stats endpoints are fetched concurrently. When either fails, a fixed
demo dataset is shown instead of an empty dashboard and the failure is
reported as a warning.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	loader := dashboard.NewLoader(a.admin)
	defer loader.Close()

	loader.Load(context.Background())
	data, errMsg, _ := loader.State()

	if errMsg != "" {
		printer.Warning("Live stats unavailable (%s); showing demo data\n\n", errMsg)
	}

	if dashboardJSON {
		return rules.FormatJSON(os.Stdout, data)
	}

	renderDashboard(data)
	return nil
}

func renderDashboard(d dashboard.Data) {
	printer.Println("Overview")
	printer.Printf("  Users:       %d (%d active)\n", d.TotalUsers, d.ActiveUsers)
	printer.Printf("  Properties:  %d\n", d.TotalProperties)
	printer.Printf("  Matches:     %d\n", d.TotalMatches)

	printer.Println()
	printer.Println("Growth")
	printer.Printf("  %-12s %10s %10s %9s\n", "CATEGORY", "CURRENT", "PREVIOUS", "GROWTH")
	renderGrowthRow("users", d.Growth.Users)
	renderGrowthRow("properties", d.Growth.Properties)
	renderGrowthRow("matches", d.Growth.Matches)
	renderGrowthRow("revenue", d.Growth.Revenue)

	printer.Println()
	printer.Printf("Revenue (total %.2f)\n", d.RevenueTotal)
	for _, p := range d.Platforms {
		printer.Printf("  %-12s %10.2f %5d tx %7.1f%%\n", p.Platform, p.Revenue, p.Transactions, p.Percentage)
	}

	if len(d.RecentActivity) > 0 {
		printer.Println()
		printer.Println("Recent activity")
		for _, act := range d.RecentActivity {
			printer.Printf("  [%s] %s\n", act.Type, act.Message)
		}
	}
}

func renderGrowthRow(name string, g dashboard.Growth) {
	printer.Printf("  %-12s %10.0f %10.0f %8.1f%%\n", name, g.Current, g.Previous, g.Percentage)
}
