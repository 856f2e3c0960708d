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

const permPlanManage = "plans.manage"

var (
	plansJSON        bool
	planName         string
	planPrice        float64
	planCurrency     string
	planInterval     string
	planYes          bool
	providerName     string
	providerPlanCode string
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage subscription plans and their payment providers",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscription plans",
	RunE:  runPlansList,
}

var plansGetCmd = &cobra.Command{
	Use:   "get <plan-id>",
	Short: "Show one subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansGet,
}

var plansCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a subscription plan",
	RunE:  runPlansCreate,
}

var plansUpdateCmd = &cobra.Command{
	Use:   "update <plan-id>",
	Short: "Update a subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansUpdate,
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansDelete,
}

var plansToggleCmd = &cobra.Command{
	Use:   "toggle <plan-id>",
	Short: "Flip a plan between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansToggle,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage the payment providers attached to a plan",
}

var providersListCmd = &cobra.Command{
	Use:   "list <plan-id>",
	Short: "List the payment providers on a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersList,
}

var providersAddCmd = &cobra.Command{
	Use:   "add <plan-id>",
	Short: "Attach a payment provider to a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersAdd,
}

var providersUpdateCmd = &cobra.Command{
	Use:   "update <plan-id> <provider-id>",
	Short: "Update a payment provider on a plan",
	Args:  cobra.ExactArgs(2),
	RunE:  runProvidersUpdate,
}

var providersRemoveCmd = &cobra.Command{
	Use:   "remove <plan-id> <provider-id>",
	Short: "Detach a payment provider from a plan",
	Args:  cobra.ExactArgs(2),
	RunE:  runProvidersRemove,
}

func init() {
	plansListCmd.Flags().BoolVar(&plansJSON, "json", false, "Output in JSON format")
	plansGetCmd.Flags().BoolVar(&plansJSON, "json", false, "Output in JSON format")
	plansCreateCmd.Flags().StringVar(&planName, "name", "", "plan name (required)")
	plansCreateCmd.Flags().Float64Var(&planPrice, "price", 0, "price per interval (required)")
	plansCreateCmd.Flags().StringVar(&planCurrency, "currency", "EUR", "ISO currency code")
	plansCreateCmd.Flags().StringVar(&planInterval, "interval", "month", "billing interval (month, year)")
	plansCreateCmd.MarkFlagRequired("name")
	plansCreateCmd.MarkFlagRequired("price")
	plansUpdateCmd.Flags().StringVar(&planName, "name", "", "new plan name")
	plansUpdateCmd.Flags().Float64Var(&planPrice, "price", -1, "new price per interval")
	plansDeleteCmd.Flags().BoolVarP(&planYes, "yes", "y", false, "skip the confirmation prompt")
	providersAddCmd.Flags().StringVar(&providerName, "name", "", "provider name, e.g. stripe (required)")
	providersAddCmd.Flags().StringVar(&providerPlanCode, "plan-code", "", "provider-side plan code (required)")
	providersAddCmd.MarkFlagRequired("name")
	providersAddCmd.MarkFlagRequired("plan-code")
	providersUpdateCmd.Flags().StringVar(&providerName, "name", "", "new provider name")
	providersUpdateCmd.Flags().StringVar(&providerPlanCode, "plan-code", "", "new provider-side plan code")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersAddCmd)
	providersCmd.AddCommand(providersUpdateCmd)
	providersCmd.AddCommand(providersRemoveCmd)

	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansGetCmd)
	plansCmd.AddCommand(plansCreateCmd)
	plansCmd.AddCommand(plansUpdateCmd)
	plansCmd.AddCommand(plansDeleteCmd)
	plansCmd.AddCommand(plansToggleCmd)
	plansCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(plansCmd)
}

func formatPlanTable(plans []api.Plan) {
	if len(plans) == 0 {
		printer.Info("No plans found\n")
		return
	}

	printer.Printf("%-10s %-24s %10s %-6s %-8s %-10s %s\n", "ID", "NAME", "PRICE", "CUR", "INTERVAL", "PROVIDERS", "ACTIVE")
	for _, p := range plans {
		printer.Printf("%-10.10s %-24.24s %10.2f %-6s %-8s %-10d %t\n",
			p.ID, p.Name, p.Price, p.Currency, p.Interval, len(p.Providers), p.Active)
	}
	printer.Printf("\n%d plans found\n", len(plans))
}

func runPlansList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	plans, err := a.admin.ListPlans(context.Background())
	if err != nil {
		return printer.Error("Failed to list plans", err.Error(), nil)
	}

	if plansJSON {
		return rules.FormatJSON(os.Stdout, plans)
	}
	formatPlanTable(plans)
	return nil
}

func runPlansGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	plan, err := a.admin.GetPlan(context.Background(), args[0])
	if err != nil {
		return printer.Error("Failed to load plan", err.Error(), nil)
	}
	return rules.FormatJSON(os.Stdout, plan)
}

func runPlansCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		payload := map[string]any{
			"name":     planName,
			"price":    planPrice,
			"currency": planCurrency,
			"interval": planInterval,
		}
		plan, err := a.admin.CreatePlan(context.Background(), payload)
		if err != nil {
			return printer.Error("Failed to create plan", err.Error(), nil)
		}
		printer.Success("Created plan %s (%s)\n", plan.Name, plan.ID)
		return nil
	})
}

func runPlansUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		payload := map[string]any{}
		if planName != "" {
			payload["name"] = planName
		}
		if planPrice >= 0 {
			payload["price"] = planPrice
		}
		if len(payload) == 0 {
			return printer.Error("Nothing to update", "Pass --name and/or --price.", nil)
		}

		plan, err := a.admin.UpdatePlan(context.Background(), args[0], payload)
		if err != nil {
			return printer.Error("Failed to update plan", err.Error(), nil)
		}
		printer.Success("Updated plan %s\n", plan.ID)
		return nil
	})
}

func runPlansDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		if !planYes && !confirm(fmt.Sprintf("Delete plan %s? This cannot be undone.", args[0])) {
			printer.Info("Aborted\n")
			return nil
		}
		if err := a.admin.DeletePlan(context.Background(), args[0]); err != nil {
			return printer.Error("Failed to delete plan", err.Error(), nil)
		}
		printer.Success("Deleted plan %s\n", args[0])
		return nil
	})
}

func runPlansToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		plan, err := a.admin.TogglePlan(context.Background(), args[0])
		if err != nil {
			return printer.Error("Failed to toggle plan", err.Error(), nil)
		}
		state := "inactive"
		if plan.Active {
			state = "active"
		}
		printer.Success("Plan %s is now %s\n", plan.ID, state)
		return nil
	})
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	providers, err := a.admin.ListProviders(context.Background(), args[0])
	if err != nil {
		return printer.Error("Failed to list providers", err.Error(), nil)
	}

	if len(providers) == 0 {
		printer.Info("No providers found\n")
		return nil
	}
	printer.Printf("%-10s %-16s %s\n", "ID", "NAME", "PLAN CODE")
	for _, p := range providers {
		printer.Printf("%-10.10s %-16.16s %s\n", p.ID, p.Name, p.PlanCode)
	}
	return nil
}

func runProvidersAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		payload := map[string]string{
			"name":     providerName,
			"planCode": providerPlanCode,
		}
		provider, err := a.admin.CreateProvider(context.Background(), args[0], payload)
		if err != nil {
			return printer.Error("Failed to attach provider", err.Error(), nil)
		}
		printer.Success("Attached provider %s to plan %s\n", provider.Name, args[0])
		return nil
	})
}

func runProvidersUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		payload := map[string]string{}
		if providerName != "" {
			payload["name"] = providerName
		}
		if providerPlanCode != "" {
			payload["planCode"] = providerPlanCode
		}
		if len(payload) == 0 {
			return printer.Error("Nothing to update", "Pass --name and/or --plan-code.", nil)
		}

		provider, err := a.admin.UpdateProvider(context.Background(), args[0], args[1], payload)
		if err != nil {
			return printer.Error("Failed to update provider", err.Error(), nil)
		}
		printer.Success("Updated provider %s\n", provider.ID)
		return nil
	})
}

func runProvidersRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permPlanManage, func() error {
		if err := a.admin.DeleteProvider(context.Background(), args[0], args[1]); err != nil {
			return printer.Error("Failed to detach provider", err.Error(), nil)
		}
		printer.Success("Detached provider %s from plan %s\n", args[1], args[0])
		return nil
	})
}
