package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/searchcasa/scadmin/internal/printer"
	"github.com/searchcasa/scadmin/internal/resolver"
	"github.com/searchcasa/scadmin/internal/rules"
)

// Permissions guarding the mutating rule operations.
const (
	permRuleCreate = "rules.create"
	permRuleUpdate = "rules.update"
	permRuleDelete = "rules.delete"
)

var (
	rulesJSON    bool
	ruleFilePath string
	ruleYes      bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage matching rules",
	Long: `Manage matching rules: named rule sets of ordered comparator options
used to evaluate property/user matches.

Rules are always read in the scope of one language (--language); the same
rule can carry different option sets per language. Every mutation reloads
the list from the server - nothing is patched locally.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List matching rules for the current language",
	RunE:  runRulesList,
}

var rulesGetCmd = &cobra.Command{
	Use:   "get <rule-id>",
	Short: "Show one matching rule with its options",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesGet,
}

var rulesCreateCmd = &cobra.Command{
	Use:   "create -f <rule.yaml>",
	Short: "Create a matching rule from a rule definition file",
	RunE:  runRulesCreate,
}

var rulesEditCmd = &cobra.Command{
	Use:   "edit <rule-id> -f <rule.yaml>",
	Short: "Replace a matching rule from a rule definition file",
	Long: `Replace a matching rule from a rule definition file.

The rule is fetched first (scoped to the current language), then the file's
name, description, and options are applied over it and the whole form is
submitted as one full-replace update.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesEdit,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a matching rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

func init() {
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output in JSON format")
	rulesGetCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output in JSON format")
	rulesCreateCmd.Flags().StringVarP(&ruleFilePath, "file", "f", "", "rule definition file (required)")
	rulesCreateCmd.MarkFlagRequired("file")
	rulesEditCmd.Flags().StringVarP(&ruleFilePath, "file", "f", "", "rule definition file (required)")
	rulesEditCmd.MarkFlagRequired("file")
	rulesDeleteCmd.Flags().BoolVarP(&ruleYes, "yes", "y", false, "skip the confirmation prompt")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesGetCmd)
	rulesCmd.AddCommand(rulesCreateCmd)
	rulesCmd.AddCommand(rulesEditCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	controller := rules.NewListController(a.admin, a.language(), nil)
	defer controller.Close()
	controller.Load(ctx)

	state, ruleList, errMsg := controller.State()
	if state == rules.StateError {
		return printer.Error("Failed to load matching rules", errMsg, []string{
			"Check the API endpoint in your config",
			"Log in again if the session expired",
		})
	}

	if rulesJSON {
		return rules.FormatJSON(os.Stdout, ruleList)
	}
	rules.FormatTable(os.Stdout, ruleList, controller.Language())
	return nil
}

func runRulesGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.resolveRuleID(ctx, args[0])
	if err != nil {
		return err
	}

	rule, err := a.admin.GetRule(ctx, id, a.language())
	if err != nil {
		return printer.Error("Failed to load matching rule", err.Error(), nil)
	}

	if rulesJSON {
		return rules.FormatJSON(os.Stdout, rule)
	}
	rules.FormatDetail(os.Stdout, rule)
	return nil
}

func runRulesCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permRuleCreate, func() error {
		rf, err := parseRuleFile(ruleFilePath)
		if err != nil {
			return err
		}

		controller := rules.NewListController(a.admin, a.language(), nil)
		defer controller.Close()

		editor := rules.NewEditor(a.admin, a.language(), rules.WithReload(func(ctx context.Context) error {
			controller.Load(ctx)
			return nil
		}))
		if err := applyRuleFile(editor, rf); err != nil {
			return err
		}
		if err := editor.Validate(); err != nil {
			return printer.Error("Invalid rule definition", err.Error(), nil)
		}

		rule, err := editor.Submit(ctx)
		if err != nil {
			return printer.Error("Failed to create matching rule", err.Error(), []string{
				"Fix the rule definition and retry; nothing was saved",
			})
		}

		printer.Success("Created matching rule %s (%s)\n\n", rule.Name, rule.ID)
		_, ruleList, _ := controller.State()
		rules.FormatTable(os.Stdout, ruleList, controller.Language())
		return nil
	})
}

func runRulesEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permRuleUpdate, func() error {
		rf, err := parseRuleFile(ruleFilePath)
		if err != nil {
			return err
		}

		id, err := a.resolveRuleID(ctx, args[0])
		if err != nil {
			return err
		}

		controller := rules.NewListController(a.admin, a.language(), nil)
		defer controller.Close()

		editor := rules.NewEditor(a.admin, a.language(), rules.WithReload(func(ctx context.Context) error {
			controller.Load(ctx)
			return nil
		}))
		if err := editor.LoadRule(ctx, id); err != nil {
			return printer.Error("Failed to load matching rule", err.Error(), nil)
		}
		if err := applyRuleFile(editor, rf); err != nil {
			return err
		}
		if err := editor.Validate(); err != nil {
			return printer.Error("Invalid rule definition", err.Error(), nil)
		}

		rule, err := editor.Submit(ctx)
		if err != nil {
			return printer.Error("Failed to update matching rule", err.Error(), []string{
				"Fix the rule definition and retry; the rule is unchanged",
			})
		}

		printer.Success("Updated matching rule %s\n", rule.ID)
		return nil
	})
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}

	return a.gated(permRuleDelete, func() error {
		id, err := a.resolveRuleID(ctx, args[0])
		if err != nil {
			return err
		}

		confirmed := ruleYes
		if !confirmed {
			confirmed = confirm(fmt.Sprintf("Delete matching rule %s? This cannot be undone.", id))
		}
		if !confirmed {
			printer.Info("Aborted\n")
			return nil
		}

		controller := rules.NewListController(a.admin, a.language(), nil)
		defer controller.Close()

		if err := controller.Delete(ctx, id, confirmed); err != nil {
			return printer.Error("Failed to delete matching rule", err.Error(), nil)
		}

		printer.Success("Deleted matching rule %s\n\n", id)
		_, ruleList, _ := controller.State()
		rules.FormatTable(os.Stdout, ruleList, controller.Language())
		return nil
	})
}

// resolveRuleID accepts either a full rule ID or a unique short prefix.
func (a *app) resolveRuleID(ctx context.Context, shortID string) (string, error) {
	id, err := resolver.RuleID(ctx, a.admin, a.language(), shortID)
	if err != nil {
		var ambiguous *resolver.AmbiguousError
		if errors.As(err, &ambiguous) {
			return "", printer.Error("Ambiguous rule ID", resolver.FormatAmbiguousError(ambiguous), nil)
		}
		return "", printer.Error("Failed to resolve rule ID", err.Error(), nil)
	}
	return id, nil
}

// confirm asks for an explicit y/N answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
