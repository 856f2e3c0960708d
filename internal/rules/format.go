package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/searchcasa/scadmin/pkg/api"
)

// FormatTable writes rules as a formatted table to the provided writer.
// The table includes columns: ID, NAME, OPTIONS, AGE, and DESCRIPTION
// (truncated). Returns the number of rules formatted.
func FormatTable(w io.Writer, rules []api.MatchingRule, language string) int {
	if len(rules) == 0 {
		fmt.Fprintf(w, "No matching rules found for language '%s'\n", language)
		return 0
	}

	fmt.Fprintf(w, "Matching rules (language '%s'):\n\n", language)

	fmt.Fprintf(w, "%-10s %-22s %-8s %-8s %s\n",
		"ID", "NAME", "OPTIONS", "AGE", "DESCRIPTION")
	fmt.Fprintf(w, "%-10s %-22s %-8s %-8s %s\n",
		"----------", "----------------------", "--------", "--------", "----------------------------------------")

	for _, r := range rules {
		fmt.Fprintf(w, "%-10s %-22s %-8d %-8s %s\n",
			truncate(r.ID, 10),
			truncate(r.Name, 22),
			len(r.Options),
			formatAge(r.CreatedAt),
			truncate(r.Description, 40),
		)
	}

	countMsg := "rule"
	if len(rules) != 1 {
		countMsg = "rules"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(rules), countMsg)

	return len(rules)
}

// FormatDetail writes one rule with its full option list.
func FormatDetail(w io.Writer, rule api.MatchingRule) {
	fmt.Fprintf(w, "Rule:        %s\n", rule.ID)
	fmt.Fprintf(w, "Name:        %s\n", rule.Name)
	fmt.Fprintf(w, "Description: %s\n", rule.Description)
	if !rule.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:     %s\n", rule.CreatedAt.Format(time.RFC3339))
	}
	if !rule.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated:     %s\n", rule.UpdatedAt.Format(time.RFC3339))
	}

	if len(rule.Options) == 0 {
		fmt.Fprintf(w, "\nNo options\n")
		return
	}

	fmt.Fprintf(w, "\n%-4s %-20s %-15s %-14s %s\n",
		"#", "LABEL", "VALUE", "COMPARATOR", "LANGUAGE")
	for i, opt := range rule.Options {
		fmt.Fprintf(w, "%-4d %-20s %-15s %-14s %s\n",
			i+1,
			truncate(opt.Label, 20),
			truncate(opt.Value, 15),
			string(opt.ComparatorType),
			opt.Language,
		)
	}
}

// FormatJSON writes any value as pretty-printed JSON. Used by the --json
// output mode.
func FormatJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// formatAge renders a timestamp as a compact relative age ("4d", "2h").
// A zero timestamp renders as "-".
func formatAge(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	d := time.Since(ts)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
