// Package resolver resolves short ID prefixes typed on the command line to
// the full server-side matching-rule IDs.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/searchcasa/scadmin/pkg/api"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// RuleLister lists the matching rules visible in one language scope.
type RuleLister interface {
	ListRules(ctx context.Context, language string) ([]api.MatchingRule, error)
}

// RuleID resolves a short ID prefix to a full matching-rule ID.
// Returns the full ID if exactly one rule in the language scope matches.
// Returns an error if zero or multiple rules match.
//
// The function handles three cases:
// 1. Input is already a full UUID (36 chars, 4 hyphens) - passed through as-is
// 2. Input is too short (< 6 chars) - returns validation error
// 3. Input is a short prefix - scans the rule list and returns a unique match
func RuleID(ctx context.Context, lister RuleLister, language, shortID string) (string, error) {
	if len(shortID) == 36 && strings.Count(shortID, "-") == 4 {
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	ruleList, err := lister.ListRules(ctx, language)
	if err != nil {
		return "", fmt.Errorf("failed to search for rule: %w", err)
	}

	var matches []string
	for _, rule := range ruleList {
		if strings.HasPrefix(rule.ID, shortID) {
			matches = append(matches, rule.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no rules matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no matching rules found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple rules matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d rules", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous
// short IDs. Lists all matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("Error: ambiguous short ID '%s' matches %d rules:\n", err.ShortID, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	msg += "\nUse a longer prefix to uniquely identify the rule."
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
