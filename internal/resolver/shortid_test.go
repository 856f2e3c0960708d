package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcasa/scadmin/pkg/api"
)

type stubLister struct {
	rules    []api.MatchingRule
	err      error
	language string
}

func (s *stubLister) ListRules(ctx context.Context, language string) ([]api.MatchingRule, error) {
	s.language = language
	if s.err != nil {
		return nil, s.err
	}
	return s.rules, nil
}

func ruleWithID(id string) api.MatchingRule {
	return api.MatchingRule{ID: id, Name: "rule-" + id[:6]}
}

func TestRuleIDFullUUIDPassthrough(t *testing.T) {
	lister := &stubLister{}
	full := "0b51b69e-0000-4000-8000-1234567890ab"

	id, err := RuleID(context.Background(), lister, "en", full)
	require.NoError(t, err)
	assert.Equal(t, full, id)
	// No lookup needed for a full UUID.
	assert.Empty(t, lister.language)
}

func TestRuleIDTooShort(t *testing.T) {
	lister := &stubLister{}

	_, err := RuleID(context.Background(), lister, "en", "0b51b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestRuleIDUniquePrefix(t *testing.T) {
	lister := &stubLister{rules: []api.MatchingRule{
		ruleWithID("0b51b69e-0000-4000-8000-1234567890ab"),
		ruleWithID("7c62c7af-0000-4000-8000-1234567890ab"),
	}}

	id, err := RuleID(context.Background(), lister, "it", "7c62c7")
	require.NoError(t, err)
	assert.Equal(t, "7c62c7af-0000-4000-8000-1234567890ab", id)
	assert.Equal(t, "it", lister.language)
}

func TestRuleIDNoMatch(t *testing.T) {
	lister := &stubLister{rules: []api.MatchingRule{
		ruleWithID("0b51b69e-0000-4000-8000-1234567890ab"),
	}}

	_, err := RuleID(context.Background(), lister, "en", "ffffff")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestRuleIDAmbiguous(t *testing.T) {
	lister := &stubLister{rules: []api.MatchingRule{
		ruleWithID("0b51b69e-0000-4000-8000-1234567890ab"),
		ruleWithID("0b51b69e-1111-4000-8000-1234567890ab"),
	}}

	_, err := RuleID(context.Background(), lister, "en", "0b51b6")
	require.Error(t, err)
	require.True(t, IsAmbiguousError(err))

	var ambiguous *AmbiguousError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Matches, 2)
	assert.Contains(t, FormatAmbiguousError(ambiguous), "matches 2 rules")
}

func TestRuleIDListFailure(t *testing.T) {
	lister := &stubLister{err: errors.New("boom")}

	_, err := RuleID(context.Background(), lister, "en", "0b51b6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to search for rule")
}
