package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobskills/internal/types"
)

func matcherEntries() []types.TaxonomyEntry {
	return []types.TaxonomyEntry{
		{Name: "Tableau", Canonical: "tableau"},
		{Name: "Salesforce", Canonical: "salesforce", Aliases: []string{"sfdc"}},
		{Name: "Google Analytics 4", Canonical: "google_analytics_4", Aliases: []string{"ga4"}},
	}
}

func TestLevenshteinMatcher_ExactQueryScoresZero(t *testing.T) {
	m := NewLevenshteinMatcher(matcherEntries())

	matches := m.Search("tableau", 1)

	require.Len(t, matches, 1)
	assert.Equal(t, "tableau", matches[0].Term)
	assert.Zero(t, matches[0].Score)
}

func TestLevenshteinMatcher_TypoRanksClosestFirst(t *testing.T) {
	m := NewLevenshteinMatcher(matcherEntries())

	matches := m.Search("tablaeu", 3)

	require.NotEmpty(t, matches)
	assert.Equal(t, "tableau", matches[0].Term)
	assert.InDelta(t, 2.0/7.0, matches[0].Score, 1e-9)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Score, matches[i-1].Score)
	}
}

func TestLevenshteinMatcher_AliasesAreIndexed(t *testing.T) {
	m := NewLevenshteinMatcher(matcherEntries())

	matches := m.Search("sfdc", 1)

	require.Len(t, matches, 1)
	assert.Equal(t, "sfdc", matches[0].Term)
	require.NotNil(t, matches[0].Entry)
	assert.Equal(t, "salesforce", matches[0].Entry.Canonical)
}

func TestLevenshteinMatcher_LimitRespected(t *testing.T) {
	m := NewLevenshteinMatcher(matcherEntries())

	assert.Len(t, m.Search("analytics", 2), 2)
	assert.Empty(t, m.Search("analytics", 0))
}

func TestLevenshteinMatcher_EmptyInputs(t *testing.T) {
	m := NewLevenshteinMatcher(matcherEntries())

	assert.Empty(t, m.Search("", 5))
	assert.Empty(t, m.Search("   ", 5))

	empty := NewLevenshteinMatcher(nil)
	assert.Empty(t, empty.Search("tableau", 5))
}
