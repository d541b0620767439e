package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobskills/internal/fuzzy"
	"github.com/jonathan/jobskills/internal/types"
)

func testEntries() []types.TaxonomyEntry {
	return []types.TaxonomyEntry{
		{Name: "SQL", Canonical: "sql", Category: "data"},
		{Name: "Google Analytics 4", Canonical: "google_analytics_4", Category: "analytics"},
		{Name: "Tableau", Canonical: "tableau", Category: "data"},
		{Name: "Conversion Rate Optimization", Canonical: "conversion_rate_optimization", Category: "marketing"},
		{Name: "Lifecycle Marketing", Canonical: "lifecycle_marketing", Category: "marketing"},
	}
}

func TestNormalizePhrase_AliasBeforeExact(t *testing.T) {
	// The alias pass runs before exact matching, so an aliased phrase gets the
	// alias confidence even when it would also match exactly.
	n := NewNormalizer(Options{
		Entries:  testEntries(),
		AliasMap: map[string]string{"sql": "SQL", "ga4": "Google Analytics 4"},
	})

	res := n.NormalizePhrase("SQL")

	assert.Equal(t, types.MatchAlias, res.MatchType)
	assert.Equal(t, "sql", res.Canonical)
	assert.InDelta(t, 0.98, res.Confidence, 1e-9)
}

func TestNormalizePhrase_AliasResolvesToEntry(t *testing.T) {
	n := NewNormalizer(Options{
		Entries:  testEntries(),
		AliasMap: map[string]string{"ga4": "Google Analytics 4"},
	})

	res := n.NormalizePhrase("GA4")

	require.Equal(t, types.MatchAlias, res.MatchType)
	assert.Equal(t, "Google Analytics 4", res.Normalized)
	assert.Equal(t, "google_analytics_4", res.Canonical)
	require.NotNil(t, res.MatchedEntry)
	assert.Equal(t, "analytics", res.MatchedEntry.Category)
}

func TestNormalizePhrase_DisableAliases(t *testing.T) {
	n := NewNormalizer(Options{
		Entries:        testEntries(),
		AliasMap:       map[string]string{"sql": "SQL"},
		DisableAliases: true,
	})

	res := n.NormalizePhrase("SQL")

	assert.Equal(t, types.MatchExact, res.MatchType)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestNormalizePhrase_ExactMatch(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	tests := []struct {
		name   string
		phrase string
	}{
		{name: "display name", phrase: "Tableau"},
		{name: "mixed case", phrase: "tABLEAU"},
		{name: "canonical with spaces", phrase: "google analytics 4"},
		{name: "canonical key itself", phrase: "lifecycle_marketing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := n.NormalizePhrase(tt.phrase)
			assert.Equal(t, types.MatchExact, res.MatchType)
			assert.InDelta(t, 1.0, res.Confidence, 1e-9)
		})
	}
}

func TestNormalizePhrase_CanonicalRule(t *testing.T) {
	n := NewNormalizer(Options{
		Entries:        testEntries(),
		CanonicalRules: map[string]string{"cro": "Conversion Rate Optimization"},
	})

	res := n.NormalizePhrase("CRO")

	assert.Equal(t, types.MatchCanonical, res.MatchType)
	assert.Equal(t, "conversion_rate_optimization", res.Canonical)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

func TestNormalizePhrase_FuzzyAcceptedUnderThreshold(t *testing.T) {
	entries := testEntries()
	n := NewNormalizer(Options{
		Entries: entries,
		Matcher: fuzzy.NewLevenshteinMatcher(entries),
	})

	// Transposition typo: distance 2 over 7 runes, score ~0.286, under the
	// 0.35 medium-length threshold.
	res := n.NormalizePhrase("tablaeu")

	require.Equal(t, types.MatchFuzzy, res.MatchType)
	assert.Equal(t, "tableau", res.Canonical)
	assert.InDelta(t, 1-2.0/7.0, res.Confidence, 1e-9)
}

func TestNormalizePhrase_FuzzyGatedForShortStrings(t *testing.T) {
	entries := testEntries()
	n := NewNormalizer(Options{
		Entries: entries,
		Matcher: fuzzy.NewLevenshteinMatcher(entries),
	})

	// "sq" is one edit from "sql" (score ~0.33) but short strings only accept
	// scores up to 0.20, so the fuzzy pass must decline.
	res := n.NormalizePhrase("sq")

	assert.Equal(t, types.MatchUnmatched, res.MatchType)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)
}

func TestNormalizePhrase_Synonym(t *testing.T) {
	n := NewNormalizer(Options{
		Entries: testEntries(),
		SynonymGroups: map[string][]string{
			"conversion_rate_optimization": {"landing page optimization", "funnel optimization"},
		},
	})

	res := n.NormalizePhrase("funnel optimization")

	assert.Equal(t, types.MatchSynonym, res.MatchType)
	assert.Equal(t, "conversion_rate_optimization", res.Canonical)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}

func TestNormalizePhrase_Unmatched(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	res := n.NormalizePhrase("quantum knitting")

	assert.Equal(t, types.MatchUnmatched, res.MatchType)
	assert.Equal(t, "quantum knitting", res.Normalized)
	assert.Equal(t, "quantum_knitting", res.Canonical)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)
}

func TestNormalizePhrase_EmptyInput(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	assert.Equal(t, types.MatchNone, n.NormalizePhrase("").MatchType)
	assert.Equal(t, types.MatchNone, n.NormalizePhrase("   ").MatchType)
}

func TestNormalizePhrase_Idempotent(t *testing.T) {
	// Normalizing an already-normalized name must resolve to the same entry.
	n := NewNormalizer(Options{
		Entries:  testEntries(),
		AliasMap: map[string]string{"ga4": "Google Analytics 4"},
	})

	first := n.NormalizePhrase("ga4")
	second := n.NormalizePhrase(first.Normalized)

	assert.Equal(t, first.Canonical, second.Canonical)
	assert.GreaterOrEqual(t, second.Confidence, first.Confidence)
}

func TestNormalizeAndDeduplicate_CaseVariants(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	results := n.NormalizeAndDeduplicate([]string{"SQL", "sql", "Sql", "SQL "})

	require.Len(t, results, 1)
	assert.Equal(t, "sql", results[0].Canonical)
	assert.InDelta(t, 1.0, results[0].Confidence, 1e-9)
}

func TestNormalizeAndDeduplicate_KeepsHighestConfidence(t *testing.T) {
	n := NewNormalizer(Options{
		Entries:        testEntries(),
		CanonicalRules: map[string]string{"cro": "Conversion Rate Optimization"},
	})

	// "cro" resolves via canonical rule (0.95), the display name exactly (1.0);
	// both collapse to one record at the higher confidence.
	results := n.NormalizeAndDeduplicate([]string{"cro", "Conversion Rate Optimization"})

	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Confidence, 1e-9)
}

func TestNormalizeAndDeduplicate_DropsShortUnmatched(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	results := n.NormalizeAndDeduplicate([]string{"zzzz", "zzzzzz"})

	require.Len(t, results, 1)
	assert.Equal(t, "zzzzzz", results[0].Normalized)
}

func TestNormalizeAndDeduplicate_SortsByConfidence(t *testing.T) {
	n := NewNormalizer(Options{Entries: testEntries()})

	results := n.NormalizeAndDeduplicate([]string{"mystery phrase", "Tableau", "SQL"})

	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
	assert.Equal(t, "mystery_phrase", results[2].Canonical)
}

func TestCleanForNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "qualifier prefix", input: "Experience with SQL", want: "sql"},
		{name: "qualifier suffix", input: "communication skills", want: "communication"},
		{name: "both qualifiers", input: "proficiency in Tableau experience", want: "tableau"},
		{name: "parenthetical", input: "Excel (pivot tables)", want: "excel"},
		{name: "separator spacing", input: "CI / CD", want: "ci/cd"},
		{name: "ampersand spacing", input: "analytics & reporting", want: "analytics&reporting"},
		{name: "whitespace collapse", input: "  data   analysis  ", want: "data analysis"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanForNormalization(tt.input))
		})
	}
}

func TestDynamicThreshold(t *testing.T) {
	tests := []struct {
		phrase string
		want   float64
	}{
		{phrase: "sql", want: 0.20},
		{phrase: "abcd", want: 0.20},
		{phrase: "abcde", want: 0.35},
		{phrase: "fifteen chars..", want: 0.35},
		{phrase: "lifecycle marketing", want: 0.50},
		// Length is counted in runes, not bytes.
		{phrase: "日本語", want: 0.20},
		{phrase: "データ分析と機械学習", want: 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.InDelta(t, tt.want, DynamicThreshold(tt.phrase), 1e-9)
		})
	}
}

func TestDynamicThreshold_NonDecreasing(t *testing.T) {
	prev := 0.0
	for _, p := range []string{"ab", "abcd", "abcde", "abcdefghij", "abcdefghijklmno", "abcdefghijklmnop"} {
		cur := DynamicThreshold(p)
		assert.GreaterOrEqual(t, cur, prev, "threshold decreased at %q", p)
		prev = cur
	}
}
