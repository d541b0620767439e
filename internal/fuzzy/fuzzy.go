// Package fuzzy defines the pluggable approximate-string-matching capability
// used by the normalizer, plus a default edit-distance implementation.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/jobskills/internal/types"
)

// Match is one fuzzy search hit. Score is a normalized distance in [0,1]:
// lower means closer, 0 is an exact match.
type Match struct {
	Entry *types.TaxonomyEntry
	Term  string
	Score float64
}

// Matcher is the capability the normalizer depends on. Any algorithm (edit
// distance, trigram, ...) satisfies the contract as long as lower scores mean
// closer matches and results come back best-first.
type Matcher interface {
	Search(query string, limit int) []Match
}

// LevenshteinMatcher scores candidates by edit distance normalized over the
// longer string. Matchers are immutable and safe for concurrent use.
type LevenshteinMatcher struct {
	terms []indexedTerm
}

type indexedTerm struct {
	term  string
	entry *types.TaxonomyEntry
}

// NewLevenshteinMatcher indexes every entry name and alias, lowercased.
func NewLevenshteinMatcher(entries []types.TaxonomyEntry) *LevenshteinMatcher {
	m := &LevenshteinMatcher{}
	for i := range entries {
		entry := &entries[i]
		m.terms = append(m.terms, indexedTerm{term: strings.ToLower(entry.Name), entry: entry})
		for _, a := range entry.Aliases {
			m.terms = append(m.terms, indexedTerm{term: strings.ToLower(a), entry: entry})
		}
	}
	return m
}

// Search returns up to limit matches ordered by ascending score. An empty
// query or empty index yields no matches.
func (m *LevenshteinMatcher) Search(query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(m.terms) == 0 || limit <= 0 {
		return nil
	}

	matches := make([]Match, 0, len(m.terms))
	for _, t := range m.terms {
		matches = append(matches, Match{
			Entry: t.entry,
			Term:  t.term,
			Score: distanceScore(query, t.term),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score < matches[j].Score })

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// distanceScore normalizes Levenshtein distance by the longer string's rune
// count, yielding 0 for identical strings and 1 for entirely different ones.
func distanceScore(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
