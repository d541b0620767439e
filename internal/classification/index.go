package classification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/jobskills/internal/types"
)

// dictionaryIndex is a precompiled lookup over one dictionary: exact maps for
// canonical keys, display names, and aliases, plus the multi-word terms
// eligible for the embedded-substring check.
type dictionaryIndex struct {
	exact          map[string]*types.TaxonomyEntry
	substringTerms []substringTerm
}

type substringTerm struct {
	term  string
	entry *types.TaxonomyEntry
}

func newDictionaryIndex(entries []types.TaxonomyEntry) *dictionaryIndex {
	idx := &dictionaryIndex{exact: make(map[string]*types.TaxonomyEntry, len(entries)*2)}
	for i := range entries {
		entry := &entries[i]
		for _, key := range entryKeys(entry) {
			if _, taken := idx.exact[key]; !taken {
				idx.exact[key] = entry
			}
			if len(key) >= minSubstringTermLength && strings.Contains(key, " ") {
				idx.substringTerms = append(idx.substringTerms, substringTerm{term: key, entry: entry})
			}
		}
	}
	return idx
}

func entryKeys(entry *types.TaxonomyEntry) []string {
	keys := []string{
		strings.ToLower(entry.Name),
		strings.ToLower(strings.ReplaceAll(entry.Canonical, "_", " ")),
		strings.ToLower(entry.Canonical),
	}
	for _, a := range entry.Aliases {
		keys = append(keys, strings.ToLower(a))
	}
	return keys
}

// lookupExact matches by canonical key, display name, or alias only.
func (idx *dictionaryIndex) lookupExact(lower string) (*types.TaxonomyEntry, string, bool) {
	if entry, ok := idx.exact[lower]; ok {
		return entry, "exact match", true
	}
	return nil, "", false
}

// lookup matches exactly first, then checks whether a multi-word term is
// embedded in a longer phrase. The substring check only applies to terms of
// at least minSubstringTermLength characters.
func (idx *dictionaryIndex) lookup(lower string) (*types.TaxonomyEntry, string, bool) {
	if entry, via, ok := idx.lookupExact(lower); ok {
		return entry, via, ok
	}
	for _, st := range idx.substringTerms {
		if strings.Contains(lower, st.term) {
			return st.entry, "embedded name match", true
		}
	}
	return nil, "", false
}

// ignoreIndex is the compiled form of the layer-0 veto rules.
type ignoreIndex struct {
	categories []ignoreCategory
}

type ignoreCategory struct {
	name     string
	exact    map[string]struct{}
	patterns []compiledPattern
}

type compiledPattern struct {
	re          *regexp.Regexp
	description string
}

// newIgnoreIndex compiles the ignore rules plus the standalone soft-skill
// patterns. Invalid patterns are skipped: a bad rule must never take the
// whole classifier down.
func newIgnoreIndex(rules *types.IgnoreRules, softSkillPatterns []string) *ignoreIndex {
	idx := &ignoreIndex{}
	if rules == nil {
		return idx
	}

	soft := compileCategory("soft skill", rules.SoftSkills)
	for _, p := range softSkillPatterns {
		if re, err := regexp.Compile(p); err == nil {
			soft.patterns = append(soft.patterns, compiledPattern{re: re, description: "soft-skill pattern"})
		}
	}

	idx.categories = []ignoreCategory{
		soft,
		compileCategory("junk phrase", rules.JunkPhrases),
		compileCategory("degree/education", rules.DegreeAndEducation),
		compileCategory("too generic", rules.TooGeneric),
	}
	return idx
}

func compileCategory(name string, list types.IgnoreList) ignoreCategory {
	cat := ignoreCategory{name: name, exact: make(map[string]struct{}, len(list.ExactMatches))}
	for _, s := range list.ExactMatches {
		cat.exact[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, p := range list.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		desc := p.Description
		if desc == "" {
			desc = name + " pattern"
		}
		cat.patterns = append(cat.patterns, compiledPattern{re: re, description: desc})
	}
	return cat
}

// match checks every category in order; the degree and too-generic categories
// are exact-match only by construction of the loaded rules.
func (idx *ignoreIndex) match(lower string) (string, bool) {
	for _, cat := range idx.categories {
		if _, ok := cat.exact[lower]; ok {
			return fmt.Sprintf("matched %s list", cat.name), true
		}
		for _, p := range cat.patterns {
			if p.re.MatchString(lower) {
				return fmt.Sprintf("matched %s", p.description), true
			}
		}
	}
	return "", false
}
