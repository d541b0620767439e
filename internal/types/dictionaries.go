package types

import "strings"

// TaxonomyEntry is a canonical skill definition from the curated reference taxonomy.
type TaxonomyEntry struct {
	Name      string   `json:"name" validate:"required"`
	Canonical string   `json:"canonical" validate:"required"`
	Category  string   `json:"category,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
}

// ToolEntry is a canonical tool/platform definition. Tools live in a separate
// dictionary so a phrase is never classified as both a skill and a tool.
type ToolEntry struct {
	Name      string   `json:"name" validate:"required"`
	Canonical string   `json:"canonical" validate:"required"`
	Category  string   `json:"category,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
}

// AsTaxonomyEntry converts a tool entry to the taxonomy shape so both
// dictionaries can feed the same normalization machinery.
func (t ToolEntry) AsTaxonomyEntry() TaxonomyEntry {
	return TaxonomyEntry{
		Name:      t.Name,
		Canonical: t.Canonical,
		Category:  t.Category,
		Aliases:   t.Aliases,
	}
}

// PatternRule is a regex-based ignore rule with a human-readable description.
type PatternRule struct {
	Pattern     string `json:"pattern" validate:"required"`
	Description string `json:"description,omitempty"`
}

// IgnoreList holds exact-match strings and optional pattern rules for one
// category of ignorable phrases.
type IgnoreList struct {
	ExactMatches []string      `json:"exact_matches"`
	Patterns     []PatternRule `json:"patterns,omitempty"`
}

// IgnoreRules groups the deny categories consumed by classifier layer 0.
type IgnoreRules struct {
	SoftSkills         IgnoreList `json:"soft_skills"`
	JunkPhrases        IgnoreList `json:"junk_phrases"`
	DegreeAndEducation IgnoreList `json:"degree_and_education"`
	TooGeneric         IgnoreList `json:"too_generic"`
}

// Dictionaries is the immutable reference-data snapshot consumed by every
// pipeline call. Build a new snapshot and swap the reference to hot-reload;
// never mutate one in place while an analysis is in flight.
type Dictionaries struct {
	SkillsTaxonomy   []TaxonomyEntry     `json:"skills_taxonomy"`
	ToolsDictionary  []ToolEntry         `json:"tools_dictionary"`
	Ignore           IgnoreRules         `json:"ignore_rules"`
	ForcedCoreSkills []string            `json:"forced_core_skills"`
	SoftSkillPattern []string            `json:"soft_skill_patterns"`
	CanonicalRules   map[string]string   `json:"canonical_rules"`
	SynonymGroups    map[string][]string `json:"synonym_groups"`
	AliasMap         map[string]string   `json:"alias_map"`
}

// KnownTerms returns every taxonomy and tool name plus aliases, lowercased.
// The extractor scans raw text for these as substrings.
func (d *Dictionaries) KnownTerms() []string {
	if d == nil {
		return nil
	}
	terms := make([]string, 0, len(d.SkillsTaxonomy)+len(d.ToolsDictionary))
	for _, e := range d.SkillsTaxonomy {
		terms = append(terms, strings.ToLower(e.Name))
		for _, a := range e.Aliases {
			terms = append(terms, strings.ToLower(a))
		}
	}
	for _, e := range d.ToolsDictionary {
		terms = append(terms, strings.ToLower(e.Name))
		for _, a := range e.Aliases {
			terms = append(terms, strings.ToLower(a))
		}
	}
	return terms
}
