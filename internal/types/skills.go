// Package types provides type definitions for structured data used throughout the jobskills system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"regexp"
	"strings"
)

// SkillType is the semantic type assigned to a phrase by the classifier.
// Classification is total: every phrase receives exactly one of these values.
type SkillType string

const (
	// SkillTypeCore is a core skill or competency (e.g. "lifecycle marketing").
	SkillTypeCore SkillType = "core_skill"
	// SkillTypeTool is a tool or platform (e.g. "HubSpot").
	SkillTypeTool SkillType = "tool"
	// SkillTypeCandidate is an unrecognized phrase kept as a best-guess pending review.
	SkillTypeCandidate SkillType = "candidate"
	// SkillTypeRejected is noise: soft skills, junk phrases, degrees, or generic terms.
	SkillTypeRejected SkillType = "rejected"
)

// Valid reports whether the skill type is one of the four closed values.
func (t SkillType) Valid() bool {
	switch t {
	case SkillTypeCore, SkillTypeTool, SkillTypeCandidate, SkillTypeRejected:
		return true
	}
	return false
}

// InferredType is the best-guess type attached to a CANDIDATE classification.
type InferredType string

const (
	// InferredUnknown means no signal pointed at a specific type.
	InferredUnknown InferredType = "unknown"
	// InferredTool means surface features (digits, punctuation) suggest a tool name.
	InferredTool InferredType = "tool"
)

// MatchType identifies which normalization pass produced a result.
type MatchType string

const (
	// MatchExact is a case-insensitive equality match against name, canonical key, or alias.
	MatchExact MatchType = "exact"
	// MatchAlias is a hit in the abbreviation/variant alias table.
	MatchAlias MatchType = "alias"
	// MatchCanonical is a hit in the hand-curated canonical rule table.
	MatchCanonical MatchType = "canonical"
	// MatchFuzzy is an approximate match accepted under the dynamic threshold.
	MatchFuzzy MatchType = "fuzzy"
	// MatchSynonym is a hit in a synonym group.
	MatchSynonym MatchType = "synonym"
	// MatchUnmatched means no pass succeeded; the phrase is its own pseudo-canonical key.
	MatchUnmatched MatchType = "unmatched"
	// MatchNone means the phrase was empty or unusable after cleaning.
	MatchNone MatchType = "none"
)

// Valid reports whether the match type is one of the closed values.
func (m MatchType) Valid() bool {
	switch m {
	case MatchExact, MatchAlias, MatchCanonical, MatchFuzzy, MatchSynonym, MatchUnmatched, MatchNone:
		return true
	}
	return false
}

var nonCanonicalChars = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalKey normalizes a display string into the lowercase, underscore-separated
// identifier used for deduplication and lookup (e.g. "Google Analytics 4" -> "google_analytics_4").
func CanonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonCanonicalChars.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
