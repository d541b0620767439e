// Package classification assigns a semantic type to cleaned skill phrases via
// a strict four-layer precedence chain.
package classification

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobskills/internal/types"
)

// Source locations reported in classification results, one per layer.
const (
	SourceIgnoreRules = "layer_0_ignore_rules"
	SourceExactMatch  = "layer_1_exact_match"
	SourceForcedCore  = "layer_2_forced_core"
	SourcePattern     = "layer_3_pattern"
	SourceContext     = "layer_4_context"
)

// Confidence bands for the pattern and context layers.
const (
	confBrandNumber  = 0.85
	confCamelCase    = 0.75
	confGerund       = 0.70
	confSkillSuffix  = 0.80
	confMultiWord    = 0.65
	confShortAcronym = 0.40
	confToolShape    = 0.50
	confFallback     = 0.35
)

// minSubstringTermLength gates the embedded-tool-name check: terms shorter
// than this produce too many false positives on short tokens.
const minSubstringTermLength = 4

// Classifier assigns each phrase exactly one SkillType. Layers are evaluated
// in order and the first definitive decision wins; there is no scoring or
// voting across layers. Classifiers are immutable and safe for concurrent use.
type Classifier struct {
	tools  *dictionaryIndex
	skills *dictionaryIndex
	ignore *ignoreIndex
	forced []string
}

// NewClassifier builds a classifier over the supplied dictionary snapshot.
// A nil or empty snapshot is allowed: dictionary layers simply never match
// and classification degrades to the pattern and context layers.
func NewClassifier(dicts *types.Dictionaries) *Classifier {
	c := &Classifier{
		tools:  newDictionaryIndex(nil),
		skills: newDictionaryIndex(nil),
		ignore: newIgnoreIndex(nil, nil),
	}
	if dicts == nil {
		return c
	}

	toolEntries := make([]types.TaxonomyEntry, 0, len(dicts.ToolsDictionary))
	for _, t := range dicts.ToolsDictionary {
		toolEntries = append(toolEntries, t.AsTaxonomyEntry())
	}
	c.tools = newDictionaryIndex(toolEntries)
	c.skills = newDictionaryIndex(dicts.SkillsTaxonomy)
	c.ignore = newIgnoreIndex(&dicts.Ignore, dicts.SoftSkillPattern)
	for _, f := range dicts.ForcedCoreSkills {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			c.forced = append(c.forced, f)
		}
	}
	return c
}

// layerFunc is one precedence layer: it either returns a definitive decision
// or reports false to fall through to the next layer.
type layerFunc func(raw, lower string) (types.ClassificationResult, bool)

// ClassifyPhrase assigns exactly one of CORE_SKILL, TOOL, CANDIDATE, or
// REJECTED to the phrase. Classification is total: the context layer always
// terminates, so the returned type is never empty.
func (c *Classifier) ClassifyPhrase(phrase string) types.ClassificationResult {
	raw := strings.TrimSpace(phrase)
	lower := strings.ToLower(raw)
	if lower == "" {
		return types.ClassificationResult{
			Raw:            phrase,
			Type:           types.SkillTypeRejected,
			Confidence:     0,
			Evidence:       "empty phrase",
			SourceLocation: SourceIgnoreRules,
		}
	}

	layers := []layerFunc{
		c.rejectIgnored,
		c.matchDictionaries,
		c.matchForcedCore,
		c.matchPatterns,
	}
	for _, layer := range layers {
		if res, ok := layer(raw, lower); ok {
			return res
		}
	}
	return c.classifyByContext(raw, lower)
}

// Buckets groups batch classification results by type.
type Buckets struct {
	CoreSkills []types.ClassificationResult
	Tools      []types.ClassificationResult
	Candidates []types.ClassificationResult
	Rejected   []types.ClassificationResult
}

// ClassifyBatch classifies every phrase and buckets the results.
func (c *Classifier) ClassifyBatch(phrases []string) Buckets {
	var b Buckets
	for _, p := range phrases {
		res := c.ClassifyPhrase(p)
		switch res.Type {
		case types.SkillTypeCore:
			b.CoreSkills = append(b.CoreSkills, res)
		case types.SkillTypeTool:
			b.Tools = append(b.Tools, res)
		case types.SkillTypeCandidate:
			b.Candidates = append(b.Candidates, res)
		case types.SkillTypeRejected:
			b.Rejected = append(b.Rejected, res)
		}
	}
	return b
}

// rejectIgnored is layer 0: the soft-skill/junk veto. A hit here is absolute
// and overrides any dictionary membership.
func (c *Classifier) rejectIgnored(raw, lower string) (types.ClassificationResult, bool) {
	reason, hit := c.ignore.match(lower)
	if !hit {
		return types.ClassificationResult{}, false
	}
	return types.ClassificationResult{
		Raw:            raw,
		Type:           types.SkillTypeRejected,
		Confidence:     0,
		Evidence:       reason,
		SourceLocation: SourceIgnoreRules,
	}, true
}

// matchDictionaries is layer 1: exact dictionary lookup, tools before skills
// so a phrase present in both dictionaries resolves as a tool.
func (c *Classifier) matchDictionaries(raw, lower string) (types.ClassificationResult, bool) {
	if entry, via, ok := c.tools.lookup(lower); ok {
		return types.ClassificationResult{
			Raw:            raw,
			Type:           types.SkillTypeTool,
			Canonical:      entry.Canonical,
			Confidence:     1.0,
			Evidence:       fmt.Sprintf("tools dictionary %s: %s", via, entry.Name),
			SourceLocation: SourceExactMatch,
		}, true
	}
	if entry, via, ok := c.skills.lookupExact(lower); ok {
		return types.ClassificationResult{
			Raw:            raw,
			Type:           types.SkillTypeCore,
			Canonical:      entry.Canonical,
			Confidence:     1.0,
			Evidence:       fmt.Sprintf("skills taxonomy %s: %s", via, entry.Name),
			SourceLocation: SourceExactMatch,
		}, true
	}
	return types.ClassificationResult{}, false
}

// matchForcedCore is layer 2: a phrase that equals or contains a configured
// term is always a core skill, even with an empty taxonomy. Containment is
// plain substring, so "postgresql" resolves to forced "sql".
func (c *Classifier) matchForcedCore(raw, lower string) (types.ClassificationResult, bool) {
	for _, term := range c.forced {
		if strings.Contains(lower, term) {
			return types.ClassificationResult{
				Raw:            raw,
				Type:           types.SkillTypeCore,
				Canonical:      types.CanonicalKey(term),
				Confidence:     1.0,
				Evidence:       fmt.Sprintf("forced core skill: %s", term),
				SourceLocation: SourceForcedCore,
			}, true
		}
	}
	return types.ClassificationResult{}, false
}

var (
	brandNumberRe = regexp.MustCompile(`(?i)[a-z]\d|\d+$`)
	camelCaseRe   = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]*)+$`)
	gerundRe      = regexp.MustCompile(`(?:^|[a-z])ing(?:\s|$)`)
	digitRe       = regexp.MustCompile(`\d`)
	toolPunctRe   = regexp.MustCompile(`[._/\\-]`)
)

// skillSuffixes bias multi-word business phrases toward CORE_SKILL.
var skillSuffixes = []string{"strategy", "operations", "management", "analysis", "optimization", "planning"}

// matchPatterns is layer 3: fixed-order surface-shape rules, first match wins.
func (c *Classifier) matchPatterns(raw, lower string) (types.ClassificationResult, bool) {
	result := func(t types.SkillType, conf float64, evidence string) (types.ClassificationResult, bool) {
		return types.ClassificationResult{
			Raw:            raw,
			Type:           t,
			Canonical:      types.CanonicalKey(lower),
			Confidence:     conf,
			Evidence:       evidence,
			SourceLocation: SourcePattern,
		}, true
	}

	if brandNumberRe.MatchString(lower) {
		return result(types.SkillTypeTool, confBrandNumber, "brand-with-number pattern")
	}
	if !strings.Contains(raw, " ") && camelCaseRe.MatchString(raw) {
		return result(types.SkillTypeTool, confCamelCase, "CamelCase token pattern")
	}
	if gerundRe.MatchString(lower) {
		return result(types.SkillTypeCore, confGerund, "gerund form")
	}
	for _, suffix := range skillSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return result(types.SkillTypeCore, confSkillSuffix, fmt.Sprintf("skill suffix: %s", suffix))
		}
	}
	if n := len(strings.Fields(lower)); n >= 2 && n <= 4 {
		return result(types.SkillTypeCore, confMultiWord, "multi-word phrase default")
	}
	return types.ClassificationResult{}, false
}

// classifyByContext is layer 4: the universal fallback. It always returns a
// decision, which is what makes classification total.
func (c *Classifier) classifyByContext(raw, lower string) types.ClassificationResult {
	res := types.ClassificationResult{
		Raw:            raw,
		Type:           types.SkillTypeCandidate,
		Canonical:      types.CanonicalKey(lower),
		SourceLocation: SourceContext,
	}
	switch {
	case utf8.RuneCountInString(lower) < 4:
		res.Confidence = confShortAcronym
		res.InferredType = types.InferredUnknown
		res.Evidence = "short token, possible acronym"
	case toolPunctRe.MatchString(lower) || digitRe.MatchString(lower):
		res.Confidence = confToolShape
		res.InferredType = types.InferredTool
		res.Evidence = "punctuation or digits suggest a tool name"
	default:
		res.Confidence = confFallback
		res.InferredType = types.InferredUnknown
		res.Evidence = "no classification signal"
	}
	return res
}
