// Package normalization maps cleaned phrases to canonical taxonomy entries
// through an ordered chain of passes, each with its own confidence band.
package normalization

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/jobskills/internal/fuzzy"
	"github.com/jonathan/jobskills/internal/types"
)

// Confidence bands per pass.
const (
	confAlias     = 0.98
	confExact     = 1.0
	confCanonical = 0.95
	confSynonym   = 0.85
	confUnmatched = 0.3

	// defaultMinFuzzyConfidence floors the confidence of accepted fuzzy hits.
	defaultMinFuzzyConfidence = 0.5

	// minUnmatchedLength drops unmatched phrases too short to be useful.
	minUnmatchedLength = 5
)

// Options configures a Normalizer.
type Options struct {
	// Entries is the canonical reference list to resolve against.
	Entries []types.TaxonomyEntry
	// CanonicalRules maps hand-curated phrases to taxonomy display names.
	CanonicalRules map[string]string
	// SynonymGroups maps a canonical key to its accepted synonym strings.
	SynonymGroups map[string][]string
	// AliasMap maps common abbreviations to taxonomy display names.
	AliasMap map[string]string
	// Matcher is the optional fuzzy fallback; nil disables the fuzzy pass.
	Matcher fuzzy.Matcher
	// DisableAliases turns off the alias-table pass.
	DisableAliases bool
	// MinFuzzyConfidence floors accepted fuzzy confidences; zero means the default.
	MinFuzzyConfidence float64
}

// Normalizer resolves phrases against an immutable taxonomy snapshot. It is
// safe for concurrent use.
type Normalizer struct {
	byExact        map[string]*types.TaxonomyEntry
	byCanonical    map[string]*types.TaxonomyEntry
	canonicalRules map[string]string
	synonymGroups  map[string][]string
	aliasMap       map[string]string
	matcher        fuzzy.Matcher
	resolveAliases bool
	minFuzzyConf   float64
}

// NewNormalizer builds a normalizer. Missing pieces degrade gracefully: a nil
// matcher skips the fuzzy pass, empty maps skip their passes, and an empty
// entry list means every phrase comes back unmatched.
func NewNormalizer(opts Options) *Normalizer {
	n := &Normalizer{
		byExact:        make(map[string]*types.TaxonomyEntry),
		byCanonical:    make(map[string]*types.TaxonomyEntry),
		canonicalRules: lowercaseKeys(opts.CanonicalRules),
		synonymGroups:  opts.SynonymGroups,
		aliasMap:       lowercaseKeys(opts.AliasMap),
		matcher:        opts.Matcher,
		resolveAliases: !opts.DisableAliases,
		minFuzzyConf:   opts.MinFuzzyConfidence,
	}
	if n.minFuzzyConf == 0 {
		n.minFuzzyConf = defaultMinFuzzyConfidence
	}

	for i := range opts.Entries {
		entry := &opts.Entries[i]
		n.byCanonical[entry.Canonical] = entry
		keys := []string{
			strings.ToLower(entry.Name),
			strings.ToLower(entry.Canonical),
			strings.ToLower(strings.ReplaceAll(entry.Canonical, "_", " ")),
		}
		for _, a := range entry.Aliases {
			keys = append(keys, strings.ToLower(a))
		}
		for _, key := range keys {
			if _, taken := n.byExact[key]; !taken {
				n.byExact[key] = entry
			}
		}
	}
	return n
}

// passFunc is one normalization pass; first success wins.
type passFunc func(cleaned string) (types.NormalizationResult, bool)

// NormalizePhrase resolves one phrase. When no pass succeeds the cleaned
// phrase becomes its own pseudo-canonical key at low, non-zero confidence so
// callers can still surface it as a possible unverified skill.
func (n *Normalizer) NormalizePhrase(phrase string) types.NormalizationResult {
	cleaned := CleanForNormalization(phrase)
	if cleaned == "" {
		return types.NormalizationResult{MatchType: types.MatchNone}
	}

	passes := []passFunc{
		n.resolveAlias,
		n.matchExact,
		n.matchCanonicalRule,
		n.matchFuzzy,
		n.matchSynonym,
	}
	for _, pass := range passes {
		if res, ok := pass(cleaned); ok {
			return res
		}
	}

	return types.NormalizationResult{
		Normalized: cleaned,
		Canonical:  types.CanonicalKey(cleaned),
		Confidence: confUnmatched,
		MatchType:  types.MatchUnmatched,
	}
}

// NormalizeAndDeduplicate normalizes every phrase, drops unmatched results
// shorter than minUnmatchedLength, deduplicates by canonical key keeping the
// highest-confidence variant, and sorts by descending confidence.
func (n *Normalizer) NormalizeAndDeduplicate(phrases []string) []types.NormalizationResult {
	best := make(map[string]types.NormalizationResult)
	order := make([]string, 0, len(phrases))

	for _, phrase := range phrases {
		res := n.NormalizePhrase(phrase)
		if res.MatchType == types.MatchNone || res.Canonical == "" {
			continue
		}
		if res.MatchType == types.MatchUnmatched && len(res.Normalized) < minUnmatchedLength {
			continue
		}
		existing, seen := best[res.Canonical]
		if !seen {
			best[res.Canonical] = res
			order = append(order, res.Canonical)
			continue
		}
		if res.Confidence > existing.Confidence {
			best[res.Canonical] = res
		}
	}

	out := make([]types.NormalizationResult, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Canonical < out[j].Canonical
	})
	return out
}

// resolveAlias is pass 0: direct abbreviation lookup, re-resolved against the
// taxonomy so the result always points at a real entry.
func (n *Normalizer) resolveAlias(cleaned string) (types.NormalizationResult, bool) {
	if !n.resolveAliases || len(n.aliasMap) == 0 {
		return types.NormalizationResult{}, false
	}
	target, ok := n.aliasMap[cleaned]
	if !ok {
		return types.NormalizationResult{}, false
	}
	entry, ok := n.byExact[strings.ToLower(target)]
	if !ok {
		return types.NormalizationResult{}, false
	}
	return n.result(entry, confAlias, types.MatchAlias), true
}

// matchExact is pass 1: case-insensitive equality against name, canonical
// key, or alias.
func (n *Normalizer) matchExact(cleaned string) (types.NormalizationResult, bool) {
	entry, ok := n.byExact[cleaned]
	if !ok {
		return types.NormalizationResult{}, false
	}
	return n.result(entry, confExact, types.MatchExact), true
}

// matchCanonicalRule is pass 2: the hand-curated phrase-to-skill table.
func (n *Normalizer) matchCanonicalRule(cleaned string) (types.NormalizationResult, bool) {
	target, ok := n.canonicalRules[cleaned]
	if !ok {
		return types.NormalizationResult{}, false
	}
	entry, ok := n.byExact[strings.ToLower(target)]
	if !ok {
		return types.NormalizationResult{}, false
	}
	return n.result(entry, confCanonical, types.MatchCanonical), true
}

// matchFuzzy is pass 3: approximate matching gated by the length-dependent
// dynamic threshold. Confidence is 1-score, floored at the configured minimum.
func (n *Normalizer) matchFuzzy(cleaned string) (types.NormalizationResult, bool) {
	if n.matcher == nil {
		return types.NormalizationResult{}, false
	}
	matches := n.matcher.Search(cleaned, 1)
	if len(matches) == 0 || matches[0].Entry == nil {
		return types.NormalizationResult{}, false
	}
	if matches[0].Score > DynamicThreshold(cleaned) {
		return types.NormalizationResult{}, false
	}
	conf := 1 - matches[0].Score
	if conf < n.minFuzzyConf {
		conf = n.minFuzzyConf
	}
	return n.result(matches[0].Entry, conf, types.MatchFuzzy), true
}

// matchSynonym is pass 4: synonym-group resolution to the group's entry.
func (n *Normalizer) matchSynonym(cleaned string) (types.NormalizationResult, bool) {
	for canonical, synonyms := range n.synonymGroups {
		entry, ok := n.byCanonical[canonical]
		if !ok {
			continue
		}
		for _, syn := range synonyms {
			if strings.EqualFold(strings.TrimSpace(syn), cleaned) {
				return n.result(entry, confSynonym, types.MatchSynonym), true
			}
		}
	}
	return types.NormalizationResult{}, false
}

func (n *Normalizer) result(entry *types.TaxonomyEntry, conf float64, mt types.MatchType) types.NormalizationResult {
	return types.NormalizationResult{
		Normalized:   entry.Name,
		Canonical:    entry.Canonical,
		MatchedEntry: entry,
		Confidence:   conf,
		MatchType:    mt,
	}
}

var (
	qualifierPrefixRe = regexp.MustCompile(`(?i)^(?:experience (?:in|with)|proficiency (?:in|with)|knowledge of|skilled (?:in|at|with)|familiarity with|expertise in)\s+`)
	qualifierSuffixRe = regexp.MustCompile(`(?i)\s+(?:experience|skills?|expertise|knowledge|proficiency)$`)
	parentheticalRe   = regexp.MustCompile(`\s*\([^)]*\)`)
	separatorSpaceRe  = regexp.MustCompile(`\s*([/&])\s*`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// CleanForNormalization lowercases and trims a phrase, strips leading and
// trailing qualifier words, normalizes "/" and "&" separators, removes
// parenthetical content, and collapses whitespace.
func CleanForNormalization(phrase string) string {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return ""
	}
	phrase = qualifierPrefixRe.ReplaceAllString(phrase, "")
	phrase = qualifierSuffixRe.ReplaceAllString(phrase, "")
	phrase = parentheticalRe.ReplaceAllString(phrase, " ")
	phrase = separatorSpaceRe.ReplaceAllString(phrase, "$1")
	phrase = whitespaceRe.ReplaceAllString(phrase, " ")
	return strings.TrimSpace(phrase)
}

func lowercaseKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
