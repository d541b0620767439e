// Package pipeline provides the end-to-end orchestration that turns raw
// job-description text into a structured, confidence-scored skill set.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/jobskills/internal/classification"
	"github.com/jonathan/jobskills/internal/extraction"
	"github.com/jonathan/jobskills/internal/fuzzy"
	"github.com/jonathan/jobskills/internal/normalization"
	"github.com/jonathan/jobskills/internal/types"
)

// DefaultMinConfidence is the cutoff below which a normalized skill is not
// considered "found".
const DefaultMinConfidence = 0.5

// Options configures an Extractor. Dictionaries are treated as an immutable
// snapshot: hot reload means building a new Extractor over a new snapshot,
// never mutating a live one.
type Options struct {
	Dictionaries *types.Dictionaries
	// Matcher is the optional fuzzy fallback for normalization; nil degrades
	// gracefully to the non-fuzzy passes.
	Matcher fuzzy.Matcher
	// MinConfidence filters output records; zero means DefaultMinConfidence.
	MinConfidence float64
	// MaxSkills caps the total record count across both streams; 0 = unlimited.
	MaxSkills int
	// DisableAliases turns off the alias-table normalization pass.
	DisableAliases bool
	// Logger receives per-stage diagnostics at debug level; nil is silent.
	Logger *zap.Logger
}

// Extractor is the composed pipeline. It is immutable after construction and
// safe for concurrent use; each Extract call is independent and idempotent
// given the same input text.
type Extractor struct {
	extractor  *extraction.Extractor
	classifier *classification.Classifier
	skillNorm  *normalization.Normalizer
	toolNorm   *normalization.Normalizer
	toolDeny   []string
	denyExact  map[string]struct{}
	minConf    float64
	maxSkills  int
	logger     *zap.Logger
}

// New composes the pipeline from the supplied options. Missing collaborators
// (nil dictionaries, nil matcher) are tolerated; the affected stages simply
// contribute nothing.
func New(opts Options) *Extractor {
	dicts := opts.Dictionaries
	if dicts == nil {
		dicts = &types.Dictionaries{}
	}

	minConf := opts.MinConfidence
	if minConf == 0 {
		minConf = DefaultMinConfidence
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	toolEntries := make([]types.TaxonomyEntry, 0, len(dicts.ToolsDictionary))
	for _, t := range dicts.ToolsDictionary {
		toolEntries = append(toolEntries, t.AsTaxonomyEntry())
	}

	e := &Extractor{
		extractor:  extraction.NewExtractor(dicts.KnownTerms()),
		classifier: classification.NewClassifier(dicts),
		skillNorm: normalization.NewNormalizer(normalization.Options{
			Entries:        dicts.SkillsTaxonomy,
			CanonicalRules: dicts.CanonicalRules,
			SynonymGroups:  dicts.SynonymGroups,
			AliasMap:       dicts.AliasMap,
			Matcher:        opts.Matcher,
			DisableAliases: opts.DisableAliases,
		}),
		toolNorm: normalization.NewNormalizer(normalization.Options{
			Entries:        toolEntries,
			AliasMap:       dicts.AliasMap,
			DisableAliases: opts.DisableAliases,
		}),
		denyExact: make(map[string]struct{}),
		minConf:   minConf,
		maxSkills: opts.MaxSkills,
		logger:    logger,
	}

	// Tool deny-list: known tool/platform names must never reach the skill
	// normalizer. Matching phrases divert to the tool stream instead.
	for _, entry := range toolEntries {
		e.toolDeny = append(e.toolDeny, strings.ToLower(entry.Name))
		for _, a := range entry.Aliases {
			e.toolDeny = append(e.toolDeny, strings.ToLower(a))
		}
	}
	for _, g := range dicts.Ignore.TooGeneric.ExactMatches {
		e.denyExact[strings.ToLower(strings.TrimSpace(g))] = struct{}{}
	}

	return e
}

// streamResult carries one section's processed output.
type streamResult struct {
	records    []types.SkillRecord
	candidates []types.ClassificationResult
	rejected   []types.ClassificationResult
	counts     types.StageCounts
}

// Extract runs the full pipeline over raw job-description text. Malformed or
// empty input produces an empty-but-valid result, never an error: this is a
// best-effort heuristics system, and all degradation is silent confidence
// reduction visible only through the debug fields.
func (e *Extractor) Extract(text string) *types.ExtractionResult {
	start := time.Now()
	runID := uuid.NewString()

	sections := extraction.ParseSections(text)
	required := e.processStream(sections.Required)
	desired := e.processStream(sections.Desired)

	// Required wins: a canonical key present in both streams stays only in
	// required.
	requiredKeys := make(map[string]struct{}, len(required.records))
	for _, r := range required.records {
		requiredKeys[r.Canonical] = struct{}{}
	}
	kept := desired.records[:0]
	for _, r := range desired.records {
		if _, dup := requiredKeys[r.Canonical]; dup {
			continue
		}
		kept = append(kept, r)
	}
	desired.records = kept

	if e.maxSkills > 0 {
		required.records, desired.records = capRecords(required.records, desired.records, e.maxSkills)
	}
	required.counts.Final = len(required.records)
	desired.counts.Final = len(desired.records)

	result := &types.ExtractionResult{
		Required:        required.records,
		Desired:         desired.records,
		Candidates:      mergeClassifications(required.candidates, desired.candidates),
		Rejected:        mergeClassifications(required.rejected, desired.rejected),
		Confidence:      aggregateConfidence(required.records, desired.records),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
		Debug: types.DebugInfo{
			RunID:    runID,
			Required: required.counts,
			Desired:  desired.counts,
		},
	}

	e.logger.Debug("extraction complete",
		zap.String("run_id", runID),
		zap.Int("required", len(result.Required)),
		zap.Int("desired", len(result.Desired)),
		zap.Int("candidates", len(result.Candidates)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Float64("confidence", result.Confidence),
		zap.Int64("elapsed_ms", result.ExecutionTimeMs),
	)

	return result
}

// processStream runs extraction, splitting, deny-list filtering,
// classification, and normalization for one section's text.
func (e *Extractor) processStream(text string) streamResult {
	var res streamResult
	if strings.TrimSpace(text) == "" {
		return res
	}

	phrases := e.extractor.ExtractPhrases(text)
	res.counts.Extracted = len(phrases)

	split := extraction.SplitBatch(phrases)
	res.counts.AfterSplit = len(split)

	// Known tool names divert to the tool stream before classification so
	// they cannot masquerade as skill candidates downstream.
	skillPhrases, toolPhrases := e.partitionTools(split)
	res.counts.AfterToolFilter = len(skillPhrases)

	skillPhrases = e.filterGeneric(skillPhrases)
	res.counts.AfterDenyFilter = len(skillPhrases)

	buckets := e.classifier.ClassifyBatch(skillPhrases)
	res.candidates = buckets.Candidates
	res.rejected = buckets.Rejected

	for _, t := range buckets.Tools {
		toolPhrases = append(toolPhrases, t.Raw)
	}
	corePhrases := make([]string, 0, len(buckets.CoreSkills))
	for _, s := range buckets.CoreSkills {
		corePhrases = append(corePhrases, s.Raw)
	}

	skillResults := e.skillNorm.NormalizeAndDeduplicate(corePhrases)
	toolResults := e.toolNorm.NormalizeAndDeduplicate(toolPhrases)
	res.counts.Normalized = len(skillResults) + len(toolResults)

	res.records = e.buildRecords(skillResults, toolResults)
	return res
}

// partitionTools splits phrases into the skill stream and the tool stream
// using exact plus prefix/suffix matching against known tool names.
func (e *Extractor) partitionTools(phrases []string) (skills, tools []string) {
	for _, p := range phrases {
		if e.matchesToolDeny(strings.ToLower(p)) {
			tools = append(tools, p)
			continue
		}
		skills = append(skills, p)
	}
	return skills, tools
}

func (e *Extractor) matchesToolDeny(lower string) bool {
	for _, term := range e.toolDeny {
		if lower == term ||
			strings.HasPrefix(lower, term+" ") ||
			strings.HasSuffix(lower, " "+term) {
			return true
		}
	}
	return false
}

// filterGeneric drops phrases on the generic/noise deny-list.
func (e *Extractor) filterGeneric(phrases []string) []string {
	if len(e.denyExact) == 0 {
		return phrases
	}
	out := phrases[:0]
	for _, p := range phrases {
		if _, deny := e.denyExact[strings.ToLower(p)]; deny {
			continue
		}
		out = append(out, p)
	}
	return out
}

// buildRecords converts normalization results to output records, applying the
// minimum-confidence cutoff and deduplicating across the skill and tool
// streams by canonical key (highest confidence wins).
func (e *Extractor) buildRecords(skillResults, toolResults []types.NormalizationResult) []types.SkillRecord {
	best := make(map[string]types.SkillRecord)
	order := make([]string, 0, len(skillResults)+len(toolResults))

	add := func(results []types.NormalizationResult, defaultCategory string) {
		for _, r := range results {
			if r.Confidence < e.minConf || r.Canonical == "" {
				continue
			}
			rec := types.SkillRecord{
				Name:       r.Normalized,
				Canonical:  r.Canonical,
				Category:   defaultCategory,
				Confidence: r.Confidence,
				MatchType:  r.MatchType,
			}
			if r.MatchedEntry != nil && r.MatchedEntry.Category != "" {
				rec.Category = r.MatchedEntry.Category
			}
			existing, seen := best[rec.Canonical]
			if !seen {
				best[rec.Canonical] = rec
				order = append(order, rec.Canonical)
				continue
			}
			if rec.Confidence > existing.Confidence {
				best[rec.Canonical] = rec
			}
		}
	}
	add(skillResults, "skill")
	add(toolResults, "tool")

	records := make([]types.SkillRecord, 0, len(order))
	for _, key := range order {
		records = append(records, best[key])
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Confidence != records[j].Confidence {
			return records[i].Confidence > records[j].Confidence
		}
		return records[i].Canonical < records[j].Canonical
	})
	return records
}

// capRecords keeps only the globally highest-confidence records across both
// streams, then re-filters each stream to match.
func capRecords(required, desired []types.SkillRecord, maxSkills int) ([]types.SkillRecord, []types.SkillRecord) {
	if len(required)+len(desired) <= maxSkills {
		return required, desired
	}

	type keyed struct {
		canonical string
		required  bool
	}
	all := make([]struct {
		rec  types.SkillRecord
		from keyed
	}, 0, len(required)+len(desired))
	for _, r := range required {
		all = append(all, struct {
			rec  types.SkillRecord
			from keyed
		}{r, keyed{r.Canonical, true}})
	}
	for _, r := range desired {
		all = append(all, struct {
			rec  types.SkillRecord
			from keyed
		}{r, keyed{r.Canonical, false}})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].rec.Confidence > all[j].rec.Confidence })

	keepRequired := make(map[string]struct{})
	keepDesired := make(map[string]struct{})
	for i, item := range all {
		if i >= maxSkills {
			break
		}
		if item.from.required {
			keepRequired[item.from.canonical] = struct{}{}
		} else {
			keepDesired[item.from.canonical] = struct{}{}
		}
	}

	filter := func(records []types.SkillRecord, keep map[string]struct{}) []types.SkillRecord {
		out := records[:0]
		for _, r := range records {
			if _, ok := keep[r.Canonical]; ok {
				out = append(out, r)
			}
		}
		return out
	}
	return filter(required, keepRequired), filter(desired, keepDesired)
}

// aggregateConfidence is the mean confidence across all surviving records.
func aggregateConfidence(required, desired []types.SkillRecord) float64 {
	total := 0.0
	count := 0
	for _, r := range required {
		total += r.Confidence
		count++
	}
	for _, r := range desired {
		total += r.Confidence
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// mergeClassifications concatenates classification buckets from both streams,
// deduplicating by lowercased raw phrase.
func mergeClassifications(a, b []types.ClassificationResult) []types.ClassificationResult {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []types.ClassificationResult
	for _, res := range append(append([]types.ClassificationResult{}, a...), b...) {
		key := strings.ToLower(res.Raw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, res)
	}
	return out
}
