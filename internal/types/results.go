package types

// ClassificationResult is the classifier's decision for a single phrase.
type ClassificationResult struct {
	Raw            string       `json:"raw"`
	Type           SkillType    `json:"type"`
	Canonical      string       `json:"canonical,omitempty"`
	Confidence     float64      `json:"confidence"`
	Evidence       string       `json:"evidence"`
	SourceLocation string       `json:"source_location"`
	InferredType   InferredType `json:"inferred_type,omitempty"` // CANDIDATE only
}

// NormalizationResult maps a phrase to a canonical taxonomy entry with a
// confidence reflecting match quality.
type NormalizationResult struct {
	Normalized   string         `json:"normalized,omitempty"`
	Canonical    string         `json:"canonical,omitempty"`
	MatchedEntry *TaxonomyEntry `json:"matched_entry,omitempty"`
	Confidence   float64        `json:"confidence"`
	MatchType    MatchType      `json:"match_type"`
}

// SkillRecord is one deduplicated, confidence-scored skill in the final output.
type SkillRecord struct {
	Name       string    `json:"name"`
	Canonical  string    `json:"canonical"`
	Category   string    `json:"category,omitempty"`
	Confidence float64   `json:"confidence"`
	MatchType  MatchType `json:"match_type"`
}

// StageCounts records how many phrases survived each pipeline stage for one stream.
type StageCounts struct {
	Extracted       int `json:"extracted"`
	AfterSplit      int `json:"after_split"`
	AfterToolFilter int `json:"after_tool_filter"`
	AfterDenyFilter int `json:"after_deny_filter"`
	Normalized      int `json:"normalized"`
	Final           int `json:"final"`
}

// DebugInfo carries per-run diagnostics. It is informational only; no caller
// behavior should depend on it.
type DebugInfo struct {
	RunID    string      `json:"run_id"`
	Required StageCounts `json:"required"`
	Desired  StageCounts `json:"desired"`
}

// ExtractionResult is the top-level pipeline output for one job-description analysis.
type ExtractionResult struct {
	Required        []SkillRecord          `json:"required"`
	Desired         []SkillRecord          `json:"desired"`
	Candidates      []ClassificationResult `json:"candidates,omitempty"`
	Rejected        []ClassificationResult `json:"rejected,omitempty"`
	Confidence      float64                `json:"confidence"`
	ExecutionTimeMs int64                  `json:"execution_time_ms"`
	Debug           DebugInfo              `json:"debug"`
}
