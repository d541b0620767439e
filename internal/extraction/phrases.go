package extraction

import (
	"regexp"
	"strings"
)

// Extractor harvests candidate skill phrases from free text using four
// independent strategies. Extractors are immutable and safe for concurrent use.
type Extractor struct {
	knownTerms []string
}

// NewExtractor creates an extractor. knownTerms is the lowercase list of
// taxonomy/tool names and aliases used by the direct substring scan; it may be
// empty, in which case that strategy contributes nothing.
func NewExtractor(knownTerms []string) *Extractor {
	return &Extractor{knownTerms: knownTerms}
}

var (
	bulletLineRe = regexp.MustCompile(`^\s*(?:[-*•·▪◦‣⁃○●]|\d+[.)])\s*(.+)$`)

	// Lexical triggers followed by a short window of phrase content.
	indicatorRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)experience (?:in|with)\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)proficien(?:cy|t) (?:in|with)\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)knowledge of\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)skilled (?:in|at|with)\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)background in\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)understanding of\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)expertise (?:in|with)\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)familiarity with\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)responsible for\s+([a-z][a-z0-9 ,/&+.#-]{1,49})`),
		regexp.MustCompile(`(?i)strong\s+([a-z][a-z ,/&-]{1,49})\s+(?:skills|abilities)`),
	}

	listTriggerRe  = regexp.MustCompile(`(?i)(?:skills include|technologies include|tools include|such as|including)\s*:?\s*([^\n.;]{2,200})`)
	listSplitRe    = regexp.MustCompile(`(?i)\s*(?:,|\band\b|\bor\b)\s*`)
	sentenceTailRe = regexp.MustCompile(`(?i)\s+(?:is|are|was|were|will|would|to)\b.*$`)
)

// ExtractPhrases runs all four strategies over the text and unions the results
// into a deduplicated set. Empty input yields an empty list, never an error.
// Strategies are independent: one contributing nothing never affects another.
func (e *Extractor) ExtractPhrases(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var phrases []string
	add := func(raw string) {
		cleaned := CleanPhrase(raw)
		if cleaned == "" || !isValidPhrase(cleaned) {
			return
		}
		key := strings.ToLower(cleaned)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		phrases = append(phrases, cleaned)
	}

	for _, p := range extractBullets(text) {
		add(p)
	}
	for _, p := range extractIndicatorPhrases(text) {
		add(p)
	}
	for _, p := range e.scanKnownTerms(text) {
		add(p)
	}
	for _, p := range extractCommaLists(text) {
		add(p)
	}

	return phrases
}

// extractBullets pulls the content of bullet-marked lines. A short pre-colon
// label is kept alone, treating "Skill: description" as just "Skill".
func extractBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		m := bulletLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		if content == "" {
			continue
		}
		if idx := strings.Index(content, ":"); idx > 0 && idx < maxPhraseChars {
			content = content[:idx]
		}
		out = append(out, content)
	}
	return out
}

// extractIndicatorPhrases captures short windows following fixed lexical triggers.
func extractIndicatorPhrases(text string) []string {
	var out []string
	for _, re := range indicatorRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			captured := strings.TrimSpace(m[1])
			// Trim trailing verb clauses the window overshot into.
			captured = sentenceTailRe.ReplaceAllString(captured, "")
			if captured != "" {
				out = append(out, captured)
			}
		}
	}
	return out
}

// scanKnownTerms adds every known taxonomy name or alias that appears as a
// case-insensitive substring of the text.
func (e *Extractor) scanKnownTerms(text string) []string {
	if len(e.knownTerms) == 0 {
		return nil
	}
	lower := strings.ToLower(text)
	var out []string
	for _, term := range e.knownTerms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, term) {
			out = append(out, term)
		}
	}
	return out
}

// extractCommaLists splits enumerations after phrases like "such as" or
// "skills include:" into atomic items.
func extractCommaLists(text string) []string {
	var out []string
	for _, m := range listTriggerRe.FindAllStringSubmatch(text, -1) {
		for _, item := range listSplitRe.Split(m[1], -1) {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
