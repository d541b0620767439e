package extraction

import (
	"regexp"
	"strings"
)

const (
	// minPhraseLength is the minimum cleaned-phrase length in characters.
	minPhraseLength = 2
	// maxPhraseWords is the maximum word count for a candidate phrase.
	maxPhraseWords = 5
	// maxPhraseChars is the maximum length in characters for a candidate phrase.
	maxPhraseChars = 50
)

var (
	bulletPrefixRe   = regexp.MustCompile(`^[\s\-*•·▪◦‣⁃○●–—]+`)
	edgePunctRe      = regexp.MustCompile(`^[\s.,;:!?"'()\[\]]+|[\s.,;:!?"'(\[]+$`)
	parentheticalRe  = regexp.MustCompile(`\s*\([^)]*\)`)
	yearsPatternRe   = regexp.MustCompile(`(?i)\b\d+\s*\+?\s*(?:years?|yrs?)(?:\s+of)?\b`)
	multiWhitespace  = regexp.MustCompile(`\s+`)
	leadingConjuncRe = regexp.MustCompile(`(?i)^(?:and|or)\s+`)
)

// CleanPhrase strips bullet glyphs, edge punctuation, parenthetical asides,
// and "N years of" patterns, then collapses whitespace. Returns "" when
// nothing usable remains.
func CleanPhrase(phrase string) string {
	if phrase == "" {
		return ""
	}
	phrase = bulletPrefixRe.ReplaceAllString(phrase, "")
	phrase = parentheticalRe.ReplaceAllString(phrase, " ")
	phrase = yearsPatternRe.ReplaceAllString(phrase, " ")
	phrase = edgePunctRe.ReplaceAllString(phrase, "")
	phrase = multiWhitespace.ReplaceAllString(phrase, " ")
	return strings.TrimSpace(phrase)
}

// isValidPhrase enforces the length and word-count bounds for candidates.
func isValidPhrase(phrase string) bool {
	if len(phrase) < minPhraseLength || len(phrase) > maxPhraseChars {
		return false
	}
	return len(strings.Fields(phrase)) <= maxPhraseWords
}
