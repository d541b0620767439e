package normalization

import "unicode/utf8"

// Dynamic fuzzy-match acceptance thresholds by cleaned-phrase length. Short
// strings get a strict cutoff so acronyms like "SQL" or "CRM" never fuzzy-hit
// unrelated entries; long phrases carry more discriminating signal and
// tolerate more edit distance.
const (
	shortPhraseLimit  = 5
	mediumPhraseLimit = 15

	thresholdShort  = 0.20
	thresholdMedium = 0.35
	thresholdLong   = 0.50
)

// DynamicThreshold returns the fuzzy-match acceptance cutoff for a cleaned
// phrase. Length is counted in runes; it is non-decreasing in phrase length.
func DynamicThreshold(phrase string) float64 {
	switch n := utf8.RuneCountInString(phrase); {
	case n < shortPhraseLimit:
		return thresholdShort
	case n <= mediumPhraseLimit:
		return thresholdMedium
	default:
		return thresholdLong
	}
}
