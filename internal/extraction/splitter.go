package extraction

import (
	"regexp"
	"strings"
)

var (
	andOrRe          = regexp.MustCompile(`(?i)\s+and/or\s+`)
	proficiencyRe    = regexp.MustCompile(`(?i)\s*\((?:advanced|intermediate|beginner|basic|expert|preferred|required|a plus|bonus)\)`)
	parenVariantRe   = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*(.*)$`)
	splitAndRe       = regexp.MustCompile(`(?i)\s+and\s+`)
	splitOrRe        = regexp.MustCompile(`(?i)\s+or\s+`)
	fragmentPunctRe  = regexp.MustCompile(`^[\s.,;:&/]+|[\s.,;:&/]+$`)
	leadingBulletsRe = regexp.MustCompile(`^[\s\-*•·]+`)
)

// SplitPhrase decomposes a composite phrase into atomic candidates. A phrase
// with no recognized structure comes back unchanged as a single-element list.
//
// Delimiters are applied by strict precedence, one tier per pass: semicolon,
// then comma, then " and ", then " or ". When semicolons are present the
// chunks between them are NOT further split on comma/and/or in the same pass;
// "SQL, Python; R and JavaScript" yields exactly ["SQL, Python", "R and JavaScript"].
func SplitPhrase(phrase string) []string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil
	}

	// Edge-case pre-pass: drop experience-duration and proficiency
	// qualifiers, and unify "and/or" with the comma tier.
	phrase = yearsPatternRe.ReplaceAllString(phrase, " ")
	phrase = proficiencyRe.ReplaceAllString(phrase, "")
	phrase = andOrRe.ReplaceAllString(phrase, ", ")
	phrase = multiWhitespace.ReplaceAllString(phrase, " ")
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil
	}

	// "X (Y)" contributes both X and Y, handling abbreviation-expansion
	// pairs like "GA4 (Google Analytics 4)".
	candidates := expandParentheticals(phrase)

	var fragments []string
	for _, c := range candidates {
		fragments = append(fragments, splitPrimaryDelimiter(c)...)
	}

	return dedupeCaseInsensitive(cleanFragments(fragments))
}

// SplitBatch applies SplitPhrase to every phrase and flattens the results,
// deduplicating case-insensitively across the whole batch.
func SplitBatch(phrases []string) []string {
	var all []string
	for _, p := range phrases {
		all = append(all, SplitPhrase(p)...)
	}
	return dedupeCaseInsensitive(all)
}

// expandParentheticals returns the phrase with parenthetical content removed
// plus each parenthetical body as its own candidate.
func expandParentheticals(phrase string) []string {
	m := parenVariantRe.FindStringSubmatch(phrase)
	if m == nil {
		return []string{phrase}
	}
	outer := strings.TrimSpace(strings.TrimSpace(m[1]) + " " + strings.TrimSpace(m[3]))
	inner := strings.TrimSpace(m[2])

	var out []string
	if outer != "" {
		out = append(out, outer)
	}
	if inner != "" {
		// The body may itself be a list: "databases (MySQL, Postgres)".
		out = append(out, inner)
	}
	if len(out) == 0 {
		return []string{phrase}
	}
	return out
}

// splitPrimaryDelimiter applies exactly one delimiter tier: the highest-priority
// delimiter present in the fragment.
func splitPrimaryDelimiter(phrase string) []string {
	switch {
	case strings.Contains(phrase, ";"):
		return strings.Split(phrase, ";")
	case strings.Contains(phrase, ","):
		return strings.Split(phrase, ",")
	case splitAndRe.MatchString(phrase):
		return splitAndRe.Split(phrase, -1)
	case splitOrRe.MatchString(phrase):
		return splitOrRe.Split(phrase, -1)
	}
	return []string{phrase}
}

// cleanFragments strips leading conjunctions, bullet glyphs, and edge
// punctuation from each fragment, dropping anything that comes back empty.
func cleanFragments(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = leadingBulletsRe.ReplaceAllString(f, "")
		f = leadingConjuncRe.ReplaceAllString(f, "")
		f = fragmentPunctRe.ReplaceAllString(f, "")
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// dedupeCaseInsensitive removes duplicates preserving first-seen casing and order.
func dedupeCaseInsensitive(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
