// Package extraction turns raw job-description text into candidate skill phrases.
package extraction

import (
	"regexp"
	"sort"
)

// Sections holds the required/desired partitions of a job description.
// When no section headers are found, the entire text is treated as required.
type Sections struct {
	Required string
	Desired  string
	FullText string
}

var (
	requiredHeaderRe = regexp.MustCompile(`(?im)^[^\S\n]*(?:required|requirements?|minimum qualifications?|basic qualifications?|must[- ]haves?|what you(?:['’]ll)? need|required skills?(?: (?:&|and) experience)?)\b[^\n]{0,40}:?[^\S\n]*$`)
	desiredHeaderRe  = regexp.MustCompile(`(?im)^[^\S\n]*(?:preferred|desired|nice[- ]to[- ]haves?|bonus(?: points)?|plus(?:es)?|preferred (?:skills?|qualifications?)|good to have)\b[^\n]{0,40}:?[^\S\n]*$`)
)

type headerMark struct {
	start    int
	end      int
	required bool
}

// ParseSections splits text on required/desired section headers. Headers are
// matched best-effort: a malformed header simply fails to match and the text
// falls through to the full-text-as-required fallback.
func ParseSections(text string) Sections {
	if text == "" {
		return Sections{}
	}

	marks := collectHeaders(text)
	if len(marks) == 0 {
		return Sections{Required: text, FullText: text}
	}

	var required, desired string
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		body := text[m.end:end]
		if m.required {
			required += body
		} else {
			desired += body
		}
	}

	// Nothing matched as required: keep the whole text so downstream
	// extraction still sees every phrase.
	if required == "" && desired == "" {
		required = text
	}

	return Sections{Required: required, Desired: desired, FullText: text}
}

// collectHeaders finds every section header, ordered by position. Overlapping
// matches keep the earlier one.
func collectHeaders(text string) []headerMark {
	var marks []headerMark
	for _, loc := range requiredHeaderRe.FindAllStringIndex(text, -1) {
		marks = append(marks, headerMark{start: loc[0], end: loc[1], required: true})
	}
	for _, loc := range desiredHeaderRe.FindAllStringIndex(text, -1) {
		marks = append(marks, headerMark{start: loc[0], end: loc[1], required: false})
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].start < marks[j].start })

	deduped := marks[:0]
	lastEnd := -1
	for _, m := range marks {
		if m.start < lastEnd {
			continue
		}
		deduped = append(deduped, m)
		lastEnd = m.end
	}
	return deduped
}
