package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhrases_Bullets(t *testing.T) {
	e := NewExtractor(nil)
	text := `Responsibilities:
- Campaign reporting
* Email automation
1. Budget planning
• Paid search
`

	phrases := e.ExtractPhrases(text)

	assert.Contains(t, phrases, "Campaign reporting")
	assert.Contains(t, phrases, "Email automation")
	assert.Contains(t, phrases, "Budget planning")
	assert.Contains(t, phrases, "Paid search")
}

func TestExtractPhrases_BulletLabelBeforeColon(t *testing.T) {
	e := NewExtractor(nil)
	text := "- Analytics: own dashboards and weekly reporting for the team"

	phrases := e.ExtractPhrases(text)

	assert.Contains(t, phrases, "Analytics")
	assert.NotContains(t, phrases, "own dashboards and weekly reporting for the team")
}

func TestExtractPhrases_IndicatorTriggers(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "experience with", text: "Experience with marketing automation", want: "marketing automation"},
		{name: "proficiency in", text: "Proficiency in data visualization", want: "data visualization"},
		{name: "knowledge of", text: "Knowledge of paid media", want: "paid media"},
		{name: "familiarity with", text: "Familiarity with email marketing", want: "email marketing"},
		{name: "strong skills greedy", text: "Strong communication skills and leadership abilities required", want: "communication skills and leadership"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phrases := e.ExtractPhrases(tt.text)
			assert.Contains(t, phrases, tt.want)
		})
	}
}

func TestExtractPhrases_IndicatorTrimsSentenceTail(t *testing.T) {
	e := NewExtractor(nil)
	text := "Experience with data analysis is a must for this role"

	phrases := e.ExtractPhrases(text)

	assert.Contains(t, phrases, "data analysis")
	for _, p := range phrases {
		assert.NotContains(t, p, "must")
	}
}

func TestExtractPhrases_KnownTermScan(t *testing.T) {
	e := NewExtractor([]string{"hubspot", "sql", "google analytics 4"})
	text := "Our team lives in HubSpot and Google Analytics 4 dashboards all day."

	phrases := e.ExtractPhrases(text)

	assert.Contains(t, phrases, "hubspot")
	assert.Contains(t, phrases, "google analytics 4")
	assert.NotContains(t, phrases, "sql")
}

func TestExtractPhrases_CommaLists(t *testing.T) {
	e := NewExtractor(nil)
	text := "You will use tools such as Tableau, Looker and Excel."

	phrases := e.ExtractPhrases(text)

	assert.Contains(t, phrases, "Tableau")
	assert.Contains(t, phrases, "Looker")
	assert.Contains(t, phrases, "Excel")
}

func TestExtractPhrases_DeduplicatesAcrossStrategies(t *testing.T) {
	e := NewExtractor([]string{"sql"})
	text := "- SQL\nExperience with SQL required."

	phrases := e.ExtractPhrases(text)

	count := 0
	for _, p := range phrases {
		if p == "SQL" || p == "sql" {
			count++
		}
	}
	assert.Equal(t, 1, count, "case-insensitive duplicates should collapse: %v", phrases)
}

func TestExtractPhrases_EmptyInput(t *testing.T) {
	e := NewExtractor(nil)

	assert.Empty(t, e.ExtractPhrases(""))
	assert.Empty(t, e.ExtractPhrases("   \n\t  "))
}

func TestCleanPhrase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bullet glyphs", input: "- SQL", want: "SQL"},
		{name: "edge punctuation", input: "  Python,  ", want: "Python"},
		{name: "parenthetical", input: "Tableau (preferred)", want: "Tableau"},
		{name: "years pattern", input: "5+ years of Python", want: "Python"},
		{name: "whitespace collapse", input: "data   driven\tmarketing", want: "data driven marketing"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "--- ...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhrase(tt.input))
		})
	}
}

func TestIsValidPhrase(t *testing.T) {
	assert.True(t, isValidPhrase("SQL"))
	assert.True(t, isValidPhrase("conversion rate optimization"))
	assert.False(t, isValidPhrase("x"), "below minimum length")
	assert.False(t, isValidPhrase("one two three four five six"), "too many words")
	assert.False(t, isValidPhrase("this phrase is definitely much longer than fifty characters total"), "too long")
}
