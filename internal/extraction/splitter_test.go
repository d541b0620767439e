package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPhrase_DelimiterPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "semicolon wins over comma and conjunctions",
			input: "SQL, Python; R and JavaScript",
			want:  []string{"SQL, Python", "R and JavaScript"},
		},
		{
			name:  "comma tier",
			input: "Python, SQL, and Excel",
			want:  []string{"Python", "SQL", "Excel"},
		},
		{
			name:  "and tier",
			input: "communication skills and leadership",
			want:  []string{"communication skills", "leadership"},
		},
		{
			name:  "or tier",
			input: "Looker or Tableau",
			want:  []string{"Looker", "Tableau"},
		},
		{
			name:  "no delimiters",
			input: "lifecycle marketing",
			want:  []string{"lifecycle marketing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPhrase(tt.input))
		})
	}
}

func TestSplitPhrase_Parentheticals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "abbreviation expansion pair",
			input: "GA4 (Google Analytics 4)",
			want:  []string{"GA4", "Google Analytics 4"},
		},
		{
			name:  "parenthetical list",
			input: "databases (MySQL, Postgres)",
			want:  []string{"databases", "MySQL", "Postgres"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPhrase(tt.input))
		})
	}
}

func TestSplitPhrase_Qualifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "years of experience stripped",
			input: "5+ years of SQL",
			want:  []string{"SQL"},
		},
		{
			name:  "proficiency qualifier stripped",
			input: "Excel (advanced)",
			want:  []string{"Excel"},
		},
		{
			name:  "and/or unified with comma tier",
			input: "HTML and/or CSS",
			want:  []string{"HTML", "CSS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPhrase(tt.input))
		})
	}
}

func TestSplitPhrase_EmptyAndWhitespace(t *testing.T) {
	assert.Nil(t, SplitPhrase(""))
	assert.Nil(t, SplitPhrase("   "))
	assert.Nil(t, SplitPhrase("3 years of"))
}

func TestSplitPhrase_DeduplicatesFragments(t *testing.T) {
	got := SplitPhrase("SQL, sql, SQL")

	assert.Equal(t, []string{"SQL"}, got)
}

func TestSplitBatch(t *testing.T) {
	got := SplitBatch([]string{
		"Python and SQL",
		"sql, Excel",
		"",
	})

	assert.Equal(t, []string{"Python", "SQL", "Excel"}, got)
}
