package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillType_Valid(t *testing.T) {
	for _, st := range []SkillType{SkillTypeCore, SkillTypeTool, SkillTypeCandidate, SkillTypeRejected} {
		assert.True(t, st.Valid(), "%q should be valid", st)
	}
	assert.False(t, SkillType("").Valid())
	assert.False(t, SkillType("soft_skill").Valid())
}

func TestMatchType_Valid(t *testing.T) {
	for _, mt := range []MatchType{MatchExact, MatchAlias, MatchCanonical, MatchFuzzy, MatchSynonym, MatchUnmatched, MatchNone} {
		assert.True(t, mt.Valid(), "%q should be valid", mt)
	}
	assert.False(t, MatchType("partial").Valid())
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "SQL", want: "sql"},
		{name: "spaces to underscores", input: "Google Analytics 4", want: "google_analytics_4"},
		{name: "punctuation", input: "A/B Testing", want: "a_b_testing"},
		{name: "surrounding whitespace", input: "  Lifecycle Marketing  ", want: "lifecycle_marketing"},
		{name: "repeated separators", input: "CI -- CD", want: "ci_cd"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "++", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKey(tt.input))
		})
	}
}
