package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesBuiltInLists(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	assert.Equal(t, `(\p{Nd}+)[\s\p{Z}\x{1c}-\x{1f}\x{85}]*years?`, v.YearsPattern)
	assert.Equal(t, []string{"python", "java", "c++", "c#", "javascript", "go", "rust"}, v.Languages)
	require.Len(t, v.SkillLevels, 3)
	assert.Equal(t, "beginner", v.SkillLevels[0].Tag)
	assert.Equal(t, "intermediate", v.SkillLevels[1].Tag)
	assert.Equal(t, "advanced", v.SkillLevels[2].Tag)
	assert.Equal(t, []string{"advanced", "expert"}, v.SkillLevels[2].Terms)
	assert.Equal(t, []string{"led a team", "managed", "team lead", "headed"}, v.LeadershipPhrases)
	assert.Equal(t, []string{"work alone", "individual contributor", "never been comfortable with people"}, v.SoloPhrases)
	assert.Equal(t, []string{"work alone", "individual"}, v.IndividualTerms)
	assert.Equal(t, []string{"team"}, v.TeamTerms)
	assert.Equal(t, []string{"machine learning", "ai", "deep learning", "data science", "nlp"}, v.Keywords)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	a.Languages[0] = "cobol"
	a.SkillLevels[0].Terms[0] = "novice"

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "python", b.Languages[0])
	assert.Equal(t, "beginner", b.SkillLevels[0].Terms[0])
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, MustDefault(), v)
}

func TestLoad_PartialYAMLKeepsOtherDefaults(t *testing.T) {
	content := `
languages:
  - Kotlin
  - "  Go "
keywords: [kubernetes]
`
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"kotlin", "go"}, v.Languages, "terms should be trimmed and lower-cased")
	assert.Equal(t, []string{"kubernetes"}, v.Keywords)
	assert.Equal(t, []string{"led a team", "managed", "team lead", "headed"}, v.LeadershipPhrases)
}

func TestLoad_JSONFile(t *testing.T) {
	content := `{"team_terms": ["squad", "crew"]}`
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"squad", "crew"}, v.TeamTerms)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/vocab.yaml")
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("languages: [unterminated"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{"empty list", "languages: []", "languages"},
		{"blank term", `keywords: ["  "]`, "keywords[0]"},
		{"level without terms", "skill_levels: [{tag: novice, terms: []}]", "skill_levels[0].terms"},
		{"bad regexp", `years_pattern: '(\d+'`, "years_pattern"},
		{"no capture group", `years_pattern: '\d+ years'`, "years_pattern"},
		{"two capture groups", `years_pattern: '(\d+)\s*(years?)'`, "years_pattern"},
		{"duplicate level tags", "skill_levels: [{tag: a, terms: [x]}, {tag: a, terms: [y]}]", "skill_levels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)

			var invalid *InvalidError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
			assert.ErrorIs(t, err, types.ErrMalformedInput)
		})
	}
}

func TestYearsRegexp(t *testing.T) {
	re, err := MustDefault().YearsRegexp()
	require.NoError(t, err)
	assert.Equal(t, []string{"3 years", "3"}, re.FindStringSubmatch("i have 3 years"))
}

func TestMarshal_RoundTrips(t *testing.T) {
	original := MustDefault()
	data, err := original.Marshal()
	require.NoError(t, err)

	decoded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
