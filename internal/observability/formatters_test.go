package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/truthweaver/internal/transcription"
	"github.com/jonathan/truthweaver/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.AnalysisResult{
		ShadowID: "phoenix_2024",
		RevealedTruth: types.RevealedTruth{
			ProgrammingExperience: "3-5 years",
			ProgrammingLanguage:   "python",
			SkillMastery:          "intermediate",
			LeadershipClaims:      types.LeadershipFabricated,
			TeamExperience:        types.TeamPlayer,
			Skills:                []string{"api", "aws", "git", "nlp", "sql", "tdd"},
		},
		DeceptionPatterns: []types.DeceptionPattern{{
			LieType:             types.LieTypeExperienceInflation,
			ContradictoryClaims: []string{"3 years", "5 years"},
		}},
	}

	p.PrintAnalysis(result)
	output := buf.String()

	assert.Contains(t, output, "REVEALED TRUTH")
	assert.Contains(t, output, "phoenix_2024")
	assert.Contains(t, output, "3-5 years")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "fabricated")
	assert.Contains(t, output, "team player")
	assert.Contains(t, output, "(+1)")
	assert.Contains(t, output, "experience_inflation")
	assert.Contains(t, output, "3 years vs 5 years")
}

func TestPrintAnalysis_Absent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		ShadowID: "s",
		RevealedTruth: types.RevealedTruth{
			ProgrammingLanguage: types.LanguageUnknown,
			LeadershipClaims:    types.LeadershipNone,
		},
		DeceptionPatterns: []types.DeceptionPattern{},
	})
	output := buf.String()

	assert.Contains(t, output, "Experience:  -")
	assert.Contains(t, output, "Language:    -")
	assert.NotContains(t, output, "⚠")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSessions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sessions := types.SessionSet{}
	for i := 1; i <= 7; i++ {
		sessions = append(sessions, types.Session{
			ID:   fmt.Sprintf("session_%d", i),
			Text: "I have been coding in python for about five years now\nand leading small teams",
		})
	}

	p.PrintSessions(sessions)
	output := buf.String()

	assert.Contains(t, output, "TRANSCRIPT SESSIONS")
	assert.Contains(t, output, "Sessions loaded: 7")
	assert.Contains(t, output, "session_1")
	assert.Contains(t, output, "session_5")
	assert.NotContains(t, output, "session_6")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "...\"", "long previews are truncated")
}

func TestPrintSessions_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSessions(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTranscripts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTranscripts([]*transcription.Result{
		{
			Transcript: &transcription.Transcript{SourcePath: "/media/s1.mp4", Backend: "http", Model: "whisper-1", Duration: 12.5, Language: "english"},
			OutputPath: "/out/s1.txt",
		},
		{
			Transcript: &transcription.Transcript{SourcePath: "/media/s2.wav", Backend: "http", Model: "whisper-1"},
			OutputPath: "/out/s2.txt",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "TRANSCRIPTS WRITTEN")
	assert.Contains(t, output, "http (whisper-1)")
	assert.Contains(t, output, "s1.mp4")
	assert.Contains(t, output, "/out/s2.txt")
	assert.Contains(t, output, "12.5s, english")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("ü", 100))
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, strings.Repeat("ü", boxWidth-7)+"...")
	assert.NotContains(t, output, strings.Repeat("ü", boxWidth-6))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "日本語...", truncate("日本語のテキストです", 6))
}
