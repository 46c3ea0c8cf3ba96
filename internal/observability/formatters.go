// Package observability provides logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/truthweaver/internal/transcription"
	"github.com/jonathan/truthweaver/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLen is how much of a transcript is shown per session
	previewLen = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintSessions outputs the loaded sessions in analysis order with a short preview of each.
func (p *Printer) PrintSessions(sessions types.SessionSet) {
	if len(sessions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sessions loaded: %d\n\n", len(sessions)))

	count := min(len(sessions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sessions[i]
		preview := strings.Join(strings.Fields(s.Text), " ")
		sb.WriteString(fmt.Sprintf("%d. %s (%d chars)\n", i+1, s.ID, len([]rune(s.Text))))
		if preview != "" {
			sb.WriteString(fmt.Sprintf("   %q\n", truncate(preview, previewLen)))
		}
	}
	if len(sessions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(sessions)-maxItemsToShow))
	}

	p.printBox("TRANSCRIPT SESSIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTranscripts outputs the transcript files written by a transcription batch.
func (p *Printer) PrintTranscripts(results []*transcription.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	first := results[0].Transcript
	sb.WriteString(fmt.Sprintf("Backend: %s (%s)\n\n", first.Backend, first.Model))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("• %s\n", filepath.Base(r.Transcript.SourcePath)))
		sb.WriteString(fmt.Sprintf("  → %s\n", r.OutputPath))
		if r.Transcript.Duration > 0 {
			sb.WriteString(fmt.Sprintf("  %.1fs", r.Transcript.Duration))
			if r.Transcript.Language != "" {
				sb.WriteString(fmt.Sprintf(", %s", r.Transcript.Language))
			}
			sb.WriteString("\n")
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TRANSCRIPTS WRITTEN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of the revealed truth and
// any deception patterns.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	rt := result.RevealedTruth
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Shadow:      %s\n\n", result.ShadowID))
	sb.WriteString(fmt.Sprintf("Experience:  %s\n", orDash(rt.Experience())))
	sb.WriteString(fmt.Sprintf("Language:    %s\n", orDash(rt.Language())))
	sb.WriteString(fmt.Sprintf("Mastery:     %s\n", orDash(rt.Mastery())))
	sb.WriteString(fmt.Sprintf("Leadership:  %s\n", rt.LeadershipClaims))
	sb.WriteString(fmt.Sprintf("Team:        %s\n", orDash(rt.Team())))

	if len(rt.Skills) > 0 {
		count := min(len(rt.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills:      %s", strings.Join(rt.Skills[:count], ", ")))
		if len(rt.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d)", len(rt.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(result.DeceptionPatterns) > 0 {
		sb.WriteString("\n")
		for _, dp := range result.DeceptionPatterns {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", dp.LieType))
			sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(dp.ContradictoryClaims, " vs ")))
		}
	}

	p.printBox("REVEALED TRUTH", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(v string, ok bool) string {
	if !ok {
		return "-"
	}
	return v
}
