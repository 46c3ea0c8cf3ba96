package main

import (
	"fmt"
	"os"

	"github.com/jonathan/truthweaver/internal/analysis"
	"github.com/jonathan/truthweaver/internal/config"
	"github.com/jonathan/truthweaver/internal/ingestion"
	"github.com/jonathan/truthweaver/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze transcript sessions for revealed truth and deception patterns",
	Long: `Analyze the transcripts of one subject and print the AnalysisResult as JSON.

Sessions come from exactly one of:
  --sessions file.json   a JSON object of session id -> transcript text
  --dir transcripts/     every .txt file, id = file name without extension
  --session id=path      repeatable, in the order given`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeSessionsFile string
	analyzeDir          string
	analyzePairs        []string
	analyzeShadowID     string
	analyzeOut          string
	analyzeVocabulary   string
	analyzeSources      string
	analyzeEvidence     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSessionsFile, "sessions", "s", "", "Path to JSON file mapping session id to transcript text")
	analyzeCmd.Flags().StringVarP(&analyzeDir, "dir", "d", "", "Directory of .txt transcripts")
	analyzeCmd.Flags().StringArrayVar(&analyzePairs, "session", nil, "Session as id=path (repeatable)")
	addAnalysisFlags(analyzeCmd, &analyzeShadowID, &analyzeOut, &analyzeVocabulary, &analyzeSources, &analyzeEvidence)

	analyzeCmd.MarkFlagsMutuallyExclusive("sessions", "dir", "session")
	analyzeCmd.MarkFlagsOneRequired("sessions", "dir", "session")

	rootCmd.AddCommand(analyzeCmd)
}

// addAnalysisFlags registers the flags shared by analyze and run.
func addAnalysisFlags(cmd *cobra.Command, shadowID, out, vocab, sources *string, evidence *bool) {
	cmd.Flags().StringVar(shadowID, "shadow-id", "", "Identifier of the subject being analyzed (required)")
	cmd.Flags().StringVarP(out, "out", "o", "", "Write the result JSON to this file instead of stdout")
	cmd.Flags().StringVar(vocab, "vocabulary", "", "Path to a YAML or JSON vocabulary overriding the built-in match terms")
	cmd.Flags().StringVar(sources, "sources", "", "Write per-session provenance (path, SHA256, load time) as JSON to this file")
	cmd.Flags().BoolVar(evidence, "evidence", false, "Include per-session evidence for leadership, team and skill level claims")
}

// analysisOverrides turns explicitly set analysis flags into config overrides.
func analysisOverrides(cmd *cobra.Command, o config.Overrides, shadowID, vocab string) config.Overrides {
	if cmd.Flags().Changed("shadow-id") {
		o.ShadowID = shadowID
	}
	if cmd.Flags().Changed("vocabulary") {
		o.VocabularyPath = vocab
	}
	return o
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	s, err := setup(cmd, analysisOverrides(cmd, config.Overrides{}, analyzeShadowID, analyzeVocabulary))
	if err != nil {
		return err
	}
	if err := s.requireShadowID(); err != nil {
		return err
	}

	batch, err := loadSessions()
	if err != nil {
		return err
	}

	return s.analyze(cmd, batch, analyzeOut, analyzeSources, analyzeEvidence)
}

func loadSessions() (*ingestion.Batch, error) {
	switch {
	case analyzeSessionsFile != "":
		return ingestion.LoadJSON(analyzeSessionsFile)
	case analyzeDir != "":
		return ingestion.LoadDir(analyzeDir)
	case len(analyzePairs) > 0:
		return ingestion.LoadPairs(analyzePairs)
	default:
		return nil, fmt.Errorf("%w: one of --sessions, --dir or --session is required", types.ErrMalformedInput)
	}
}

// analyze runs the analyzer over a loaded batch and writes the result.
func (s *session) analyze(cmd *cobra.Command, batch *ingestion.Batch, outPath, sourcesPath string, withEvidence bool) error {
	for _, src := range batch.Sources {
		s.log.Debug().
			Str("session_id", src.SessionID).
			Str("path", src.Path).
			Str("sha256", src.Hash).
			Msg("loaded session")
	}
	if sourcesPath != "" {
		if err := writeSources(batch, sourcesPath); err != nil {
			return err
		}
		s.log.Info().Str("path", sourcesPath).Int("sessions", len(batch.Sources)).Msg("wrote session sources")
	}
	if s.cfg.Verbose {
		s.printer.PrintSessions(batch.Sessions)
	}

	a, err := s.analyzer()
	if err != nil {
		return err
	}

	result, err := a.AnalyzeWithOptions(s.cfg.ShadowID, batch.Sessions, analysis.Options{WithEvidence: withEvidence})
	if err != nil {
		return err
	}

	s.report(result)
	return s.writeResult(cmd, result, outPath)
}

func writeSources(batch *ingestion.Batch, path string) error {
	data, err := batch.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write sources: %w", err)
	}
	return nil
}
