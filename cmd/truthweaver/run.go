package main

import (
	"fmt"

	"github.com/jonathan/truthweaver/internal/ingestion"
	"github.com/jonathan/truthweaver/internal/transcription"
	"github.com/jonathan/truthweaver/internal/types"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run <media-file>...",
	Short: "Transcribe interview recordings and analyze them end-to-end",
	Long: `Transcribe every media file (one per session, in the order given), then
analyze the transcripts together. Session ids are the media file names
without their extensions.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPipelineCmd,
}

var (
	runBackend        string
	runModelSize      string
	runLanguage       string
	runOutDir         string
	runJobs           int
	runShadowID       string
	runOut            string
	runVocabularyPath string
	runSources        string
	runEvidence       bool
)

func init() {
	addTranscriptionFlags(runCommand, &runBackend, &runModelSize, &runLanguage)
	addAnalysisFlags(runCommand, &runShadowID, &runOut, &runVocabularyPath, &runSources, &runEvidence)
	runCommand.Flags().StringVar(&runOutDir, "transcripts-dir", "", "Directory for transcript files (default: next to each media file)")
	runCommand.Flags().IntVarP(&runJobs, "jobs", "j", 0, "Maximum concurrent transcriptions (default 2)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	o, err := transcriptionOverrides(cmd, runBackend, runModelSize, runLanguage)
	if err != nil {
		return err
	}
	o = analysisOverrides(cmd, o, runShadowID, runVocabularyPath)
	if cmd.Flags().Changed("jobs") {
		if runJobs < 1 {
			return fmt.Errorf("--jobs must be at least 1")
		}
		o.Jobs = runJobs
	}

	s, err := setup(cmd, o)
	if err != nil {
		return err
	}
	// Fail before spending time on transcription.
	if err := s.requireShadowID(); err != nil {
		return err
	}
	ids, err := sessionIDs(args)
	if err != nil {
		return err
	}

	t, release, err := s.newTranscriber(cmd)
	if err != nil {
		return err
	}
	defer release()

	s.log.Info().
		Int("files", len(args)).
		Int("jobs", s.cfg.Jobs).
		Str("backend", t.Name()).
		Msg("starting transcription")

	results, err := transcription.TranscribeAll(cmd.Context(), t, args, runOutDir, s.cfg.Jobs, s.log)
	if err != nil {
		return err
	}
	if s.cfg.Verbose {
		s.printer.PrintTranscripts(results)
	}

	files := make([]ingestion.File, len(results))
	for i, r := range results {
		files[i] = ingestion.File{ID: ids[i], Path: r.OutputPath}
	}

	batch, err := ingestion.LoadFiles(files)
	if err != nil {
		return err
	}

	return s.analyze(cmd, batch, runOut, runSources, runEvidence)
}

// sessionIDs derives one session id per media file, in argument order.
func sessionIDs(mediaPaths []string) ([]string, error) {
	ids := make([]string, len(mediaPaths))
	seen := make(map[string]string, len(mediaPaths))
	for i, path := range mediaPaths {
		id := ingestion.SessionIDFor(path)
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate session id %q from %s and %s", types.ErrMalformedInput, id, prev, path)
		}
		seen[id] = path
		ids[i] = id
	}
	return ids, nil
}
