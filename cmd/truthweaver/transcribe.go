package main

import (
	"fmt"
	"io"

	"github.com/jonathan/truthweaver/internal/config"
	"github.com/jonathan/truthweaver/internal/transcription"
	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <media-file> [output-file]",
	Short: "Transcribe an audio or video file to text",
	Long: `Transcribe an audio or video file with the configured speech-to-text backend
and write the trimmed transcript as UTF-8 text.

The output defaults to the input path with its extension replaced by .txt.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTranscribe,
}

var (
	transcribeBackend   string
	transcribeModelSize string
	transcribeLanguage  string
)

func init() {
	addTranscriptionFlags(transcribeCmd, &transcribeBackend, &transcribeModelSize, &transcribeLanguage)
	rootCmd.AddCommand(transcribeCmd)
}

// addTranscriptionFlags registers the backend selection flags shared by transcribe and run.
func addTranscriptionFlags(cmd *cobra.Command, backend, modelSize, language *string) {
	cmd.Flags().StringVarP(backend, "backend", "b", "", "Transcription backend: whisper, http or gemini (default whisper)")
	cmd.Flags().StringVarP(modelSize, "model-size", "m", "", "Model size: tiny, base, small, medium or large (default small)")
	cmd.Flags().StringVarP(language, "language", "l", "", "Spoken language hint, e.g. en (default: auto-detect)")
}

// transcriptionOverrides turns explicitly set backend flags into config overrides.
func transcriptionOverrides(cmd *cobra.Command, backend, modelSize, language string) (config.Overrides, error) {
	var o config.Overrides
	if cmd.Flags().Changed("backend") {
		o.Backend = backend
	}
	if cmd.Flags().Changed("model-size") {
		size, err := transcription.ParseModelSize(modelSize)
		if err != nil {
			return o, err
		}
		o.ModelSize = string(size)
	}
	if cmd.Flags().Changed("language") {
		o.Language = language
	}
	return o, nil
}

// newTranscriber builds the configured backend. The returned func releases it.
func (s *session) newTranscriber(cmd *cobra.Command) (transcription.Transcriber, func(), error) {
	log := s.log.With().Str("component", "transcription").Logger()
	t, err := transcription.New(cmd.Context(), s.cfg.TranscriptionSettings(), log)
	if err != nil {
		return nil, nil, err
	}

	release := func() {}
	if c, ok := t.(io.Closer); ok {
		release = func() {
			if err := c.Close(); err != nil {
				s.log.Warn().Err(err).Msg("failed to close transcription backend")
			}
		}
	}
	return t, release, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	o, err := transcriptionOverrides(cmd, transcribeBackend, transcribeModelSize, transcribeLanguage)
	if err != nil {
		return err
	}

	s, err := setup(cmd, o)
	if err != nil {
		return err
	}

	t, release, err := s.newTranscriber(cmd)
	if err != nil {
		return err
	}
	defer release()

	var outputPath string
	if len(args) == 2 {
		outputPath = args[1]
	}

	res, err := transcription.TranscribeToFile(cmd.Context(), t, args[0], outputPath, s.log)
	if err != nil {
		return err
	}

	if s.cfg.Verbose {
		s.printer.PrintTranscripts([]*transcription.Result{res})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Transcription saved to %s\n", res.OutputPath)
	return nil
}
