package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/truthweaver/internal/analysis"
	"github.com/jonathan/truthweaver/internal/config"
	"github.com/jonathan/truthweaver/internal/observability"
	"github.com/jonathan/truthweaver/internal/schemas"
	"github.com/jonathan/truthweaver/internal/types"
	"github.com/jonathan/truthweaver/internal/vocabulary"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session holds what every subcommand needs after configuration is resolved.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	printer *observability.Printer
	runID   string
}

// setup resolves configuration and builds the logger for one invocation.
// Subcommand overrides are merged with the root's persistent flags.
func setup(cmd *cobra.Command, o config.Overrides) (*session, error) {
	o.EnvFile = envFile
	o.ConfigPath = configPath
	if cmd.Flags().Changed("log-level") {
		o.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		o.LogFormat = logFormat
	}
	if cmd.Flags().Changed("verbose") {
		o.Verbose = verbose
	}

	cfg, err := config.Load(o)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()).
		With().
		Str("run_id", runID).
		Str("command", cmd.Name()).
		Logger()

	if configPath != "" {
		log.Debug().Str("path", configPath).Msg("loaded config file")
	}

	return &session{
		cfg:     cfg,
		log:     log,
		printer: observability.NewPrinter(cmd.ErrOrStderr()),
		runID:   runID,
	}, nil
}

// analyzer builds an Analyzer from the configured vocabulary file, or the defaults.
func (s *session) analyzer() (*analysis.Analyzer, error) {
	vocab, err := vocabulary.Load(s.cfg.VocabularyPath)
	if err != nil {
		return nil, err
	}
	if s.cfg.VocabularyPath != "" {
		s.log.Debug().Str("path", s.cfg.VocabularyPath).Msg("loaded vocabulary")
	}
	return analysis.New(vocab)
}

// requireShadowID fails when no subject identifier was configured.
func (s *session) requireShadowID() error {
	if s.cfg.ShadowID == "" {
		return fmt.Errorf("%w: --shadow-id is required (or set %sSHADOW_ID)", types.ErrMalformedInput, config.EnvPrefix)
	}
	return nil
}

// writeResult validates the result against its schema and writes it as
// indented JSON to outPath, or to stdout when outPath is empty.
func (s *session) writeResult(cmd *cobra.Command, result *types.AnalysisResult, outPath string) error {
	if err := schemas.ValidateResult(result); err != nil {
		return fmt.Errorf("result failed schema validation: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	s.log.Info().Str("path", outPath).Msg("wrote analysis result")
	return nil
}

// report logs the outcome of an analysis and prints the verbose summary.
func (s *session) report(result *types.AnalysisResult) {
	s.log.Info().
		Str("shadow_id", result.ShadowID).
		Int("deception_patterns", len(result.DeceptionPatterns)).
		Msg("analysis complete")

	if s.cfg.Verbose {
		s.printer.PrintAnalysis(result)
	}
}
