package transcription

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// WhisperCLI runs a locally installed whisper command line tool.
type WhisperCLI struct {
	command  []string
	size     ModelSize
	language string
	log      zerolog.Logger
}

// NewWhisperCLI creates a backend for the given command. The command may
// include arguments, e.g. "python -m whisper".
func NewWhisperCLI(command string, size ModelSize, language string, log zerolog.Logger) *WhisperCLI {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		parts = []string{"whisper"}
	}
	if size == "" {
		size = DefaultModelSize
	}
	return &WhisperCLI{
		command:  parts,
		size:     size,
		language: language,
		log:      log,
	}
}

// Name returns the backend name.
func (w *WhisperCLI) Name() string { return "whisper" }

// Model returns the model size.
func (w *WhisperCLI) Model() string { return string(w.size) }

// Transcribe runs whisper with txt output into a scratch directory and reads
// the result back.
func (w *WhisperCLI) Transcribe(ctx context.Context, mediaPath string) (*Transcript, error) {
	absPath, err := filepath.Abs(mediaPath)
	if err != nil {
		return nil, &DependencyError{Backend: w.Name(), Message: "resolve media path", Cause: err}
	}

	outDir, err := os.MkdirTemp("", "truthweaver-whisper-*")
	if err != nil {
		return nil, &DependencyError{Backend: w.Name(), Message: "create scratch directory", Cause: err}
	}
	defer os.RemoveAll(outDir)

	args := append([]string{}, w.command[1:]...)
	args = append(args,
		absPath,
		"--model", string(w.size),
		"--output_dir", outDir,
		"--output_format", "txt",
	)
	if w.language != "" {
		args = append(args, "--language", w.language)
	}

	w.log.Debug().Str("command", w.command[0]).Strs("args", args).Msg("running whisper")

	cmd := exec.CommandContext(ctx, w.command[0], args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &DependencyError{
				Backend: w.Name(),
				Message: fmt.Sprintf("exited with status %d: %s", exitErr.ExitCode(), strings.TrimSpace(string(output))),
				Cause:   err,
			}
		}
		return nil, &DependencyError{Backend: w.Name(), Message: "run command", Cause: err}
	}

	base := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	text, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return nil, &DependencyError{Backend: w.Name(), Message: "read whisper output", Cause: err}
	}

	return &Transcript{
		SourcePath: mediaPath,
		Text:       string(text),
		Language:   w.language,
		Backend:    w.Name(),
		Model:      w.Model(),
	}, nil
}
