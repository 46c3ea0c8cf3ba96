package transcription

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TranscriptExt is the extension given to transcript files.
const TranscriptExt = ".txt"

// DefaultOutputPath replaces the media file's extension with TranscriptExt.
func DefaultOutputPath(mediaPath string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + TranscriptExt
}

// Result pairs a transcript with the file it was written to.
type Result struct {
	Transcript *Transcript
	OutputPath string
}

// TranscribeToFile transcribes mediaPath and writes the trimmed text to
// outputPath, or to DefaultOutputPath when outputPath is empty.
// It returns the path written.
func TranscribeToFile(ctx context.Context, t Transcriber, mediaPath, outputPath string, log zerolog.Logger) (*Result, error) {
	info, err := os.Stat(mediaPath)
	if err != nil {
		return nil, mediaError("filesystem", mediaPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: media path %s is a directory", types.ErrMalformedInput, mediaPath)
	}

	if outputPath == "" {
		outputPath = DefaultOutputPath(mediaPath)
	}

	log.Info().
		Str("input", mediaPath).
		Str("backend", t.Name()).
		Str("model", t.Model()).
		Msg("transcribing")

	tr, err := t.Transcribe(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", mediaPath, err)
	}
	tr.Text = strings.TrimSpace(tr.Text)

	if err := os.WriteFile(outputPath, []byte(tr.Text), 0644); err != nil {
		return nil, &DependencyError{Backend: "filesystem", Message: "write transcript " + outputPath, Cause: err}
	}

	log.Info().
		Str("input", mediaPath).
		Str("output", outputPath).
		Int("chars", len(tr.Text)).
		Msg("transcription complete")

	return &Result{Transcript: tr, OutputPath: outputPath}, nil
}

// TranscribeAll transcribes independent media files with at most jobs running
// at once. Each transcript goes to its default output path, or into outDir
// when it is set. Results are returned in input order; the first failure
// cancels the remaining work.
func TranscribeAll(ctx context.Context, t Transcriber, mediaPaths []string, outDir string, jobs int, log zerolog.Logger) ([]*Result, error) {
	if jobs < 1 {
		jobs = 1
	}

	outputs := make([]string, len(mediaPaths))
	seen := make(map[string]string, len(mediaPaths))
	for i, path := range mediaPaths {
		out := DefaultOutputPath(path)
		if outDir != "" {
			out = filepath.Join(outDir, filepath.Base(out))
		}
		if prev, dup := seen[out]; dup {
			return nil, fmt.Errorf("%w: %s and %s would both be written to %s", types.ErrMalformedInput, prev, path, out)
		}
		seen[out] = path
		outputs[i] = out
	}

	results := make([]*Result, len(mediaPaths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range mediaPaths {
		g.Go(func() error {
			res, err := TranscribeToFile(gCtx, t, path, outputs[i], log)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
