// Package transcription turns recorded interviews into plain-text transcripts
// by calling an external speech-to-text model.
package transcription

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/truthweaver/internal/types"
)

// ModelSize selects the size of the speech model.
type ModelSize string

// Supported model sizes.
const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

// DefaultModelSize is used when no size is configured.
const DefaultModelSize = ModelSmall

// ModelSizes returns every supported size, smallest first.
func ModelSizes() []ModelSize {
	return []ModelSize{ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge}
}

// ParseModelSize validates a model size name.
func ParseModelSize(s string) (ModelSize, error) {
	size := ModelSize(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ModelSizes() {
		if size == known {
			return size, nil
		}
	}
	return "", fmt.Errorf("%w: unknown model size %q (want one of tiny, base, small, medium, large)", types.ErrMalformedInput, s)
}

// Transcriber is the interface for speech-to-text backends.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (*Transcript, error)
	Name() string  // "whisper", "http", "gemini"
	Model() string // model identifier for logs
}

// Transcript is the text recognized from one media file.
type Transcript struct {
	SourcePath string
	Text       string
	Language   string  // empty if the backend does not report it
	Duration   float64 // audio duration in seconds, 0 if unknown
	Backend    string
	Model      string
}
