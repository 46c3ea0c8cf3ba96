package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/rs/zerolog"
)

// Backend names.
const (
	BackendWhisper = "whisper"
	BackendHTTP    = "http"
	BackendGemini  = "gemini"
)

// Settings selects and configures a backend.
type Settings struct {
	Backend   string
	ModelSize ModelSize
	Language  string

	WhisperCommand string

	HTTPURL     string
	HTTPModel   string // defaults to the model size name
	HTTPAPIKey  string
	HTTPPrompt  string
	HTTPTimeout time.Duration

	GeminiAPIKey string
	GeminiModel  string
}

// New builds the configured Transcriber. Callers should Close the result
// when it implements io.Closer.
func New(ctx context.Context, s Settings, log zerolog.Logger) (Transcriber, error) {
	size := s.ModelSize
	if size == "" {
		size = DefaultModelSize
	}

	switch s.Backend {
	case "", BackendWhisper:
		return NewWhisperCLI(s.WhisperCommand, size, s.Language, log), nil
	case BackendHTTP:
		if s.HTTPURL == "" {
			return nil, fmt.Errorf("%w: http backend requires a URL", types.ErrMalformedInput)
		}
		model := s.HTTPModel
		if model == "" {
			model = string(size)
		}
		return NewHTTPClient(HTTPOptions{
			URL:      s.HTTPURL,
			Model:    model,
			APIKey:   s.HTTPAPIKey,
			Language: s.Language,
			Prompt:   s.HTTPPrompt,
			Timeout:  s.HTTPTimeout,
		}), nil
	case BackendGemini:
		if s.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: gemini backend requires an API key (set GEMINI_API_KEY)", types.ErrMalformedInput)
		}
		return NewGeminiTranscriber(ctx, s.GeminiAPIKey, s.GeminiModel)
	default:
		return nil, fmt.Errorf("%w: unknown transcription backend %q", types.ErrMalformedInput, s.Backend)
	}
}
