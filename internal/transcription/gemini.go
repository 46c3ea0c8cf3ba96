package transcription

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/truthweaver/internal/types"
	"google.golang.org/api/option"
)

// maxInlineMediaBytes is the request size limit for inline media data.
const maxInlineMediaBytes = 20 << 20

const geminiInstruction = "Transcribe the speech in this recording verbatim. " +
	"Return only the spoken words as plain text, without timestamps, speaker labels, or commentary."

// mediaTypes maps file extensions to the MIME types accepted as inline data.
var mediaTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".aac":  "audio/aac",
	".aiff": "audio/aiff",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".mp4":  "video/mp4",
	".mov":  "video/mov",
	".webm": "video/webm",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpg",
	".avi":  "video/avi",
}

// GeminiTranscriber sends media inline to a Gemini model.
type GeminiTranscriber struct {
	client *genai.Client
	model  string
}

// NewGeminiTranscriber creates a new Gemini-backed transcriber.
func NewGeminiTranscriber(ctx context.Context, apiKey, model string) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &DependencyError{Backend: "gemini", Message: "failed to create client", Cause: err}
	}

	return &GeminiTranscriber{client: client, model: model}, nil
}

// Name returns the backend name.
func (g *GeminiTranscriber) Name() string { return "gemini" }

// Model returns the Gemini model name.
func (g *GeminiTranscriber) Model() string { return g.model }

// Transcribe uploads the media inline and returns the model's transcription.
func (g *GeminiTranscriber) Transcribe(ctx context.Context, mediaPath string) (*Transcript, error) {
	mimeType, err := mediaTypeFor(mediaPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mediaPath)
	if err != nil {
		return nil, mediaError(g.Name(), mediaPath, err)
	}
	if len(data) > maxInlineMediaBytes {
		return nil, &DependencyError{
			Backend: g.Name(),
			Message: fmt.Sprintf("media is %d bytes, inline limit is %d", len(data), maxInlineMediaBytes),
		}
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: data}, genai.Text(geminiInstruction))
	if err != nil {
		return nil, &DependencyError{Backend: g.Name(), Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, &DependencyError{Backend: g.Name(), Message: "unusable response", Cause: err}
	}

	return &Transcript{
		SourcePath: mediaPath,
		Text:       text,
		Backend:    g.Name(),
		Model:      g.model,
	}, nil
}

// Close releases resources held by the client.
func (g *GeminiTranscriber) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func mediaTypeFor(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := mediaTypes[ext]; ok {
		return mt, nil
	}
	return "", fmt.Errorf("%w: unsupported media type %q for %s", types.ErrMalformedInput, ext, filepath.Base(path))
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
