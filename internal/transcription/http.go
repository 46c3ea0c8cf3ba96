package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPClient calls an OpenAI-compatible /v1/audio/transcriptions endpoint.
type HTTPClient struct {
	url      string
	model    string
	apiKey   string
	language string
	prompt   string
	client   *http.Client
}

// HTTPOptions configures an HTTPClient.
type HTTPOptions struct {
	URL      string
	Model    string // sent as the "model" form field
	APIKey   string // sent as a bearer token when set
	Language string
	Prompt   string // initial prompt / domain vocabulary
	Timeout  time.Duration
}

// httpResponse covers both the json and verbose_json response formats.
type httpResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// NewHTTPClient creates a new transcription HTTP client.
func NewHTTPClient(opts HTTPOptions) *HTTPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &HTTPClient{
		url:      opts.URL,
		model:    opts.Model,
		apiKey:   opts.APIKey,
		language: opts.Language,
		prompt:   opts.Prompt,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the backend name.
func (hc *HTTPClient) Name() string { return "http" }

// Model returns the model identifier sent to the server.
func (hc *HTTPClient) Model() string { return hc.model }

// Transcribe uploads the media file as multipart/form-data. Only non-default
// fields are sent, so this works with OpenAI and self-hosted whisper servers.
func (hc *HTTPClient) Transcribe(ctx context.Context, mediaPath string) (*Transcript, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return nil, mediaError(hc.Name(), mediaPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(mediaPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, mediaError(hc.Name(), mediaPath, err)
	}

	if hc.model != "" {
		_ = w.WriteField("model", hc.model)
	}
	if hc.language != "" {
		_ = w.WriteField("language", hc.language)
	}
	if hc.prompt != "" {
		_ = w.WriteField("prompt", hc.prompt)
	}
	_ = w.WriteField("response_format", "json")

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if hc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+hc.apiKey)
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, &DependencyError{Backend: hc.Name(), Message: "transcription request", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DependencyError{Backend: hc.Name(), Message: "read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &DependencyError{
			Backend: hc.Name(),
			Message: fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	var result httpResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DependencyError{Backend: hc.Name(), Message: "decode response", Cause: err}
	}

	lang := result.Language
	if lang == "" {
		lang = hc.language
	}

	return &Transcript{
		SourcePath: mediaPath,
		Text:       result.Text,
		Language:   lang,
		Duration:   result.Duration,
		Backend:    hc.Name(),
		Model:      hc.model,
	}, nil
}
