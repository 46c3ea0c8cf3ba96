// Package ingestion loads transcript sessions from disk.
package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/truthweaver/internal/types"
)

// TranscriptExt is the extension LoadDir picks up.
const TranscriptExt = ".txt"

// Batch is a loaded SessionSet plus per-session provenance.
type Batch struct {
	Sessions types.SessionSet
	Sources  []Source
}

func (b *Batch) add(id, path, text string) {
	b.Sessions = append(b.Sessions, types.Session{ID: id, Text: text})
	b.Sources = append(b.Sources, NewSource(id, path, text))
}

func (b *Batch) validate(path string) error {
	if len(b.Sessions) == 0 {
		return &LoadError{Path: path, Message: "no sessions", Cause: types.ErrMalformedInput}
	}
	if err := b.Sessions.Validate(); err != nil {
		return &LoadError{Path: path, Message: "invalid sessions", Cause: err}
	}
	return nil
}

// LoadJSON reads a JSON object mapping session id to transcript text.
// Sessions keep the key order of the file.
func LoadJSON(path string) (*Batch, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var sessions types.SessionSet
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, &LoadError{Path: path, Message: "decode sessions", Cause: fmt.Errorf("%w: %v", types.ErrMalformedInput, err)}
	}

	b := &Batch{}
	for _, s := range sessions {
		b.add(s.ID, path, NormalizeText(s.Text))
	}
	if err := b.validate(path); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadDir reads every *.txt file in dir, sorted by file name.
// The session id is the file name without its extension.
func LoadDir(dir string) (*Batch, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, &LoadError{Path: dir, Message: "not a directory", Cause: types.ErrMalformedInput}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "read directory", Cause: classify(err)}
	}

	b := &Batch{}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), TranscriptExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		b.add(sessionID(path), path, NormalizeText(string(data)))
	}

	if len(b.Sessions) == 0 {
		return nil, &LoadError{Path: dir, Message: "no " + TranscriptExt + " transcripts found", Cause: types.ErrMalformedInput}
	}
	if err := b.validate(dir); err != nil {
		return nil, err
	}
	return b, nil
}

// File names one transcript file and the session id it is loaded under.
type File struct {
	ID   string
	Path string
}

// LoadPairs reads sessions from "id=path" arguments in the order given.
// A bare path uses its file name without extension as the id.
func LoadPairs(pairs []string) (*Batch, error) {
	files := make([]File, 0, len(pairs))
	for _, pair := range pairs {
		id, path, ok := strings.Cut(pair, "=")
		if !ok {
			path = pair
			id = sessionID(pair)
		}
		files = append(files, File{ID: id, Path: path})
	}
	return LoadFiles(files)
}

// LoadFiles reads each file as one session, in order.
func LoadFiles(files []File) (*Batch, error) {
	b := &Batch{}
	names := make([]string, 0, len(files))
	for _, f := range files {
		id, path := strings.TrimSpace(f.ID), strings.TrimSpace(f.Path)
		if id == "" || path == "" {
			return nil, &LoadError{Path: f.ID + "=" + f.Path, Message: "expected id=path", Cause: types.ErrMalformedInput}
		}

		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		b.add(id, path, NormalizeText(string(data)))
		names = append(names, path)
	}

	if err := b.validate(strings.Join(names, ",")); err != nil {
		return nil, err
	}
	return b, nil
}

// SessionIDFor derives a session id from a file path: its base name without extension.
func SessionIDFor(path string) string {
	return sessionID(path)
}

// NormalizeText strips a UTF-8 byte order mark and converts CRLF and CR line endings to LF.
// Everything else is kept as spoken.
func NormalizeText(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func sessionID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: classify(err)}
		}
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil, &LoadError{Path: path, Message: "is a directory", Cause: types.ErrMalformedInput}
		}
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: classify(err)}
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}
