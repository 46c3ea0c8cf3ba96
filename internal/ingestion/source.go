package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source records where a session's text came from
type Source struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the normalized text
	LoadedAt  string `json:"loaded_at"` // RFC3339 format
}

// NewSource creates a Source stamped with the current time
func NewSource(sessionID, path, text string) Source {
	return Source{
		SessionID: sessionID,
		Path:      path,
		Hash:      computeHash(text),
		LoadedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals the batch's sources to pretty-printed JSON
func (b *Batch) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(b.Sources, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sources to JSON: %w", err)
	}
	return jsonBytes, nil
}
