// Package types provides type definitions for structured data used throughout truthweaver.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Session is one interview transcript keyed by its identifier.
type Session struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SessionSet is the ordered collection of sessions for one subject.
// Order matters: the first language and skill level are taken in session order.
// In JSON it is an object of id -> text whose key order is preserved.
type SessionSet []Session

// IDs returns the session identifiers in order.
func (s SessionSet) IDs() []string {
	ids := make([]string, len(s))
	for i, sess := range s {
		ids[i] = sess.ID
	}
	return ids
}

// Texts returns the session texts in order.
func (s SessionSet) Texts() []string {
	texts := make([]string, len(s))
	for i, sess := range s {
		texts[i] = sess.Text
	}
	return texts
}

// Validate checks identifiers and text encoding. Empty texts are allowed.
func (s SessionSet) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, sess := range s {
		if strings.TrimSpace(sess.ID) == "" {
			return fmt.Errorf("%w: session %d has an empty id", ErrMalformedInput, i)
		}
		if _, dup := seen[sess.ID]; dup {
			return fmt.Errorf("%w: duplicate session id %q", ErrMalformedInput, sess.ID)
		}
		seen[sess.ID] = struct{}{}
		if !utf8.ValidString(sess.Text) {
			return fmt.Errorf("%w: session %q is not valid UTF-8", ErrMalformedInput, sess.ID)
		}
	}
	return nil
}

// MarshalJSON writes the set as a JSON object, keeping session order.
func (s SessionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sess := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sess.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sess.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of id -> text in document order.
// Duplicate keys and non-string values are rejected.
func (s *SessionSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: sessions must be a JSON object of id to transcript text", ErrMalformedInput)
	}

	var out SessionSet
	seen := make(map[string]struct{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		id, _ := keyTok.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("%w: session %q: transcript must be a string", ErrMalformedInput, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate session id %q", ErrMalformedInput, id)
		}
		seen[id] = struct{}{}
		out = append(out, Session{ID: id, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	*s = out
	return nil
}
