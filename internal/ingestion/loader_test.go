package ingestion

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON_PreservesOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sessions.json", `{
		"session_3": "I know Java",
		"session_1": "I have 3 years",
		"session_2": "Actually 5 years"
	}`)

	b, err := LoadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"session_3", "session_1", "session_2"}, b.Sessions.IDs())
	assert.Equal(t, "I have 3 years", b.Sessions[1].Text)
	require.Len(t, b.Sources, 3)
	assert.Equal(t, path, b.Sources[0].Path)
	assert.Equal(t, computeHash("I know Java"), b.Sources[0].Hash)
}

func TestLoadJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{ nope`},
		{"array", `["a", "b"]`},
		{"non-string value", `{"s1": 3}`},
		{"duplicate key", `{"s1": "a", "s1": "b"}`},
		{"empty object", `{}`},
		{"empty id", `{"": "text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "sessions.json", tt.content)

			_, err := LoadJSON(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrMalformedInput)

			var le *LoadError
			assert.ErrorAs(t, err, &le)
			assert.Equal(t, path, le.Path)
		})
	}
}

func TestLoadJSON_FileNotFound(t *testing.T) {
	_, err := LoadJSON("/nonexistent/sessions.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "session_2.txt", "Actually I have 5 years\r\nof Python")
	writeFile(t, dir, "session_1.txt", "\xef\xbb\xbfI have 3 years")
	writeFile(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	b, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"session_1", "session_2"}, b.Sessions.IDs())
	assert.Equal(t, "I have 3 years", b.Sessions[0].Text, "byte order mark stripped")
	assert.Equal(t, "Actually I have 5 years\nof Python", b.Sessions[1].Text, "CRLF normalized")
	assert.Equal(t, filepath.Join(dir, "session_2.txt"), b.Sources[1].Path)
}

func TestLoadDir_Empty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "no transcripts here")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), "no .txt transcripts found")
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
}

func TestLoadPairs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "I lead the team")
	b := writeFile(t, dir, "interview_b.txt", "I work alone")

	batch, err := LoadPairs([]string{"second=" + a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"second", "interview_b"}, batch.Sessions.IDs())
	assert.Equal(t, []string{"I lead the team", "I work alone"}, batch.Sessions.Texts())
}

func TestLoadPairs_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "text")

	tests := []struct {
		name  string
		pairs []string
	}{
		{"no pairs", nil},
		{"empty id", []string{"=" + a}},
		{"empty path", []string{"s1="}},
		{"missing file", []string{"s1=" + filepath.Join(dir, "missing.txt")}},
		{"duplicate id", []string{"s1=" + a, "s1=" + a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPairs(tt.pairs)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrMalformedInput)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unchanged", "I have  3 years", "I have  3 years"},
		{"crlf", "a\r\nb", "a\nb"},
		{"cr", "a\rb", "a\nb"},
		{"bom", "\ufeffhello", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestBatch_ToJSON(t *testing.T) {
	b := &Batch{}
	b.add("s1", "/tmp/s1.txt", "hello")

	data, err := b.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id": "s1"`)
	assert.Contains(t, string(data), `"hash": "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"`)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash("x"), computeHash("x"))
	assert.NotEqual(t, computeHash("x"), computeHash("y"))
	assert.Len(t, computeHash(""), 64)
}

func TestLoadFiles_ErrorClasses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	dir := t.TempDir()
	loop := filepath.Join(dir, "loop.txt")
	require.NoError(t, os.Symlink("loop.txt", loop))

	_, err := LoadFiles([]File{{ID: "s1", Path: loop}})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDependencyFailure)
	assert.NotErrorIs(t, err, types.ErrMalformedInput)

	_, err = LoadFiles([]File{{ID: "s1", Path: dir}})
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), "is a directory")

	_, err = LoadFiles([]File{{ID: "s1", Path: filepath.Join(dir, "missing.txt")}})
	assert.ErrorIs(t, err, types.ErrMalformedInput)
}

func TestLoadDir_NotADirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "text")

	_, err := LoadDir(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), "not a directory")
}
