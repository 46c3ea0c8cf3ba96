package transcription

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWhisperScript mimics the whisper CLI: it writes <base>.txt into
// --output_dir and records its arguments next to the output.
const fakeWhisperScript = `#!/bin/sh
in="$1"
shift
args="$*"
while [ $# -gt 0 ]; do
  case "$1" in
    --output_dir) dir="$2"; shift 2 ;;
    *) shift ;;
  esac
done
base=$(basename "$in")
base="${base%.*}"
printf '  I led a team for 5 years  \n' > "$dir/$base.txt"
printf '%s' "$args" > "$ARGS_FILE"
`

const failingWhisperScript = `#!/bin/sh
echo "RuntimeError: model not found" >&2
exit 3
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "whisper")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func TestWhisperCLI_Transcribe(t *testing.T) {
	script := writeScript(t, fakeWhisperScript)
	argsFile := filepath.Join(t.TempDir(), "args")
	t.Setenv("ARGS_FILE", argsFile)

	media := writeMedia(t, t.TempDir(), "session_1.mp4")
	w := NewWhisperCLI(script, ModelMedium, "en", zerolog.Nop())

	tr, err := w.Transcribe(context.Background(), media)
	require.NoError(t, err)

	assert.Equal(t, "  I led a team for 5 years  \n", tr.Text, "backends return raw text; trimming happens on write")
	assert.Equal(t, "whisper", tr.Backend)
	assert.Equal(t, "medium", tr.Model)
	assert.Equal(t, "en", tr.Language)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "--model medium")
	assert.Contains(t, string(args), "--output_format txt")
	assert.Contains(t, string(args), "--language en")
}

func TestWhisperCLI_Failure(t *testing.T) {
	script := writeScript(t, failingWhisperScript)
	media := writeMedia(t, t.TempDir(), "a.wav")

	_, err := NewWhisperCLI(script, ModelTiny, "", zerolog.Nop()).Transcribe(context.Background(), media)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDependencyFailure)
	assert.Contains(t, err.Error(), "model not found")
	assert.Contains(t, err.Error(), "status 3")
}

func TestWhisperCLI_MissingCommand(t *testing.T) {
	media := writeMedia(t, t.TempDir(), "a.wav")

	_, err := NewWhisperCLI("/nonexistent/whisper-binary", ModelTiny, "", zerolog.Nop()).Transcribe(context.Background(), media)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDependencyFailure)
}

func TestNewWhisperCLI_Defaults(t *testing.T) {
	w := NewWhisperCLI("  ", "", "", zerolog.Nop())
	assert.Equal(t, []string{"whisper"}, w.command)
	assert.Equal(t, "small", w.Model())

	w = NewWhisperCLI("python -m whisper", ModelBase, "", zerolog.Nop())
	assert.Equal(t, []string{"python", "-m", "whisper"}, w.command)
}
