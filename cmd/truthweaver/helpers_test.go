package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command in-process from an empty working
// directory, with every flag reset to its default first.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(t.TempDir())
	resetFlags(rootCmd)

	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errBuf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// fakeWhisper installs a stand-in for the whisper CLI that "transcribes"
// a media file by copying its bytes, padded with whitespace.
func fakeWhisper(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	script := `#!/bin/sh
in="$1"
shift
while [ $# -gt 0 ]; do
  case "$1" in
    --output_dir) dir="$2"; shift 2 ;;
    *) shift ;;
  esac
done
base=$(basename "$in")
base="${base%.*}"
{ printf '  '; cat "$in"; printf '\n\n'; } > "$dir/$base.txt"
`
	path := filepath.Join(t.TempDir(), "whisper")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	t.Setenv("TRUTHWEAVER_WHISPER_COMMAND", path)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
