package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewLogger builds a timestamped logger writing to w. An unparseable level
// falls back to info.
func NewLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
