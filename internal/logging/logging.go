// Package logging wires zerolog for the inspector.
//
// The TUI owns stdout/stderr, so all logging goes to a file. Every
// validation rejection in the session model is reported here rather
// than surfaced as an error: the UI must stay responsive on bad input.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Setup opens the log file and returns a configured logger plus a
// cleanup function. An empty path discards all output.
func Setup(path, level string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	cleanup := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05.000"}).
		Level(lvl).
		With().Timestamp().Logger()

	return logger, cleanup, nil
}
