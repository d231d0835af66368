// Package telemetry sets up the structured logger. The TUI owns the terminal,
// so log output goes to a file.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps a charm logger together with the file it writes to.
type Logger struct {
	*log.Logger
	w io.WriteCloser
}

// Open creates a logger appending logfmt lines to path at the given level.
// An empty path discards all output.
func Open(path, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	}
	return &Logger{Logger: newLogger(w, lvl), w: w}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	w := nopCloser{Writer: io.Discard}
	return &Logger{Logger: newLogger(w, log.FatalLevel), w: w}
}

// New wraps an arbitrary writer, mainly for tests.
func New(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: newLogger(w, level), w: nopCloser{Writer: w}}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "tusavi",
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
