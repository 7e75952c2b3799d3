// Package logging owns the process logger shared by the library and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	out      io.Writer = os.Stderr
	levelVar           = &slog.LevelVar{}
	logger   *slog.Logger
)

// Logger returns the shared JSON logger. It logs at Info until told otherwise.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newLogger(out)
	}
	return logger
}

// SetOutput redirects the logger. Loggers already handed out keep writing to
// the previous writer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger = newLogger(w)
}

// SetLevel changes the level of every logger handed out so far.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetRawLogLevel parses a level name; unknown names mean info.
func SetRawLogLevel(raw string) {
	var level slog.Level

	switch strings.ToLower(raw) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	SetLevel(level)
}

// Discard silences the logger, mostly for tests.
func Discard() {
	SetOutput(io.Discard)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: levelVar,
	}))
}
