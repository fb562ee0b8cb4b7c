// Package logging builds the slog loggers handed to components. The
// trainer keeps the console clean for the interactive surface; the
// structured record goes to a log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const logFilePerms = 0o600

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open appends to the log file at path, creating it if needed. The
// returned closer releases the file handle.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerms)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return New(file, level), file, nil
}

// Discard returns a logger that drops every record. Used in tests and
// as the fallback when the log file cannot be opened.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info for
// empty or unknown names.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
