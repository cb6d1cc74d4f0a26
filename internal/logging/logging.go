package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const timeLayout = "2006-01-02 15:04:05"

// New creates a console slog.Logger with provided level string.
func New(level string) *slog.Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter builds a text logger writing to w.
func NewWithWriter(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeLayout))
			}
			return a
		},
	})
	return slog.New(handler)
}

// Open tees log lines to stdout and, when file is set, to an append-only log file.
// The returned close func releases the file.
func Open(level, file string) (*slog.Logger, func() error, error) {
	if file == "" {
		return New(level), func() error { return nil }, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", file, err)
	}

	return NewWithWriter(level, io.MultiWriter(os.Stdout, f)), f.Close, nil
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
