package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates the process logger. Level comes from KATAPULT_LOG_LEVEL;
// the time attribute is dropped for cleaner terminal output.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo

	if val := strings.ToLower(os.Getenv("KATAPULT_LOG_LEVEL")); val != "" {
		switch val {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			// unknown value, keep default
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
