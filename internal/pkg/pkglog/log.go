package pkglog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogging installs a JSON slog handler on stdout as the default logger.
// The level comes from LOG_LEVEL (debug, info, warn, error).
func InitLogging() {
	InitLoggingTo(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func InitLoggingTo(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
