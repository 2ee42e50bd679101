package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the global slog logger: JSON to stdout, plus Sentry for
// ERROR records when reportErrors is set.
func Setup(level slog.Level, reportErrors bool) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, level, reportErrors))
	slog.SetDefault(logger)
	return logger
}

func NewHandler(out io.Writer, level slog.Level, reportErrors bool) slog.Handler {
	handler := slog.Handler(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	if reportErrors {
		handler = NewMultiHandler(handler, NewSentryHandler(slog.LevelError))
	}
	return handler
}
