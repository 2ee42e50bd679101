package logging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler reports records at or above a level to Sentry. An "error"
// attribute holding an error is captured as an exception, anything else as
// a message.
type SentryHandler struct {
	level  slog.Level
	attrs  []slog.Attr
	group  string
	hubFor func(ctx context.Context) *sentry.Hub
}

func NewSentryHandler(level slog.Level) *SentryHandler {
	return &SentryHandler{level: level, hubFor: hubFromContext}
}

func hubFromContext(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *SentryHandler) Handle(ctx context.Context, record slog.Record) error {
	hub := h.hubFor(ctx)
	if hub == nil || hub.Client() == nil {
		return nil
	}

	extra := map[string]any{}
	var captured error
	collect := func(attr slog.Attr) bool {
		key := attr.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		if err, ok := attr.Value.Any().(error); ok && attr.Key == "error" {
			captured = err
		}
		extra[key] = attr.Value.String()
		return true
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	record.Attrs(collect)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(record.Level))
		scope.SetContext("log", extra)
		if captured != nil {
			hub.CaptureException(errors.Join(errors.New(record.Message), captured))
			return
		}
		hub.CaptureMessage(record.Message)
	})
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cloned := *h
	cloned.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &cloned
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	cloned := *h
	if cloned.group != "" {
		name = cloned.group + "." + name
	}
	cloned.group = name
	return &cloned
}

func sentryLevel(level slog.Level) sentry.Level {
	switch {
	case level >= slog.LevelError:
		return sentry.LevelError
	case level >= slog.LevelWarn:
		return sentry.LevelWarning
	case level >= slog.LevelInfo:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
