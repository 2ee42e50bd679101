// Package push turns push event payloads into displayable notifications.
package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/terraincognita07/stride/internal/models"
)

const (
	DefaultTitle = "Default Title"
	DefaultBody  = "Default body text"
	DefaultIcon  = "/AppIcon.svg"

	ErrorTitle = "Push Error"
	ErrorBody  = "Something went wrong handling the push notification."
)

var errPayloadNotObject = errors.New("push payload is not a json object")

type payload struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
	Body  *string `json:"body"`
	Icon  *string `json:"icon"`
}

// Decode parses an optional JSON payload. Missing fields fall back to the
// defaults; an empty payload yields the default notification.
func Decode(raw []byte) (models.Notification, error) {
	notification := models.Notification{Title: DefaultTitle, Body: DefaultBody, Icon: DefaultIcon}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return notification, nil
	}
	if trimmed[0] != '{' {
		return models.Notification{}, errPayloadNotObject
	}

	var decoded payload
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return models.Notification{}, fmt.Errorf("decode push payload: %w", err)
	}
	if value := firstNonBlank(decoded.Title); value != "" {
		notification.Title = value
	}
	if value := firstNonBlank(decoded.Text, decoded.Body); value != "" {
		notification.Body = value
	}
	if value := firstNonBlank(decoded.Icon); value != "" {
		notification.Icon = value
	}
	return notification, nil
}

// Display shows a notification to the user.
type Display func(notification models.Notification) error

// Handle decodes raw and displays the result. Any failure, including a
// panic in decoding or display, is replaced by a generic error notification
// so the event is never dropped silently.
func Handle(raw []byte, display Display) (shown models.Notification) {
	defer func() {
		if recovered := recover(); recovered != nil {
			slog.Error("push handler panicked", "panic", recovered)
			shown = showFallback(display)
		}
	}()

	notification, err := Decode(raw)
	if err != nil {
		slog.Error("push payload rejected", "error", err)
		return showFallback(display)
	}
	if err := display(notification); err != nil {
		slog.Error("push display failed", "error", err)
		return showFallback(display)
	}
	return notification
}

func showFallback(display Display) models.Notification {
	fallback := models.Notification{Title: ErrorTitle, Body: ErrorBody}
	defer func() {
		if recovered := recover(); recovered != nil {
			slog.Error("push fallback display panicked", "panic", recovered)
		}
	}()
	if err := display(fallback); err != nil {
		slog.Error("push fallback display failed", "error", err)
	}
	return fallback
}

func firstNonBlank(values ...*string) string {
	for _, value := range values {
		if value != nil && strings.TrimSpace(*value) != "" {
			return strings.TrimSpace(*value)
		}
	}
	return ""
}
