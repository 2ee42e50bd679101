package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/dashboard"
	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/profile"
	"github.com/terraincognita07/stride/internal/workoutplan"
)

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", path)
		return c.SendStatus(fiber.StatusOK)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	if isHTMX(c) {
		rendered := translateMessage(currentMessages(c), message)
		return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\">%s</div>", template.HTMLEscapeString(rendered)))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// fieldErrors answers 422 with every invalid field translated for the
// current language.
func fieldErrors(c *fiber.Ctx, invalid profile.FieldErrors) error {
	messages := currentMessages(c)
	fields := make(map[string]string, len(invalid))
	for field, key := range invalid {
		fields[field] = translateMessage(messages, key)
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid input", "fields": fields})
}

// respondError maps domain and gateway failures to HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	var invalid profile.FieldErrors
	if errors.As(err, &invalid) {
		return fieldErrors(c, invalid)
	}

	switch {
	case errors.Is(err, gateway.ErrAuthentication):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, dashboard.ErrReadOnlyDay):
		return apiError(c, fiber.StatusConflict, "only today can be edited")
	case errors.Is(err, dashboard.ErrIndexRange),
		errors.Is(err, workoutplan.ErrCardNotFound),
		errors.Is(err, workoutplan.ErrNotAssigned),
		errors.Is(err, workoutplan.ErrNotFavorited):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, workoutplan.ErrNotDeletable),
		errors.Is(err, workoutplan.ErrOwnCard):
		return apiError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, workoutplan.ErrAlreadyAssigned),
		errors.Is(err, workoutplan.ErrAlreadyFavorited):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, dashboard.ErrUnknownMetric),
		errors.Is(err, dashboard.ErrInvalidValue),
		errors.Is(err, dashboard.ErrEmptyTitle),
		errors.Is(err, workoutplan.ErrEmptyTitle),
		errors.Is(err, workoutplan.ErrNoExercises),
		errors.Is(err, workoutplan.ErrUnknownDay),
		errors.Is(err, profile.ErrUnsupportedImage):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gateway.ErrNoResponse), errors.Is(err, profile.ErrUploadFailed):
		return apiError(c, fiber.StatusBadGateway, err.Error())
	}

	if status, ok := gateway.StatusCode(err); ok {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "backend request failed", "status": status})
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if parsed, err := url.Parse(candidate); err == nil && parsed.IsAbs() {
		candidate = parsed.RequestURI()
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	return candidate
}
