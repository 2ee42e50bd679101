package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{"Title": "error.not_found"})
}

func (handler *Handler) ShowLogin(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect(homePath, fiber.StatusSeeOther)
	}
	return handler.render(c, "login", fiber.Map{"Title": "title.login"})
}
