package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/models"
)

var errMissingSession = errors.New("missing session")

func (handler *Handler) SessionRequired(c *fiber.Ctx) error {
	record, err := handler.authenticateRequest(c)
	if err != nil {
		handler.clearSessionCookie(c)
		if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return redirectOrJSON(c, "/login")
	}

	c.Locals(contextSessionKey, record)
	c.Locals(contextStateKey, handler.states.Get(record.ID))
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.BrowserSession, error) {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return models.BrowserSession{}, errMissingSession
	}
	sessionID, err := handler.codec.open(sessionCookieScope, raw)
	if err != nil {
		return models.BrowserSession{}, err
	}
	return handler.repositories.Sessions.FindActive(string(sessionID), handler.now().UTC())
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, sessionID string, expiresAt time.Time) error {
	sealed, err := handler.codec.seal(sessionCookieScope, []byte(sessionID))
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	if c.Cookies(sessionCookieName) == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
