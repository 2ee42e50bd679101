package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/models"
)

const (
	sessionCookieName  = "stride_session"
	sessionCookieScope = "session"
	languageCookieName = "stride_lang"
	contextSessionKey  = "current_session"
	contextStateKey    = "current_state"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentSession(c *fiber.Ctx) (models.BrowserSession, bool) {
	record, ok := c.Locals(contextSessionKey).(models.BrowserSession)
	return record, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}
