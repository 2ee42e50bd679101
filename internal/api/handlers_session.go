package api

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
)

type sessionInput struct {
	AccessToken string `json:"access_token" form:"access_token"`
}

// CreateSession stores an access token issued by the identity provider and
// binds it to this browser. JWT tokens never outlive their exp claim.
func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	input := sessionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	token := strings.TrimSpace(input.AccessToken)
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "access token is required")
	}

	now := handler.now().UTC()
	expiresAt := now.Add(handler.sessionTTL)
	if tokenExpiry, ok := gateway.TokenExpiry(token); ok {
		if !tokenExpiry.After(now) {
			return apiError(c, fiber.StatusUnauthorized, "access token expired")
		}
		if tokenExpiry.Before(expiresAt) {
			expiresAt = tokenExpiry.UTC()
		}
	}

	record := models.BrowserSession{
		ID:          uuid.NewString(),
		AccessToken: token,
		Language:    currentLanguage(c),
		ExpiresAt:   expiresAt,
	}
	if record.Language == "" {
		record.Language = handler.i18n.DefaultLanguage()
	}
	if err := handler.repositories.Sessions.Create(&record); err != nil {
		slog.ErrorContext(requestContext(c), "create session failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	if err := handler.setSessionCookie(c, record.ID, expiresAt); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, homePath)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	record, _ := currentSession(c)
	handler.endSession(c, record.ID)
	return redirectOrJSON(c, "/login")
}

// endSession forgets everything stored for the session.
func (handler *Handler) endSession(c *fiber.Ctx, sessionID string) {
	ctx := requestContext(c)
	if err := handler.userInfo.Clear(ctx, sessionID); err != nil {
		slog.ErrorContext(ctx, "clear user info failed", "error", err)
	}
	if err := handler.repositories.Sessions.Delete(sessionID); err != nil {
		slog.ErrorContext(ctx, "delete session failed", "error", err)
	}
	handler.states.Drop(sessionID)
	handler.clearSessionCookie(c)
}
