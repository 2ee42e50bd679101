package api

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/profile"
)

// GetMe returns the session profile. When the backend cannot be reached the
// last known user info is served and marked stale.
func (handler *Handler) GetMe(c *fiber.Ctx) error {
	state := currentState(c)
	record, _ := currentSession(c)
	ctx := requestContext(c)

	if err := state.User.Load(ctx); err != nil {
		cached, ok, cacheErr := handler.userInfo.Get(ctx, record.ID)
		if cacheErr != nil {
			slog.ErrorContext(ctx, "read user info failed", "error", cacheErr)
		}
		if ok {
			return c.JSON(fiber.Map{"user": cached, "stale": true})
		}
		return respondError(c, err)
	}

	user := state.User.User()
	if !user.NotFound {
		handler.rememberUser(c, user)
	}
	return c.JSON(fiber.Map{"user": user, "stale": false})
}

func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	form := profile.Form{}
	if err := c.BodyParser(&form); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := currentState(c).Profile.Save(requestContext(c), form)
	if err != nil {
		return respondError(c, err)
	}
	handler.rememberUser(c, updated)
	return c.JSON(fiber.Map{"user": updated})
}

type notificationsInput struct {
	Enabled      bool            `json:"enabled"`
	Subscription json.RawMessage `json:"subscription"`
}

func (handler *Handler) SetNotifications(c *fiber.Ctx) error {
	input := notificationsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Enabled && len(input.Subscription) == 0 {
		return apiError(c, fiber.StatusBadRequest, "subscription is required")
	}

	device, browser := profile.DetectClient(c.Get(fiber.HeaderUserAgent))
	updated, err := currentState(c).Profile.SetNotifications(requestContext(c), input.Enabled, gateway.PushSubscription{
		Subscription: input.Subscription,
		Device:       device,
		Browser:      browser,
	})
	if err != nil {
		return respondError(c, err)
	}
	handler.rememberUser(c, updated)
	return c.JSON(fiber.Map{"user": updated})
}

func (handler *Handler) UploadPicture(c *fiber.Ctx) error {
	header, err := c.FormFile("picture")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "picture is required")
	}
	file, err := header.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "picture is unreadable")
	}
	defer file.Close()

	updated, err := currentState(c).Profile.UploadPicture(requestContext(c), header.Header.Get(fiber.HeaderContentType), file)
	if err != nil {
		return respondError(c, err)
	}
	handler.rememberUser(c, updated)
	return c.JSON(fiber.Map{"user": updated})
}

// DeleteMe removes the account and ends the browser session with it.
func (handler *Handler) DeleteMe(c *fiber.Ctx) error {
	if err := currentState(c).Profile.DeleteAccount(requestContext(c)); err != nil {
		return respondError(c, err)
	}
	record, _ := currentSession(c)
	handler.endSession(c, record.ID)
	return redirectOrJSON(c, "/login")
}

func (handler *Handler) GetCachedUser(c *fiber.Ctx) error {
	record, _ := currentSession(c)
	cached, ok, err := handler.userInfo.Get(requestContext(c), record.ID)
	if err != nil {
		slog.ErrorContext(requestContext(c), "read user info failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to read user info")
	}
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(fiber.Map{"user": cached})
}

func (handler *Handler) ClearCachedUser(c *fiber.Ctx) error {
	record, _ := currentSession(c)
	if err := handler.userInfo.Clear(requestContext(c), record.ID); err != nil {
		slog.ErrorContext(requestContext(c), "clear user info failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to clear user info")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) rememberUser(c *fiber.Ctx, user models.UserProfile) {
	record, _ := currentSession(c)
	ctx := requestContext(c)
	if err := handler.userInfo.Set(ctx, record.ID, user); err != nil {
		slog.ErrorContext(ctx, "store user info failed", "error", err)
	}
}
