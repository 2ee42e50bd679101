package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/achievements"
	"github.com/terraincognita07/stride/internal/push"
)

// ListAchievements reports every catalog entry against the user's progress.
func (handler *Handler) ListAchievements(c *fiber.Ctx) error {
	state := currentState(c)
	if err := state.User.Load(requestContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"achievements": achievements.Statuses(state.User.User().Achievements)})
}

func (handler *Handler) CurrentAchievement(c *fiber.Ctx) error {
	achievement, ok := currentState(c).Inbox.Current()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(achievement)
}

func (handler *Handler) HideAchievement(c *fiber.Ctx) error {
	currentState(c).Inbox.Hide()
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	state := currentState(c)
	return c.JSON(fiber.Map{"notifications": handler.notificationsFor(c, state)})
}

func (handler *Handler) DeleteNotification(c *fiber.Ctx) error {
	if err := currentState(c).Client.RemoveNotification(requestContext(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReceivePush accepts a push event for this session. It always answers with
// the notification that was shown, the generic error one included.
func (handler *Handler) ReceivePush(c *fiber.Ctx) error {
	state := currentState(c)
	shown := push.Handle(c.Body(), state.Feed.Display)
	return c.Status(fiber.StatusAccepted).JSON(shown)
}
