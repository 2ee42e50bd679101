package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/profile"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	state := currentState(c)
	ctx := requestContext(c)
	state.Dashboard.Load(ctx)

	return handler.render(c, "dashboard", fiber.Map{
		"Title":         "title.dashboard",
		"ShowNav":       true,
		"User":          state.User.User(),
		"View":          state.Dashboard.View(),
		"Notifications": handler.notificationsFor(c, state),
	})
}

func (handler *Handler) ShowWorkouts(c *fiber.Ctx) error {
	state := currentState(c)
	state.Workouts.Load(requestContext(c))

	return handler.render(c, "workouts", fiber.Map{
		"Title":    "title.workouts",
		"ShowNav":  true,
		"Board":    state.Workouts.View(),
		"Weekdays": models.Weekdays,
	})
}

func (handler *Handler) ShowProfile(c *fiber.Ctx) error {
	user := currentState(c).User.User()
	bmi, hasBMI := profile.BMI(user.Height, user.Weight)

	return handler.render(c, "profile", fiber.Map{
		"Title":   "title.profile",
		"ShowNav": true,
		"User":    user,
		"BMI":     bmi,
		"HasBMI":  hasBMI,
	})
}

func (handler *Handler) ShowOnboarding(c *fiber.Ctx) error {
	return handler.render(c, "onboarding", fiber.Map{
		"Title":  "title.onboarding",
		"Form":   profile.OnboardingForm{},
		"Errors": map[string]string{},
	})
}

// SubmitOnboarding creates the profile and only then leaves the page.
func (handler *Handler) SubmitOnboarding(c *fiber.Ctx) error {
	form := profile.OnboardingForm{}
	if err := c.BodyParser(&form); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	state := currentState(c)
	ctx := requestContext(c)
	created, err := state.Profile.CompleteOnboarding(ctx, form)
	if err != nil {
		var invalid profile.FieldErrors
		if errors.As(err, &invalid) && !acceptsJSON(c) && !isHTMX(c) {
			messages := currentMessages(c)
			translated := make(map[string]string, len(invalid))
			for field, key := range invalid {
				translated[field] = translateMessage(messages, key)
			}
			c.Status(fiber.StatusUnprocessableEntity)
			return handler.render(c, "onboarding", fiber.Map{
				"Title":  "title.onboarding",
				"Form":   form,
				"Errors": translated,
			})
		}
		return respondError(c, err)
	}

	handler.rememberUser(c, created)
	return redirectOrJSON(c, homePath)
}

// notificationsFor lists pushed notifications received by this session
// followed by the backend's in-app notifications.
func (handler *Handler) notificationsFor(c *fiber.Ctx, state *State) []models.Notification {
	ctx := requestContext(c)
	notifications := state.Feed.Recent()
	stored, err := state.Client.FetchNotifications(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "fetch notifications failed", "error", err)
		return notifications
	}
	return append(notifications, stored...)
}
