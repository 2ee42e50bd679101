package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/guard"
)

const (
	homePath       = "/"
	onboardingPath = "/onboarding"
)

// Protected admits users with a profile and sends the rest to onboarding.
func (handler *Handler) Protected() fiber.Handler {
	return guard.New(guard.Config{
		Mode:      guard.ModeProtect,
		Resolve:   profileCheck,
		Target:    onboardingPath,
		OnAllowed: handler.primeProfile,
	})
}

// OnboardingOnly admits users without a profile and sends the rest home.
func (handler *Handler) OnboardingOnly() fiber.Handler {
	return guard.New(guard.Config{
		Mode:    guard.ModeReverse,
		Resolve: profileCheck,
		Target:  homePath,
	})
}

// profileCheck issues a fresh GET_USER for the guarded page.
func profileCheck(c *fiber.Ctx) guard.Check {
	state := currentState(c)
	return func(ctx context.Context) error {
		_, err := state.Client.FetchUser(ctx)
		return err
	}
}

// primeProfile loads the session's cached profile and remembers it as the
// last known user info.
func (handler *Handler) primeProfile(c *fiber.Ctx, _ guard.Decision) {
	state := currentState(c)
	if err := state.User.Load(requestContext(c)); err != nil {
		return
	}
	handler.rememberUser(c, state.User.User())
}
