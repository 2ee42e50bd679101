package guard

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalsKey is where the middleware stores the Decision for handlers.
const LocalsKey = "guard_decision"

type Mode int

const (
	ModeProtect Mode = iota
	ModeReverse
)

type Config struct {
	Mode Mode
	// Resolve builds the profile check for the current request.
	Resolve func(c *fiber.Ctx) Check
	// Target is the onboarding path in ModeProtect and the home path in
	// ModeReverse.
	Target string
	// OnAllowed runs after a non-degraded Allowed decision.
	OnAllowed func(c *fiber.Ctx, decision Decision)
}

func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		check := config.Resolve(c)
		ctx := c.UserContext()
		if ctx == nil {
			ctx = context.Background()
		}

		var decision Decision
		if config.Mode == ModeReverse {
			decision = Reverse(ctx, check, config.Target)
		} else {
			decision = Protect(ctx, check, config.Target)
		}
		c.Locals(LocalsKey, decision)

		if decision.State == Redirecting {
			if strings.EqualFold(c.Get("HX-Request"), "true") {
				c.Set("HX-Redirect", decision.Redirect)
				return c.SendStatus(fiber.StatusOK)
			}
			return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
		}

		if !decision.Degraded && config.OnAllowed != nil {
			config.OnAllowed(c, decision)
		}
		return c.Next()
	}
}

func DecisionFrom(c *fiber.Ctx) (Decision, bool) {
	decision, ok := c.Locals(LocalsKey).(Decision)
	return decision, ok
}
