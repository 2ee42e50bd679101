// Package guard gates pages on whether the signed-in user has a profile.
package guard

import (
	"context"
	"log/slog"

	"github.com/terraincognita07/stride/internal/gateway"
)

type State int

const (
	Checking State = iota
	Allowed
	Redirecting
)

func (state State) String() string {
	switch state {
	case Checking:
		return "checking"
	case Allowed:
		return "allowed"
	case Redirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Check fetches the profile and reports the failure, if any.
type Check func(ctx context.Context) error

// Decision is the terminal outcome of one guard evaluation. Degraded marks
// an Allowed decision reached because the check failed for a reason other
// than "not found".
type Decision struct {
	State    State
	Redirect string
	Degraded bool
	Err      error
}

// Protect allows access unless the profile is missing, in which case it
// redirects to onboarding.
func Protect(ctx context.Context, check Check, onboardingPath string) Decision {
	err := check(ctx)
	switch {
	case err == nil:
		return Decision{State: Allowed}
	case gateway.IsNotFound(err):
		return Decision{State: Redirecting, Redirect: onboardingPath, Err: err}
	default:
		slog.WarnContext(ctx, "profile check failed, allowing access", "error", err)
		return Decision{State: Allowed, Degraded: true, Err: err}
	}
}

// Reverse guards the onboarding page: users who already have a profile are
// sent back to homePath.
func Reverse(ctx context.Context, check Check, homePath string) Decision {
	err := check(ctx)
	switch {
	case err == nil:
		return Decision{State: Redirecting, Redirect: homePath}
	case gateway.IsNotFound(err):
		return Decision{State: Allowed, Err: err}
	default:
		slog.WarnContext(ctx, "profile check failed, showing onboarding", "error", err)
		return Decision{State: Allowed, Degraded: true, Err: err}
	}
}
