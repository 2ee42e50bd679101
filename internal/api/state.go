package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/achievements"
	"github.com/terraincognita07/stride/internal/dashboard"
	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/profile"
	"github.com/terraincognita07/stride/internal/push"
	"github.com/terraincognita07/stride/internal/session"
	"github.com/terraincognita07/stride/internal/workoutplan"
)

// State is everything one browser session keeps between requests.
type State struct {
	Client    *gateway.Client
	User      *session.Context
	Dashboard *dashboard.Controller
	Workouts  *workoutplan.Controller
	Profile   *profile.Service
	Inbox     *achievements.Inbox
	Feed      *push.Feed
}

func (handler *Handler) newState(sessionID string) *State {
	inbox := achievements.NewInbox()
	client := gateway.New(
		handler.apiBaseURL,
		handler.tokenSource(sessionID),
		gateway.WithHTTPClient(handler.httpClient),
		gateway.WithObserver(inbox.Observe),
		gateway.WithClock(handler.now),
	)
	user := session.NewContext(client)
	return &State{
		Client:    client,
		User:      user,
		Dashboard: dashboard.New(client, handler.location, handler.now),
		Workouts:  workoutplan.New(client),
		Profile:   profile.NewService(client, user, handler.httpClient),
		Inbox:     inbox,
		Feed:      push.NewFeed(),
	}
}

// tokenSource reads the session's access token on every call, so a session
// removed by logout or expiry stops authenticating immediately.
func (handler *Handler) tokenSource(sessionID string) gateway.TokenSource {
	return gateway.TokenSourceFunc(func(context.Context) (string, error) {
		record, err := handler.repositories.Sessions.FindActive(sessionID, handler.now().UTC())
		if err != nil {
			return "", err
		}
		return record.AccessToken, nil
	})
}

func currentState(c *fiber.Ctx) *State {
	state, _ := c.Locals(contextStateKey).(*State)
	return state
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
