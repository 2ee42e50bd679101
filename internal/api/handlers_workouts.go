package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/workoutplan"
)

func (handler *Handler) GetWorkouts(c *fiber.Ctx) error {
	state := currentState(c)
	state.Workouts.Load(requestContext(c))
	return c.JSON(state.Workouts.View())
}

func (handler *Handler) CreateCard(c *fiber.Ctx) error {
	draft := workoutplan.CardDraft{}
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	ctx := requestContext(c)
	if err := state.User.Load(ctx); err != nil {
		return respondError(c, err)
	}
	board, err := state.Workouts.CreateCard(ctx, state.User.User().Nickname, draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

func (handler *Handler) DeleteCard(c *fiber.Ctx) error {
	state := currentState(c)
	board, err := state.Workouts.DeleteCard(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	handler.syncPlanned(state)
	return c.JSON(board)
}

func (handler *Handler) FavoriteCard(c *fiber.Ctx) error {
	board, err := currentState(c).Workouts.Favorite(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

func (handler *Handler) UnfavoriteCard(c *fiber.Ctx) error {
	board, err := currentState(c).Workouts.Unfavorite(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

type weeklyInput struct {
	Day    string `json:"day" form:"day"`
	CardID string `json:"card_id" form:"card_id"`
}

func (handler *Handler) AssignWeekly(c *fiber.Ctx) error {
	input := weeklyInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	board, err := state.Workouts.AssignToDay(requestContext(c), strings.ToLower(strings.TrimSpace(input.Day)), input.CardID)
	if err != nil {
		return respondError(c, err)
	}
	handler.syncPlanned(state)
	return c.JSON(board)
}

func (handler *Handler) UnassignWeekly(c *fiber.Ctx) error {
	input := weeklyInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	board, err := state.Workouts.RemoveFromDay(requestContext(c), strings.ToLower(strings.TrimSpace(input.Day)), input.CardID)
	if err != nil {
		return respondError(c, err)
	}
	handler.syncPlanned(state)
	return c.JSON(board)
}

// syncPlanned hands today's cards from the weekly plan to the dashboard.
func (handler *Handler) syncPlanned(state *State) {
	state.Dashboard.SetPlanned(state.Workouts.TodayCards(handler.today()))
}
