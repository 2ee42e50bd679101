package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/dashboard"
	"github.com/terraincognita07/stride/internal/models"
)

// GetDashboard loads today or, with ?date=YYYY-MM-DD, a read-only past day.
func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	state := currentState(c)
	ctx := requestContext(c)

	rawDate := strings.TrimSpace(c.Query("date"))
	if rawDate == "" {
		state.Dashboard.Load(ctx)
		return c.JSON(state.Dashboard.View())
	}

	day, err := time.ParseInLocation("2006-01-02", rawDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	state.Dashboard.SelectDate(ctx, day)
	return c.JSON(state.Dashboard.View())
}

type metricInput struct {
	Metric string  `json:"metric" form:"metric"`
	Value  float64 `json:"value" form:"value"`
}

func (handler *Handler) SetMetric(c *fiber.Ctx) error {
	input := metricInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	if _, err := state.Dashboard.SetMetric(requestContext(c), dashboard.Metric(input.Metric), input.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

func (handler *Handler) AddFood(c *fiber.Ctx) error {
	item := models.FoodItem{}
	if err := c.BodyParser(&item); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	if _, err := state.Dashboard.AddFood(requestContext(c), item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

func (handler *Handler) RemoveFood(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid index")
	}
	state := currentState(c)
	if _, err := state.Dashboard.RemoveFood(requestContext(c), index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

func (handler *Handler) ToggleWorkout(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid index")
	}
	state := currentState(c)
	if _, err := state.Dashboard.ToggleWorkout(requestContext(c), index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

type goalInput struct {
	Title string `json:"title" form:"title"`
}

func (handler *Handler) AddGoal(c *fiber.Ctx) error {
	input := goalInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	state := currentState(c)
	if _, err := state.Dashboard.AddGoal(requestContext(c), input.Title); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

func (handler *Handler) ToggleGoal(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid index")
	}
	state := currentState(c)
	if _, err := state.Dashboard.ToggleGoal(requestContext(c), index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}

func (handler *Handler) RemoveGoal(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid index")
	}
	state := currentState(c)
	if _, err := state.Dashboard.RemoveGoal(requestContext(c), index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(state.Dashboard.View())
}
