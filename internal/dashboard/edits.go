package dashboard

import (
	"context"
	"fmt"

	"github.com/terraincognita07/stride/internal/models"
)

type Metric string

const (
	MetricCalories Metric = "calories"
	MetricSteps    Metric = "steps"
	MetricSleep    Metric = "sleep"
	MetricWater    Metric = "water"
	MetricWeight   Metric = "weight"
)

func (controller *Controller) SetMetric(ctx context.Context, metric Metric, value float64) (models.HealthRecord, error) {
	if value < 0 {
		return controller.record.Get(), ErrInvalidValue
	}
	return controller.updateRecord(ctx, func(record models.HealthRecord) (models.HealthRecord, error) {
		switch metric {
		case MetricCalories:
			record.Calories = value
		case MetricSteps:
			record.Steps = value
		case MetricSleep:
			record.Sleep = value
		case MetricWater:
			record.Water = value
		case MetricWeight:
			record.Weight = value
		default:
			return record, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
		}
		return record, nil
	})
}

// AddFood appends a consumed food entry and adds its calories and macros to
// the day totals.
func (controller *Controller) AddFood(ctx context.Context, item models.FoodItem) (models.HealthRecord, error) {
	title, err := validTitle(item.Title)
	if err != nil {
		return controller.record.Get(), err
	}
	if item.Calories < 0 || item.Macros.Carb < 0 || item.Macros.Fat < 0 || item.Macros.Protein < 0 {
		return controller.record.Get(), ErrInvalidValue
	}
	item.Title = title
	return controller.updateRecord(ctx, func(record models.HealthRecord) (models.HealthRecord, error) {
		record.Food = append(record.Food, item)
		record.Calories += item.Calories
		record.Macros = record.Macros.Add(item.Macros)
		return record, nil
	})
}

func (controller *Controller) RemoveFood(ctx context.Context, index int) (models.HealthRecord, error) {
	return controller.updateRecord(ctx, func(record models.HealthRecord) (models.HealthRecord, error) {
		if index < 0 || index >= len(record.Food) {
			return record, ErrIndexRange
		}
		removed := record.Food[index]
		record.Food = append(record.Food[:index], record.Food[index+1:]...)
		record.Calories -= removed.Calories
		if record.Calories < 0 {
			record.Calories = 0
		}
		record.Macros = record.Macros.Sub(removed.Macros)
		return record, nil
	})
}

// ToggleWorkout flips the completion status of the index-th entry of
// Workouts(). Planned entries not yet in the record are added to it.
func (controller *Controller) ToggleWorkout(ctx context.Context, index int) (models.HealthRecord, error) {
	if _, _, planLoaded := controller.loaded(); !planLoaded {
		if err := controller.refreshPlan(ctx); err != nil {
			return controller.record.Get(), err
		}
	}
	planned := controller.plannedCards()
	return controller.updateRecord(ctx, func(record models.HealthRecord) (models.HealthRecord, error) {
		combined := reconcileWorkouts(record.Workouts, planned)
		if index < 0 || index >= len(combined) {
			return record, ErrIndexRange
		}
		if index < len(record.Workouts) {
			record.Workouts[index].Status = !record.Workouts[index].Status
			return record, nil
		}
		entry := combined[index].Clone()
		entry.Status = true
		record.Workouts = append(record.Workouts, entry)
		return record, nil
	})
}

func (controller *Controller) AddGoal(ctx context.Context, title string) ([]models.Goal, error) {
	trimmed, err := validTitle(title)
	if err != nil {
		return controller.goals.Get(), err
	}
	return controller.updateGoals(ctx, func(goals []models.Goal) ([]models.Goal, error) {
		return append(goals, models.Goal{Title: trimmed}), nil
	})
}

func (controller *Controller) ToggleGoal(ctx context.Context, index int) ([]models.Goal, error) {
	return controller.updateGoals(ctx, func(goals []models.Goal) ([]models.Goal, error) {
		if index < 0 || index >= len(goals) {
			return goals, ErrIndexRange
		}
		goals[index].Completed = !goals[index].Completed
		return goals, nil
	})
}

func (controller *Controller) RemoveGoal(ctx context.Context, index int) ([]models.Goal, error) {
	return controller.updateGoals(ctx, func(goals []models.Goal) ([]models.Goal, error) {
		if index < 0 || index >= len(goals) {
			return goals, ErrIndexRange
		}
		return append(goals[:index], goals[index+1:]...), nil
	})
}
