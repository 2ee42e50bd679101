package achievements

import "github.com/terraincognita07/stride/internal/models"

type Kind string

const (
	OneTime  Kind = "one_time"
	Streak   Kind = "streak"
	Quantity Kind = "quantity"
)

type Definition struct {
	models.Achievement
	Kind   Kind `json:"type"`
	Target int  `json:"target,omitempty"`
}

var Catalog = []Definition{
	{Achievement: models.Achievement{ID: "first_workout", Title: "First Workout!", Description: "You logged your first workout"}, Kind: OneTime},
	{Achievement: models.Achievement{ID: "first_health_log", Title: "First Health Log!", Description: "You logged your first health data"}, Kind: OneTime},
	{Achievement: models.Achievement{ID: "first_weekly_plan", Title: "First Weekly Plan!", Description: "You created your first weekly workout plan"}, Kind: OneTime},
	{Achievement: models.Achievement{ID: "five_day_streak", Title: "5 Day Streak!", Description: "You logged workouts for 5 days in a row"}, Kind: Streak, Target: 5},
	{Achievement: models.Achievement{ID: "seven_day_streak", Title: "7 Day Streak!", Description: "You logged workouts for 7 days in a row"}, Kind: Streak, Target: 7},
	{Achievement: models.Achievement{ID: "thirty_day_streak", Title: "30 Day Streak!", Description: "You logged workouts for 30 days in a row"}, Kind: Streak, Target: 30},
	{Achievement: models.Achievement{ID: "workout_creator", Title: "Workout Creator!", Description: "You created 10 workout plans"}, Kind: Quantity, Target: 10},
	{Achievement: models.Achievement{ID: "health_logger", Title: "Health Logger!", Description: "You logged 50 health data points"}, Kind: Quantity, Target: 50},
	{Achievement: models.Achievement{ID: "workout_favoriter", Title: "Workout Favoriter!", Description: "You favorited 20 workout plans"}, Kind: Quantity, Target: 20},
}

// Eligible reports whether the definition is due to be awarded given the
// user's recorded progress. One-time achievements are due until completed.
func (definition Definition) Eligible(progress map[string]models.AchievementProgress) bool {
	record := progress[definition.ID]
	if record.Completed {
		return false
	}
	if definition.Kind == OneTime {
		return true
	}
	return record.Progress >= definition.Target
}

type Status struct {
	Definition
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
	Eligible  bool `json:"eligible"`
}

// Statuses joins the catalog with the user's progress map, in catalog order.
func Statuses(progress map[string]models.AchievementProgress) []Status {
	statuses := make([]Status, 0, len(Catalog))
	for _, definition := range Catalog {
		record := progress[definition.ID]
		statuses = append(statuses, Status{
			Definition: definition,
			Progress:   record.Progress,
			Completed:  record.Completed,
			Eligible:   definition.Eligible(progress),
		})
	}
	return statuses
}
