package models

import "time"

type CardExercise struct {
	Title    string `json:"title"`
	SetCount int    `json:"set_count"`
}

// WorkoutCard is a reusable, named template of exercises.
type WorkoutCard struct {
	ID          string         `json:"id"`
	Title       string         `json:"workout_title"`
	Username    string         `json:"username"`
	FavCount    int            `json:"fav_count"`
	Exercises   []CardExercise `json:"exercises"`
	Deletable   bool           `json:"deletable"`
	IsFavorited bool           `json:"is_favorited"`
}

func (card WorkoutCard) Clone() WorkoutCard {
	cloned := card
	cloned.Exercises = append([]CardExercise{}, card.Exercises...)
	return cloned
}

// DayWorkout renders the card as a not-yet-completed workout entry for a day.
func (card WorkoutCard) DayWorkout() DayWorkout {
	exercises := make([]Exercise, 0, len(card.Exercises))
	for _, exercise := range card.Exercises {
		exercises = append(exercises, Exercise{Title: exercise.Title, SetCount: exercise.SetCount})
	}
	return DayWorkout{Title: card.Title, Exercises: exercises}
}

// Weekday keys used by the weekly plan.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeeklyPlan maps a lowercase weekday to the cards assigned to it.
type WeeklyPlan map[string][]WorkoutCard

func (plan WeeklyPlan) Clone() WeeklyPlan {
	cloned := make(WeeklyPlan, len(plan))
	for day, cards := range plan {
		copied := make([]WorkoutCard, len(cards))
		for index, card := range cards {
			copied[index] = card.Clone()
		}
		cloned[day] = copied
	}
	return cloned
}

func WeekdayKey(day time.Time) string {
	index := (int(day.Weekday()) + 6) % 7
	return Weekdays[index]
}

func IsWeekday(value string) bool {
	for _, day := range Weekdays {
		if day == value {
			return true
		}
	}
	return false
}
