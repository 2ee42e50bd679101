package dashboard

import (
	"strings"

	"github.com/terraincognita07/stride/internal/models"
)

type View struct {
	Date     string              `json:"date"`
	IsToday  bool                `json:"is_today"`
	Editable bool                `json:"editable"`
	Record   models.HealthRecord `json:"record"`
	Workouts []models.DayWorkout `json:"workouts"`
	Goals    []models.Goal       `json:"goals"`
}

func (controller *Controller) View() View {
	record := controller.record.Get()
	editable := controller.Editable()
	workouts := record.Workouts
	if editable {
		workouts = reconcileWorkouts(record.Workouts, controller.plannedCards())
	}
	return View{
		Date:     controller.SelectedDate().Format("2006-01-02"),
		IsToday:  editable,
		Editable: editable,
		Record:   record,
		Workouts: workouts,
		Goals:    controller.goals.Get(),
	}
}

func (controller *Controller) plannedCards() []models.WorkoutCard {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	cards := make([]models.WorkoutCard, len(controller.planned))
	for index, card := range controller.planned {
		cards[index] = card.Clone()
	}
	return cards
}

// SetPlanned replaces today's planned cards, used when the weekly plan
// changes during the session.
func (controller *Controller) SetPlanned(cards []models.WorkoutCard) {
	copied := make([]models.WorkoutCard, len(cards))
	for index, card := range cards {
		copied[index] = card.Clone()
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.planned = copied
}

// reconcileWorkouts lists the record's workouts followed by planned cards
// whose title is not already logged for the day.
func reconcileWorkouts(logged []models.DayWorkout, planned []models.WorkoutCard) []models.DayWorkout {
	combined := make([]models.DayWorkout, 0, len(logged)+len(planned))
	seen := make(map[string]bool, len(logged)+len(planned))
	for _, workout := range logged {
		combined = append(combined, workout.Clone())
		seen[normalizeTitle(workout.Title)] = true
	}
	for _, card := range planned {
		key := normalizeTitle(card.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		combined = append(combined, card.DayWorkout())
	}
	return combined
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
