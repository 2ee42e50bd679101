// Package workoutplan holds a session's workout card lists and weekly plan.
package workoutplan

import (
	"github.com/terraincognita07/stride/internal/models"
)

type List string

const (
	ListMine     List = "mine"
	ListDiscover List = "discover"
	ListPopular  List = "popular"
)

// Board is the workout page state. Mine holds owned cards and favorited
// copies; a card appears in at most one of Discover and Popular.
type Board struct {
	Mine     []models.WorkoutCard `json:"mine"`
	Discover []models.WorkoutCard `json:"discover"`
	Popular  []models.WorkoutCard `json:"popular"`
	Plan     models.WeeklyPlan    `json:"weekly_plan"`

	// origins remembers which list a favorited card was taken from.
	origins map[string]List
}

func emptyBoard() Board {
	return Board{
		Mine:     []models.WorkoutCard{},
		Discover: []models.WorkoutCard{},
		Popular:  []models.WorkoutCard{},
		Plan:     models.WeeklyPlan{},
		origins:  map[string]List{},
	}
}

func (board Board) Clone() Board {
	cloned := Board{
		Mine:     cloneCards(board.Mine),
		Discover: cloneCards(board.Discover),
		Popular:  cloneCards(board.Popular),
		Plan:     board.Plan.Clone(),
		origins:  make(map[string]List, len(board.origins)),
	}
	for id, list := range board.origins {
		cloned.origins[id] = list
	}
	return cloned
}

func (board *Board) list(name List) *[]models.WorkoutCard {
	switch name {
	case ListDiscover:
		return &board.Discover
	case ListPopular:
		return &board.Popular
	default:
		return &board.Mine
	}
}

// find returns the first list holding the card and its index there.
func (board *Board) find(cardID string, lists ...List) (List, int, bool) {
	for _, name := range lists {
		for index, card := range *board.list(name) {
			if card.ID == cardID {
				return name, index, true
			}
		}
	}
	return "", -1, false
}

func (board *Board) remove(name List, index int) models.WorkoutCard {
	cards := board.list(name)
	removed := (*cards)[index]
	*cards = append((*cards)[:index], (*cards)[index+1:]...)
	return removed
}

func cloneCards(cards []models.WorkoutCard) []models.WorkoutCard {
	cloned := make([]models.WorkoutCard, len(cards))
	for index, card := range cards {
		cloned[index] = card.Clone()
	}
	return cloned
}

// withoutDuplicates drops cards from candidates whose id is in taken.
func withoutDuplicates(candidates []models.WorkoutCard, taken ...[]models.WorkoutCard) []models.WorkoutCard {
	seen := make(map[string]bool)
	for _, cards := range taken {
		for _, card := range cards {
			seen[card.ID] = true
		}
	}
	filtered := make([]models.WorkoutCard, 0, len(candidates))
	for _, card := range candidates {
		if seen[card.ID] {
			continue
		}
		seen[card.ID] = true
		filtered = append(filtered, card)
	}
	return filtered
}
