package workoutplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/optimistic"
)

var (
	ErrCardNotFound     = errors.New("workout card not found")
	ErrNotDeletable     = errors.New("workout card can only be deleted by its owner")
	ErrAlreadyFavorited = errors.New("workout card is already favorited")
	ErrNotFavorited     = errors.New("workout card is not favorited")
	ErrOwnCard          = errors.New("own workout cards cannot be favorited")
	ErrUnknownDay       = errors.New("unknown weekday")
	ErrAlreadyAssigned  = errors.New("workout card is already assigned to that day")
	ErrNotAssigned      = errors.New("workout card is not assigned to that day")
	ErrEmptyTitle       = errors.New("workout title is required")
	ErrNoExercises      = errors.New("workout needs at least one exercise")
)

type Backend interface {
	FetchWorkoutCards(ctx context.Context, action gateway.CardAction) (gateway.CardList, error)
	SaveWorkoutCard(ctx context.Context, card models.WorkoutCard) (models.WorkoutCard, error)
	RemoveWorkoutCard(ctx context.Context, cardID string) error
	ToggleFavorite(ctx context.Context, cardID string, action gateway.FavoriteAction) error
	FetchWeeklyPlan(ctx context.Context) (models.WeeklyPlan, error)
	AssignWeeklyPlan(ctx context.Context, day string, cardID string) error
	UnassignWeeklyPlan(ctx context.Context, day string, cardID string) error
}

type Controller struct {
	backend Backend
	board   *optimistic.Cell[Board]
	newID   func() string
}

func New(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		board:   optimistic.NewCell(emptyBoard(), Board.Clone),
		newID:   uuid.NewString,
	}
}

// Load fetches owned, discoverable and planned cards. Each failed fetch
// leaves its part of the board empty.
func (controller *Controller) Load(ctx context.Context) {
	board := emptyBoard()

	if owned, err := controller.backend.FetchWorkoutCards(ctx, gateway.CardsOwned); err != nil {
		slog.ErrorContext(ctx, "fetch owned workout cards failed", "error", err)
	} else {
		board.Mine = withoutDuplicates(owned.Cards)
	}

	if discovered, err := controller.backend.FetchWorkoutCards(ctx, gateway.CardsDiscover); err != nil {
		slog.ErrorContext(ctx, "fetch discover workout cards failed", "error", err)
	} else {
		board.Popular = withoutDuplicates(discovered.Popular, board.Mine)
		board.Discover = withoutDuplicates(discovered.Cards, board.Mine, board.Popular)
	}

	if plan, err := controller.backend.FetchWeeklyPlan(ctx); err != nil {
		slog.ErrorContext(ctx, "fetch weekly plan failed", "error", err)
	} else {
		board.Plan = plan
	}

	controller.board.Set(board)
}

func (controller *Controller) View() Board {
	return controller.board.Get()
}

// TodayCards lists the cards planned for the weekday of day.
func (controller *Controller) TodayCards(day time.Time) []models.WorkoutCard {
	board := controller.board.Get()
	return board.Plan[models.WeekdayKey(day)]
}

type CardDraft struct {
	Title     string                `json:"workout_title"`
	Exercises []models.CardExercise `json:"exercises"`
}

// CreateCard adds an owned card. The id is generated here so the optimistic
// entry and the stored card share it.
func (controller *Controller) CreateCard(ctx context.Context, username string, draft CardDraft) (Board, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return controller.board.Get(), ErrEmptyTitle
	}
	exercises := make([]models.CardExercise, 0, len(draft.Exercises))
	for _, exercise := range draft.Exercises {
		exercise.Title = strings.TrimSpace(exercise.Title)
		if exercise.Title == "" {
			continue
		}
		if exercise.SetCount < 1 {
			exercise.SetCount = 1
		}
		exercises = append(exercises, exercise)
	}
	if len(exercises) == 0 {
		return controller.board.Get(), ErrNoExercises
	}

	card := models.WorkoutCard{
		ID:        controller.newID(),
		Title:     title,
		Username:  username,
		Exercises: exercises,
		Deletable: true,
	}
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		board.Mine = append(board.Mine, card)
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		if _, err := controller.backend.SaveWorkoutCard(ctx, card); err != nil {
			return fmt.Errorf("save workout card: %w", err)
		}
		return nil
	})
}

// DeleteCard removes an owned card and every weekly plan reference to it.
func (controller *Controller) DeleteCard(ctx context.Context, cardID string) (Board, error) {
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		_, index, ok := board.find(cardID, ListMine)
		if !ok {
			return board, ErrCardNotFound
		}
		card := board.Mine[index]
		if !card.Deletable || card.IsFavorited {
			return board, ErrNotDeletable
		}
		board.remove(ListMine, index)
		for day, cards := range board.Plan {
			board.Plan[day] = dropCard(cards, cardID)
		}
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		if err := controller.backend.RemoveWorkoutCard(ctx, cardID); err != nil {
			return fmt.Errorf("delete workout card: %w", err)
		}
		return nil
	})
}

// Favorite moves a card out of discover or popular and appends a favorited
// copy to Mine.
func (controller *Controller) Favorite(ctx context.Context, cardID string) (Board, error) {
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		if _, index, ok := board.find(cardID, ListMine); ok {
			if board.Mine[index].IsFavorited {
				return board, ErrAlreadyFavorited
			}
			return board, ErrOwnCard
		}
		list, index, ok := board.find(cardID, ListDiscover, ListPopular)
		if !ok {
			return board, ErrCardNotFound
		}
		card := board.remove(list, index)
		card.IsFavorited = true
		card.Deletable = true
		card.FavCount++
		board.Mine = append(board.Mine, card)
		board.origins[cardID] = list
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		return controller.toggle(ctx, cardID, gateway.Favorite)
	})
}

// Unfavorite removes the favorited copy from Mine and returns the card to
// the list it came from, discover when unknown.
func (controller *Controller) Unfavorite(ctx context.Context, cardID string) (Board, error) {
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		_, index, ok := board.find(cardID, ListMine)
		if !ok || !board.Mine[index].IsFavorited {
			return board, ErrNotFavorited
		}
		card := board.remove(ListMine, index)
		card.IsFavorited = false
		card.Deletable = false
		if card.FavCount > 0 {
			card.FavCount--
		}
		origin, known := board.origins[cardID]
		if !known {
			origin = ListDiscover
		}
		delete(board.origins, cardID)
		target := board.list(origin)
		*target = append(*target, card)
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		return controller.toggle(ctx, cardID, gateway.Unfavorite)
	})
}

func (controller *Controller) toggle(ctx context.Context, cardID string, action gateway.FavoriteAction) error {
	if err := controller.backend.ToggleFavorite(ctx, cardID, action); err != nil {
		return fmt.Errorf("%s workout card: %w", action, err)
	}
	return nil
}

// AssignToDay references a known card from the given weekday.
func (controller *Controller) AssignToDay(ctx context.Context, day string, cardID string) (Board, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if !models.IsWeekday(day) {
		return controller.board.Get(), ErrUnknownDay
	}
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		list, index, ok := board.find(cardID, ListMine, ListDiscover, ListPopular)
		if !ok {
			return board, ErrCardNotFound
		}
		for _, planned := range board.Plan[day] {
			if planned.ID == cardID {
				return board, ErrAlreadyAssigned
			}
		}
		board.Plan[day] = append(board.Plan[day], (*board.list(list))[index].Clone())
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		if err := controller.backend.AssignWeeklyPlan(ctx, day, cardID); err != nil {
			return fmt.Errorf("store weekly plan: %w", err)
		}
		return nil
	})
}

func (controller *Controller) RemoveFromDay(ctx context.Context, day string, cardID string) (Board, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if !models.IsWeekday(day) {
		return controller.board.Get(), ErrUnknownDay
	}
	return optimistic.Apply(ctx, controller.board, func(board Board) (Board, error) {
		remaining := dropCard(board.Plan[day], cardID)
		if len(remaining) == len(board.Plan[day]) {
			return board, ErrNotAssigned
		}
		board.Plan[day] = remaining
		return board, nil
	}, func(ctx context.Context, _ Board) error {
		if err := controller.backend.UnassignWeeklyPlan(ctx, day, cardID); err != nil {
			return fmt.Errorf("delete weekly plan: %w", err)
		}
		return nil
	})
}

func dropCard(cards []models.WorkoutCard, cardID string) []models.WorkoutCard {
	kept := make([]models.WorkoutCard, 0, len(cards))
	for _, card := range cards {
		if card.ID != cardID {
			kept = append(kept, card)
		}
	}
	return kept
}
