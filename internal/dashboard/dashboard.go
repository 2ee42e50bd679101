// Package dashboard owns the dashboard view state of one session: the
// selected day's health record, the goal list and today's planned workouts.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/optimistic"
)

var (
	ErrReadOnlyDay   = errors.New("only today's record can be edited")
	ErrIndexRange    = errors.New("entry index out of range")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrInvalidValue  = errors.New("metric value must be non-negative")
	ErrEmptyTitle    = errors.New("title is required")
)

type Backend interface {
	FetchHealthData(ctx context.Context, day time.Time) (models.HealthRecord, error)
	SaveHealthData(ctx context.Context, day time.Time, input models.HealthRecordInput) (gateway.Message, error)
	FetchGoals(ctx context.Context) ([]models.Goal, error)
	SaveGoals(ctx context.Context, goals []models.Goal) error
	FetchWeeklyPlan(ctx context.Context) (models.WeeklyPlan, error)
}

type Controller struct {
	backend  Backend
	location *time.Location
	now      func() time.Time

	mu       sync.RWMutex
	selected time.Time
	planned  []models.WorkoutCard

	// Set once the matching state holds what the backend returned; edits
	// fetch first while unset so a placeholder is never sent as a full value.
	recordLoaded bool
	goalsLoaded  bool
	planLoaded   bool

	record *optimistic.Cell[models.HealthRecord]
	goals  *optimistic.Cell[[]models.Goal]
}

func New(backend Backend, location *time.Location, now func() time.Time) *Controller {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	controller := &Controller{
		backend:  backend,
		location: location,
		now:      now,
		record:   optimistic.NewCell(models.EmptyHealthRecord(), models.HealthRecord.Clone),
		goals:    optimistic.NewCell([]models.Goal{}, models.CloneGoals),
	}
	controller.selected = controller.today()
	return controller
}

// Load seeds the view for today. Fetch failures leave empty defaults in
// place instead of failing the page.
func (controller *Controller) Load(ctx context.Context) {
	today := controller.today()
	controller.mu.Lock()
	controller.selected = today
	controller.mu.Unlock()

	if err := controller.refreshRecord(ctx, today); err != nil {
		controller.record.Set(models.EmptyHealthRecord())
	}
	if err := controller.refreshGoals(ctx); err != nil {
		controller.goals.Set([]models.Goal{})
	}
	if err := controller.refreshPlan(ctx); err != nil {
		controller.mu.Lock()
		controller.planned = nil
		controller.mu.Unlock()
	}
}

// SelectDate switches the displayed day and refetches its record. Days other
// than today are read-only.
func (controller *Controller) SelectDate(ctx context.Context, day time.Time) {
	selected := dateOnly(day, controller.location)
	controller.mu.Lock()
	controller.selected = selected
	controller.mu.Unlock()
	if err := controller.refreshRecord(ctx, selected); err != nil {
		controller.record.Set(models.EmptyHealthRecord())
	}
}

func (controller *Controller) refreshRecord(ctx context.Context, day time.Time) error {
	record, err := controller.backend.FetchHealthData(ctx, day)
	controller.mu.Lock()
	controller.recordLoaded = err == nil
	controller.mu.Unlock()
	if err != nil {
		slog.ErrorContext(ctx, "fetch health data failed", "date", day.Format("2006-01-02"), "error", err)
		return fmt.Errorf("fetch health data: %w", err)
	}
	controller.record.Set(record)
	return nil
}

func (controller *Controller) refreshGoals(ctx context.Context) error {
	goals, err := controller.backend.FetchGoals(ctx)
	controller.mu.Lock()
	controller.goalsLoaded = err == nil
	controller.mu.Unlock()
	if err != nil {
		slog.ErrorContext(ctx, "fetch goals failed", "error", err)
		return fmt.Errorf("fetch goals: %w", err)
	}
	controller.goals.Set(goals)
	return nil
}

func (controller *Controller) refreshPlan(ctx context.Context) error {
	plan, err := controller.backend.FetchWeeklyPlan(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "fetch weekly plan failed", "error", err)
		return fmt.Errorf("fetch weekly plan: %w", err)
	}
	controller.mu.Lock()
	controller.planned = plan.Clone()[models.WeekdayKey(controller.today())]
	controller.planLoaded = true
	controller.mu.Unlock()
	return nil
}

func (controller *Controller) loaded() (record bool, goals bool, plan bool) {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.recordLoaded, controller.goalsLoaded, controller.planLoaded
}

func (controller *Controller) SelectedDate() time.Time {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.selected
}

func (controller *Controller) Editable() bool {
	return controller.SelectedDate().Equal(controller.today())
}

func (controller *Controller) today() time.Time {
	return dateOnly(controller.now(), controller.location)
}

func dateOnly(value time.Time, location *time.Location) time.Time {
	local := value.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// editableDay returns the selected day if it may be written to.
func (controller *Controller) editableDay() (time.Time, error) {
	selected := controller.SelectedDate()
	if !selected.Equal(controller.today()) {
		return time.Time{}, ErrReadOnlyDay
	}
	return selected, nil
}

// updateRecord applies edit optimistically and sends the complete record,
// without its derived comparison fields, for the selected day.
func (controller *Controller) updateRecord(ctx context.Context, edit optimistic.Edit[models.HealthRecord]) (models.HealthRecord, error) {
	day, err := controller.editableDay()
	if err != nil {
		return controller.record.Get(), err
	}
	if recordLoaded, _, _ := controller.loaded(); !recordLoaded {
		if err := controller.refreshRecord(ctx, day); err != nil {
			return controller.record.Get(), err
		}
	}
	return optimistic.Apply(ctx, controller.record, edit, func(ctx context.Context, updated models.HealthRecord) error {
		if _, err := controller.backend.SaveHealthData(ctx, day, updated.Input()); err != nil {
			return fmt.Errorf("save health data: %w", err)
		}
		return nil
	})
}

func (controller *Controller) updateGoals(ctx context.Context, edit optimistic.Edit[[]models.Goal]) ([]models.Goal, error) {
	if _, err := controller.editableDay(); err != nil {
		return controller.goals.Get(), err
	}
	if _, goalsLoaded, _ := controller.loaded(); !goalsLoaded {
		if err := controller.refreshGoals(ctx); err != nil {
			return controller.goals.Get(), err
		}
	}
	return optimistic.Apply(ctx, controller.goals, edit, func(ctx context.Context, updated []models.Goal) error {
		if err := controller.backend.SaveGoals(ctx, updated); err != nil {
			return fmt.Errorf("save goals: %w", err)
		}
		return nil
	})
}

func validTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}
