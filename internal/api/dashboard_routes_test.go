package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/stride/internal/dashboard"
	"github.com/terraincognita07/stride/internal/models"
)

func TestDashboardAPIReconcilesPlannedWorkouts(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	view := decodeJSON[dashboard.View](t, response)
	if !view.Editable || view.Date != "2026-03-04" {
		t.Fatalf("expected editable today view, got %#v", view)
	}
	if len(view.Workouts) != 1 || view.Workouts[0].Title != "Legs" || view.Workouts[0].Status {
		t.Fatalf("expected planned Legs workout not yet done, got %#v", view.Workouts)
	}
}

func TestSetMetricSendsRecordWithoutDerivedFields(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/metrics", cookie, map[string]any{"metric": "steps", "value": 5000})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	view := decodeJSON[dashboard.View](t, response)
	if view.Record.Steps != 5000 {
		t.Fatalf("expected steps 5000, got %v", view.Record.Steps)
	}

	sent := string(env.backend.lastBody(http.MethodPost, "/health-data"))
	if strings.Contains(sent, "_diff") || strings.Contains(sent, "previous_day") {
		t.Fatalf("expected no derived fields in payload, got %s", sent)
	}
	if !strings.Contains(sent, `"day_steps":5000`) {
		t.Fatalf("expected updated steps in payload, got %s", sent)
	}
}

func TestSaveResponseAchievementReachesInbox(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	if response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/food", cookie, models.FoodItem{Title: "Apple", Calories: 95}); response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	current := env.jsonRequest(t, http.MethodGet, "/api/achievements/current", cookie, nil)
	if current.StatusCode != http.StatusOK {
		t.Fatalf("expected current achievement, got %d", current.StatusCode)
	}
	achievement := decodeJSON[models.Achievement](t, current)
	if achievement.ID != "first_health_log" || achievement.Title != "First Health Log!" {
		t.Fatalf("unexpected achievement %#v", achievement)
	}

	if response := env.jsonRequest(t, http.MethodDelete, "/api/achievements/current", cookie, nil); response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", response.StatusCode)
	}
	if response := env.jsonRequest(t, http.MethodGet, "/api/achievements/current", cookie, nil); response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected empty inbox after hide, got %d", response.StatusCode)
	}
}

func TestFailedSaveReportsBackendStatus(t *testing.T) {
	env := newTestApp(t)
	env.backend.fail(http.MethodPost, "/health-data", http.StatusInternalServerError)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/metrics", cookie, map[string]any{"metric": "water", "value": 2})
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", response.StatusCode)
	}
	payload := decodeJSON[map[string]any](t, response)
	if payload["status"] != float64(http.StatusInternalServerError) {
		t.Fatalf("expected backend status in payload, got %#v", payload)
	}
}

func TestPastDayIsReadOnly(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.jsonRequest(t, http.MethodGet, "/api/dashboard?date=2026-03-01", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if view := decodeJSON[dashboard.View](t, response); view.Editable {
		t.Fatal("expected past day to be read-only")
	}

	edit := env.jsonRequest(t, http.MethodPost, "/api/dashboard/goals", cookie, map[string]string{"title": "Stretch"})
	if edit.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", edit.StatusCode)
	}
	if env.backend.called(http.MethodPost, "/goals") != 0 {
		t.Fatal("did not expect a goal save for a past day")
	}
}

func TestDashboardRejectsInvalidInput(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	if response := env.jsonRequest(t, http.MethodGet, "/api/dashboard?date=yesterday", cookie, nil); response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad date, got %d", response.StatusCode)
	}
	if response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/metrics", cookie, map[string]any{"metric": "mood", "value": 1}); response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown metric, got %d", response.StatusCode)
	}
	if response := env.jsonRequest(t, http.MethodDelete, "/api/dashboard/food/9", cookie, nil); response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for missing food entry, got %d", response.StatusCode)
	}
}

func TestGoalEditsRoundTrip(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	added := decodeJSON[dashboard.View](t, env.jsonRequest(t, http.MethodPost, "/api/dashboard/goals", cookie, map[string]string{"title": "Stretch"}))
	if len(added.Goals) != 2 || added.Goals[1].Title != "Stretch" {
		t.Fatalf("expected appended goal, got %#v", added.Goals)
	}

	toggled := decodeJSON[dashboard.View](t, env.jsonRequest(t, http.MethodPost, "/api/dashboard/goals/0/toggle", cookie, nil))
	if !toggled.Goals[0].Completed {
		t.Fatalf("expected first goal completed, got %#v", toggled.Goals)
	}

	removed := decodeJSON[dashboard.View](t, env.jsonRequest(t, http.MethodDelete, "/api/dashboard/goals/1", cookie, nil))
	if len(removed.Goals) != 1 || removed.Goals[0].Title != "Drink water" {
		t.Fatalf("expected Stretch removed, got %#v", removed.Goals)
	}
}

func TestToggleWorkoutLogsPlannedCard(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.jsonRequest(t, http.MethodGet, "/api/dashboard", cookie, nil)

	response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/workouts/0/toggle", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	view := decodeJSON[dashboard.View](t, response)
	if len(view.Record.Workouts) != 1 || !view.Record.Workouts[0].Status {
		t.Fatalf("expected Legs logged as done, got %#v", view.Record.Workouts)
	}
}

func TestEditsWithoutPriorLoadKeepStoredValues(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/metrics", cookie, map[string]any{"metric": "water", "value": 1.5})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if env.backend.called(http.MethodGet, "/health-data") != 1 {
		t.Fatal("expected the day record to be fetched before saving")
	}
	sent := string(env.backend.lastBody(http.MethodPost, "/health-data"))
	if !strings.Contains(sent, `"day_calories":420`) || !strings.Contains(sent, `"day_steps":3000`) || !strings.Contains(sent, "Oats") {
		t.Fatalf("expected stored values in full save, got %s", sent)
	}

	response = env.jsonRequest(t, http.MethodPost, "/api/dashboard/goals", cookie, map[string]any{"title": "Stretch"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	goals := string(env.backend.lastBody(http.MethodPost, "/goals"))
	if !strings.Contains(goals, "Drink water") || !strings.Contains(goals, "Stretch") {
		t.Fatalf("expected existing goal kept, got %s", goals)
	}
}

func TestEditFailsWithoutSavingWhenRecordCannotBeFetched(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)
	env.backend.fail(http.MethodGet, "/health-data", http.StatusInternalServerError)

	response := env.jsonRequest(t, http.MethodPost, "/api/dashboard/metrics", cookie, map[string]any{"metric": "water", "value": 1.5})
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", response.StatusCode)
	}
	if env.backend.called(http.MethodPost, "/health-data") != 0 {
		t.Fatal("expected no save while the record is unknown")
	}
}
