package achievements

import (
	"testing"

	"github.com/terraincognita07/stride/internal/models"
)

func TestObserveQueuesEmbeddedAchievements(t *testing.T) {
	inbox := NewInbox()
	inbox.Observe([]byte(`{"message":"saved","achievements":[{"id":"first_workout","title":"First Workout!","description":"d"},{"id":"health_logger"}]}`))

	current, ok := inbox.Current()
	if !ok || current.ID != "first_workout" {
		t.Fatalf("expected first_workout, got %+v %v", current, ok)
	}
	inbox.Hide()

	current, ok = inbox.Current()
	if !ok || current.ID != "health_logger" || current.Title != "Health Logger!" {
		t.Fatalf("expected catalog-filled health_logger, got %+v", current)
	}
	inbox.Hide()

	if _, ok := inbox.Current(); ok {
		t.Fatal("expected empty inbox")
	}
}

func TestObserveIgnoresBodiesWithoutAchievements(t *testing.T) {
	inbox := NewInbox()
	inbox.Observe([]byte(`{"data":{"PK":"u1"}}`))
	inbox.Observe([]byte(`[1,2,3]`))
	inbox.Observe([]byte(`not json`))
	inbox.Observe([]byte(`{"achievements":"nope"}`))

	if _, ok := inbox.Current(); ok {
		t.Fatal("expected nothing queued")
	}
}

func TestEligibleFollowsKind(t *testing.T) {
	progress := map[string]models.AchievementProgress{
		"first_workout":    {Completed: true},
		"five_day_streak":  {Progress: 5},
		"seven_day_streak": {Progress: 6},
		"workout_creator":  {Progress: 12, Completed: true},
	}

	cases := map[string]bool{
		"first_workout":     false,
		"first_health_log":  true,
		"five_day_streak":   true,
		"seven_day_streak":  false,
		"thirty_day_streak": false,
		"workout_creator":   false,
	}
	for id, want := range cases {
		definition, ok := Lookup(id)
		if !ok {
			t.Fatalf("missing definition %s", id)
		}
		if got := definition.Eligible(progress); got != want {
			t.Fatalf("%s: expected eligible=%v, got %v", id, want, got)
		}
	}
}

func TestStatusesCoversCatalog(t *testing.T) {
	statuses := Statuses(nil)
	if len(statuses) != len(Catalog) {
		t.Fatalf("expected %d statuses, got %d", len(Catalog), len(statuses))
	}
	if statuses[0].ID != "first_workout" || !statuses[0].Eligible {
		t.Fatalf("unexpected first status %+v", statuses[0])
	}
}
