package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/push"
)

func postPush(t *testing.T, env *testApp, cookie string, payload string) models.Notification {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/api/push", strings.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Cookie", cookie)
	response := env.do(t, request)
	if response.StatusCode != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", response.StatusCode)
	}
	return decodeJSON[models.Notification](t, response)
}

func TestPushShowsPayloadWithDefaults(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	shown := postPush(t, env, cookie, `{"title":"Workout time"}`)
	if shown.Title != "Workout time" || shown.Body != push.DefaultBody || shown.Icon != push.DefaultIcon {
		t.Fatalf("unexpected notification %#v", shown)
	}
}

func TestMalformedPushShowsErrorNotification(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	shown := postPush(t, env, cookie, `not json`)
	if shown.Title != push.ErrorTitle {
		t.Fatalf("expected error notification, got %#v", shown)
	}

	response := env.jsonRequest(t, http.MethodGet, "/api/notifications", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	listed := decodeJSON[struct {
		Notifications []models.Notification `json:"notifications"`
	}](t, response)
	if len(listed.Notifications) != 2 {
		t.Fatalf("expected pushed and stored notifications, got %#v", listed.Notifications)
	}
	if listed.Notifications[0].Title != push.ErrorTitle || listed.Notifications[1].ID != "n-1" {
		t.Fatalf("unexpected notification order %#v", listed.Notifications)
	}
}

func TestDeleteNotificationForwardsID(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.jsonRequest(t, http.MethodDelete, "/api/notifications/n-1", cookie, nil)
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", response.StatusCode)
	}
	if sent := string(env.backend.lastBody(http.MethodDelete, "/user-profile/notifications")); !strings.Contains(sent, `"id":"n-1"`) {
		t.Fatalf("unexpected delete payload %s", sent)
	}
}

func TestNotificationsSurviveBackendFailure(t *testing.T) {
	env := newTestApp(t)
	env.backend.fail(http.MethodGet, "/user-profile/notifications", http.StatusInternalServerError)
	cookie := env.signIn(t)
	postPush(t, env, cookie, ``)

	listed := decodeJSON[struct {
		Notifications []models.Notification `json:"notifications"`
	}](t, env.jsonRequest(t, http.MethodGet, "/api/notifications", cookie, nil))
	if len(listed.Notifications) != 1 || listed.Notifications[0].Title != push.DefaultTitle {
		t.Fatalf("expected only the pushed default notification, got %#v", listed.Notifications)
	}
}
