package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/terraincognita07/stride/internal/db"
	"github.com/terraincognita07/stride/internal/i18n"
	"github.com/terraincognita07/stride/internal/models"
)

// 2026-03-04 is a Wednesday.
var fixedNow = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	bodies   map[string][]byte
	failures map[string]int
	profile  *models.UserProfile
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		bodies:   map[string][]byte{},
		failures: map[string]int{},
		profile: &models.UserProfile{
			ID:       "user-1",
			Nickname: "runner",
			Email:    "runner@example.com",
			Phone:    "+1 (555) 123-4567",
			Height:   "180",
			Weight:   "81",
			Achievements: map[string]models.AchievementProgress{
				"first_workout": {Progress: 1, Completed: true},
			},
		},
	}
}

func (backend *fakeBackend) fail(method string, path string, status int) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.failures[method+" "+path] = status
}

func (backend *fakeBackend) restore(method string, path string) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.failures, method+" "+path)
}

func (backend *fakeBackend) withoutProfile() {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.profile = nil
}

func (backend *fakeBackend) called(method string, path string) int {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	count := 0
	for _, call := range backend.calls {
		if call == method+" "+path {
			count++
		}
	}
	return count
}

func (backend *fakeBackend) lastBody(method string, path string) []byte {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return backend.bodies[method+" "+path]
}

func (backend *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	backend.mu.Lock()
	backend.calls = append(backend.calls, key)
	backend.bodies[key] = body
	status, failing := backend.failures[key]
	profile := backend.profile
	backend.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "GET /user-profile":
		if profile == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": profile})
	case "GET /health-data":
		_, _ = io.WriteString(w, `{"data":{"day_calories":420,"day_steps":3000,"day_food":[{"title":"Oats","calories":420,"macros":{"carb":60,"fat":8,"protein":15}}],"day_workout_plan":[],"day_calories_diff":12,"previous_day":"2026-03-03"}}`)
	case "POST /health-data":
		_, _ = io.WriteString(w, `{"message":"saved","achievements":[{"id":"first_health_log"}]}`)
	case "GET /goals":
		_, _ = io.WriteString(w, `{"data":[{"title":"Drink water","completed":false}]}`)
	case "GET /workoutplan-card":
		if r.URL.Query().Get("action") == "user" {
			_, _ = io.WriteString(w, `{"data":[{"id":"mine-1","workout_title":"Legs","username":"runner","fav_count":0,"deletable":true,"exercises":[{"title":"Squat","set_count":3}]}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":[{"id":"disc-1","workout_title":"Core","username":"coach","fav_count":2,"exercises":[{"title":"Plank","set_count":3}]}],"popular":[{"id":"pop-1","workout_title":"Push","username":"coach","fav_count":9,"exercises":[{"title":"Bench","set_count":5}]}]}`)
	case "GET /workoutplan-weekly":
		_, _ = io.WriteString(w, `{"data":{"wednesday":[{"id":"mine-1","workout_title":"Legs","username":"runner","exercises":[{"title":"Squat","set_count":3}]}]}}`)
	case "GET /user-profile/notifications":
		_, _ = io.WriteString(w, `{"data":[{"id":"n-1","title":"Reminder","text":"Log your water"}]}`)
	default:
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}
}

type testApp struct {
	app      *fiber.App
	handler  *Handler
	backend  *fakeBackend
	database *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "stride-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewBundledManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Database:   database,
		SecretKey:  "test-secret-key",
		APIBaseURL: server.URL,
		Location:   time.UTC,
		I18n:       i18nManager,
		HTTPClient: server.Client(),
		Now:        func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, backend: backend, database: database}
}

// signIn creates a browser session for an opaque access token and returns
// the session cookie header value.
func (env *testApp) signIn(t *testing.T) string {
	t.Helper()
	form := url.Values{"access_token": {"opaque-access-token"}}
	request := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := env.do(t, request)
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected session redirect, got %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("session cookie was not set")
	return ""
}

func (env *testApp) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testApp) jsonRequest(t *testing.T, method string, path string, cookie string, payload any) *http.Response {
	t.Helper()
	return env.do(t, newJSONRequest(t, method, path, cookie, payload))
}

func newJSONRequest(t *testing.T, method string, path string, cookie string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = strings.NewReader(string(encoded))
	}
	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func (env *testApp) page(t *testing.T, path string, cookie string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.Header.Set("Accept-Language", "en")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return env.do(t, request)
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	var decoded T
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
