package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestDashboardRedirectsToOnboardingWhenProfileMissing(t *testing.T) {
	env := newTestApp(t)
	env.backend.withoutProfile()
	cookie := env.signIn(t)

	response := env.page(t, "/dashboard", cookie)
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != onboardingPath {
		t.Fatalf("expected redirect to onboarding, got %q", location)
	}
	if env.backend.called(http.MethodGet, "/health-data") != 0 {
		t.Fatal("did not expect dashboard data to load before the guard allowed the page")
	}
}

func TestOnboardingRedirectsHomeWhenProfileExists(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.page(t, onboardingPath, cookie)
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != homePath {
		t.Fatalf("expected redirect home, got %q", location)
	}
}

func TestDashboardRendersDegradedWhenProfileCheckFails(t *testing.T) {
	env := newTestApp(t)
	env.backend.fail(http.MethodGet, "/user-profile", http.StatusInternalServerError)
	cookie := env.signIn(t)

	response := env.page(t, "/dashboard", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	if !strings.Contains(body, "Your profile could not be verified") {
		t.Fatal("expected degraded notice on dashboard")
	}
	if !strings.Contains(body, "Oats") {
		t.Fatal("expected dashboard data to render in degraded mode")
	}
}

func TestDashboardPageRendersRecordGoalsAndNotifications(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.page(t, "/dashboard", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	for _, want := range []string{"Welcome Back, runner", "Oats", "Drink water", "Legs", "Log your water"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected dashboard to contain %q", want)
		}
	}

	cached := env.jsonRequest(t, http.MethodGet, "/api/me/cache", cookie, nil)
	if cached.StatusCode != http.StatusOK {
		t.Fatalf("expected guarded page to remember user info, got %d", cached.StatusCode)
	}
}

func TestProfilePageShowsBMI(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.page(t, "/profile", cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if body := readBody(t, response); !strings.Contains(body, "BMI: 25") {
		t.Fatal("expected BMI 25 for 180 cm and 81 kg")
	}
}

func TestHomeRedirectsToDashboard(t *testing.T) {
	env := newTestApp(t)
	cookie := env.signIn(t)

	response := env.page(t, homePath, cookie)
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
}

func TestOnboardingSubmitCreatesProfileThenRedirects(t *testing.T) {
	env := newTestApp(t)
	env.backend.withoutProfile()
	cookie := env.signIn(t)

	form := url.Values{
		"username":   {"newbie"},
		"first_name": {"New"},
		"last_name":  {"User"},
		"email":      {"newbie@example.com"},
		"height":     {"172.5"},
		"weight":     {"64"},
	}
	request := httptest.NewRequest(http.MethodPost, onboardingPath, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Cookie", cookie)
	response := env.do(t, request)

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != homePath {
		t.Fatalf("expected redirect home, got %q", location)
	}
	sent := string(env.backend.lastBody(http.MethodPost, "/user-profile"))
	if !strings.Contains(sent, `"nickname":"newbie"`) || !strings.Contains(sent, `"weight":64`) {
		t.Fatalf("unexpected onboarding payload: %s", sent)
	}
}

func TestOnboardingSubmitRerendersWithFieldErrors(t *testing.T) {
	env := newTestApp(t)
	env.backend.withoutProfile()
	cookie := env.signIn(t)

	form := url.Values{"username": {""}, "email": {"not-an-email"}, "height": {"170"}}
	request := httptest.NewRequest(http.MethodPost, onboardingPath, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept-Language", "en")
	request.Header.Set("Cookie", cookie)
	response := env.do(t, request)

	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	if !strings.Contains(body, "Username is required.") || !strings.Contains(body, "Invalid email format.") {
		t.Fatal("expected translated field errors in the onboarding page")
	}
	if env.backend.called(http.MethodPost, "/user-profile") != 0 {
		t.Fatal("did not expect an invalid onboarding form to reach the backend")
	}
}
