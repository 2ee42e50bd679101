package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stride/internal/gateway"
)

func failWith(err error) Check {
	return func(context.Context) error { return err }
}

var errNotFound = &gateway.HTTPError{Route: gateway.GetUser, Status: http.StatusNotFound}

func TestProtectAllowsOnSuccess(t *testing.T) {
	decision := Protect(context.Background(), failWith(nil), "/onboarding")
	if decision.State != Allowed || decision.Degraded {
		t.Fatalf("unexpected decision %+v", decision)
	}
}

func TestProtectRedirectsOnNotFound(t *testing.T) {
	decision := Protect(context.Background(), failWith(errNotFound), "/onboarding")
	if decision.State != Redirecting || decision.Redirect != "/onboarding" {
		t.Fatalf("unexpected decision %+v", decision)
	}
}

func TestProtectFailsOpenOnOtherErrors(t *testing.T) {
	for _, err := range []error{
		&gateway.HTTPError{Status: http.StatusInternalServerError},
		&gateway.HTTPError{Status: http.StatusUnauthorized},
		gateway.ErrNoResponse,
		gateway.ErrAuthentication,
		errors.New("boom"),
	} {
		decision := Protect(context.Background(), failWith(err), "/onboarding")
		if decision.State != Allowed || !decision.Degraded {
			t.Fatalf("error %v: expected degraded allow, got %+v", err, decision)
		}
	}
}

func TestReverseRedirectsHomeWhenProfileExists(t *testing.T) {
	decision := Reverse(context.Background(), failWith(nil), "/")
	if decision.State != Redirecting || decision.Redirect != "/" {
		t.Fatalf("unexpected decision %+v", decision)
	}
}

func TestReverseAllowsOnboardingWhenProfileMissing(t *testing.T) {
	decision := Reverse(context.Background(), failWith(errNotFound), "/")
	if decision.State != Allowed || decision.Degraded {
		t.Fatalf("unexpected decision %+v", decision)
	}
}

func newGuardedApp(mode Mode, target string, err error, allowed *int) *fiber.App {
	app := fiber.New()
	app.Get("/page", New(Config{
		Mode:    mode,
		Resolve: func(*fiber.Ctx) Check { return failWith(err) },
		Target:  target,
		OnAllowed: func(*fiber.Ctx, Decision) {
			*allowed++
		},
	}), func(c *fiber.Ctx) error {
		return c.SendString("content")
	})
	return app
}

func TestMiddlewareRedirectsWithoutRenderingChildren(t *testing.T) {
	allowed := 0
	app := newGuardedApp(ModeProtect, "/onboarding", errNotFound, &allowed)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/page", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/onboarding" {
		t.Fatalf("expected redirect to /onboarding, got %q", location)
	}
	if allowed != 0 {
		t.Fatal("OnAllowed must not run on redirect")
	}
}

func TestMiddlewareRendersChildrenWhenDegraded(t *testing.T) {
	allowed := 0
	app := newGuardedApp(ModeProtect, "/onboarding", gateway.ErrNoResponse, &allowed)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/page", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	if allowed != 0 {
		t.Fatal("OnAllowed must not run on a degraded decision")
	}
}

func TestMiddlewareUsesHTMXRedirect(t *testing.T) {
	allowed := 0
	app := newGuardedApp(ModeReverse, "/", nil, &allowed)

	request := httptest.NewRequest(http.MethodGet, "/page", nil)
	request.Header.Set("HX-Request", "true")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK || response.Header.Get("HX-Redirect") != "/" {
		t.Fatalf("expected HX-Redirect to /, got %d %q", response.StatusCode, response.Header.Get("HX-Redirect"))
	}
}

func TestMiddlewareRunsOnAllowed(t *testing.T) {
	allowed := 0
	app := newGuardedApp(ModeProtect, "/onboarding", nil, &allowed)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/page", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK || allowed != 1 {
		t.Fatalf("expected rendered page with one OnAllowed call, got %d / %d", response.StatusCode, allowed)
	}
}
