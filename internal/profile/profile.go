// Package profile edits the current user's profile record: validated saves,
// push subscription, picture upload, onboarding and account deletion.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
	"github.com/terraincognita07/stride/internal/session"
)

var (
	ErrUploadFailed     = errors.New("profile picture upload failed")
	ErrUnsupportedImage = errors.New("profile picture must be an image")
)

type Backend interface {
	SaveUser(ctx context.Context, update gateway.ProfileUpdate) (gateway.Message, error)
	RemoveUser(ctx context.Context) error
	RequestUploadURL(ctx context.Context, fileType string) (gateway.UploadTarget, error)
	Subscribe(ctx context.Context, subscription gateway.PushSubscription) error
	Unsubscribe(ctx context.Context, device string, browser string) error
}

// Form is the editable part of the profile page.
type Form struct {
	Nickname  string `json:"nickname" form:"nickname"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Birthdate string `json:"birthdate" form:"birthdate"`
	Gender    *bool  `json:"gender" form:"gender"`
	Height    string `json:"height" form:"height"`
}

// OnboardingForm is submitted once by users without a profile.
type OnboardingForm struct {
	Nickname  string  `json:"username" form:"username"`
	FirstName string  `json:"first_name" form:"first_name"`
	LastName  string  `json:"last_name" form:"last_name"`
	Email     string  `json:"email" form:"email"`
	Height    float64 `json:"height" form:"height"`
	Weight    float64 `json:"weight" form:"weight"`
}

type Service struct {
	backend    Backend
	session    *session.Context
	httpClient *http.Client
}

func NewService(backend Backend, sessionContext *session.Context, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{backend: backend, session: sessionContext, httpClient: httpClient}
}

// Save validates form, merges it into the session profile right away and
// sends it as UPDATE_USER. A failed call restores the previous profile.
func (service *Service) Save(ctx context.Context, form Form) (models.UserProfile, error) {
	normalized, fieldErrors := Validate(form)
	if fieldErrors != nil {
		return service.session.User(), fieldErrors
	}

	snapshot := service.session.User()
	updated := service.session.Merge(session.UserPatch{
		Nickname:  session.String(normalized.Nickname),
		FirstName: session.String(normalized.FirstName),
		LastName:  session.String(normalized.LastName),
		Email:     session.String(normalized.Email),
		Phone:     session.String(normalized.Phone),
		Birthdate: session.String(normalized.Birthdate),
		Gender:    normalized.Gender,
		Height:    session.String(normalized.Height),
	})

	if _, err := service.backend.SaveUser(ctx, updateFrom(updated)); err != nil {
		service.session.Replace(snapshot)
		slog.ErrorContext(ctx, "profile update rolled back", "error", err)
		return snapshot, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// SetNotifications toggles the push subscription flag and registers or
// removes the browser subscription with the backend.
func (service *Service) SetNotifications(ctx context.Context, enabled bool, subscription gateway.PushSubscription) (models.UserProfile, error) {
	snapshot := service.session.User()
	updated := service.session.Merge(session.UserPatch{NotificationSubscription: session.Bool(enabled)})

	var err error
	if enabled {
		err = service.backend.Subscribe(ctx, subscription)
	} else {
		err = service.backend.Unsubscribe(ctx, subscription.Device, subscription.Browser)
	}
	if err != nil {
		service.session.Replace(snapshot)
		slog.ErrorContext(ctx, "push subscription change rolled back", "enabled", enabled, "error", err)
		return snapshot, fmt.Errorf("change push subscription: %w", err)
	}
	return updated, nil
}

// UploadPicture requests a presigned URL, PUTs the image there and stores
// the resulting file URL on the profile.
func (service *Service) UploadPicture(ctx context.Context, contentType string, image io.Reader) (models.UserProfile, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return service.session.User(), ErrUnsupportedImage
	}

	target, err := service.backend.RequestUploadURL(ctx, contentType)
	if err != nil {
		return service.session.User(), fmt.Errorf("request upload url: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, target.UploadURL, image)
	if err != nil {
		return service.session.User(), fmt.Errorf("build upload request: %w", err)
	}
	request.Header.Set("Content-Type", contentType)
	response, err := service.httpClient.Do(request)
	if err != nil {
		return service.session.User(), fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	_, _ = io.Copy(io.Discard, response.Body)
	response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return service.session.User(), fmt.Errorf("%w: status %d", ErrUploadFailed, response.StatusCode)
	}

	snapshot := service.session.User()
	updated := service.session.Merge(session.UserPatch{ProfilePictureURL: session.String(target.FileURL)})
	if _, err := service.backend.SaveUser(ctx, updateFrom(updated)); err != nil {
		service.session.Replace(snapshot)
		slog.ErrorContext(ctx, "profile picture update rolled back", "error", err)
		return snapshot, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// CompleteOnboarding creates the profile of a user whose GET_USER returned
// 404 and clears the missing-profile marker once the backend accepts it.
func (service *Service) CompleteOnboarding(ctx context.Context, form OnboardingForm) (models.UserProfile, error) {
	normalized, fieldErrors := ValidateOnboarding(form)
	if fieldErrors != nil {
		return service.session.User(), fieldErrors
	}

	_, err := service.backend.SaveUser(ctx, gateway.ProfileUpdate{
		Nickname:  normalized.Nickname,
		FirstName: normalized.FirstName,
		LastName:  normalized.LastName,
		Email:     normalized.Email,
		Height:    normalized.Height,
		Weight:    normalized.Weight,
	})
	if err != nil {
		return service.session.User(), fmt.Errorf("create user: %w", err)
	}

	patch := session.UserPatch{
		Nickname:  session.String(normalized.Nickname),
		FirstName: session.String(normalized.FirstName),
		LastName:  session.String(normalized.LastName),
		Email:     session.String(normalized.Email),
		Height:    session.String(formatMeasure(normalized.Height)),
		NotFound:  session.Bool(false),
	}
	if normalized.Weight > 0 {
		patch.Weight = session.String(formatMeasure(normalized.Weight))
	}
	return service.session.Merge(patch), nil
}

func (service *Service) DeleteAccount(ctx context.Context) error {
	if err := service.backend.RemoveUser(ctx); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	service.session.Replace(models.MissingProfile())
	return nil
}

// DetectClient classifies a User-Agent into the device and browser labels
// sent with push subscriptions.
func DetectClient(userAgent string) (string, string) {
	device := "desktop"
	lowered := strings.ToLower(userAgent)
	if strings.Contains(userAgent, "Mobi") || strings.Contains(lowered, "android") {
		device = "mobile"
	}
	switch {
	case strings.Contains(userAgent, "Chrome"):
		return device, "chrome"
	case strings.Contains(userAgent, "Firefox"):
		return device, "firefox"
	case strings.Contains(userAgent, "Safari"):
		return device, "safari"
	default:
		return device, "unknown"
	}
}

func updateFrom(profile models.UserProfile) gateway.ProfileUpdate {
	height, _ := strconv.ParseFloat(strings.TrimSpace(profile.Height), 64)
	gender := profile.Gender
	return gateway.ProfileUpdate{
		Nickname:          profile.Nickname,
		ProfilePictureURL: profile.ProfilePictureURL,
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		Email:             profile.Email,
		Phone:             profile.Phone,
		Birthdate:         profile.Birthdate,
		Gender:            &gender,
		Height:            height,
	}
}

func formatMeasure(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
