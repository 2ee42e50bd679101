package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Message keys of inline field errors, translated by the i18n manager.
const (
	KeyInvalidEmail    = "profile.error.email"
	KeyInvalidPhone    = "profile.error.phone"
	KeyInvalidHeight   = "profile.error.height"
	KeyInvalidWeight   = "profile.error.weight"
	KeyMissingNickname = "profile.error.nickname"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.(com|org|net|edu|gov|mil|co|io|info|biz|me)$`)
	phonePattern  = regexp.MustCompile(`^\+?1?\s?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}$`)
	heightPattern = regexp.MustCompile(`^\d*\.?\d{0,1}$`)
	phoneStrip    = regexp.MustCompile(`[^\d+]`)
)

// FieldErrors maps a form field name to the message key of its error.
type FieldErrors map[string]string

func (fieldErrors FieldErrors) Error() string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// NormalizePhone accepts common US formats. Exactly ten digits are rewritten
// as +1 (XXX) XXX-XXXX; other accepted values are returned unchanged.
func NormalizePhone(value string) (string, bool) {
	cleaned := phoneStrip.ReplaceAllString(value, "")
	if len(cleaned) == 10 {
		return "+1 (" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:], true
	}
	if phonePattern.MatchString(value) {
		return value, true
	}
	return value, false
}

// ValidHeight accepts a non-empty number with at most one decimal digit.
func ValidHeight(value string) bool {
	return value != "" && heightPattern.MatchString(value)
}

// BMI computes weight(kg) / height(m)^2 from centimetres and kilograms.
func BMI(height string, weight string) (float64, bool) {
	centimetres, err := strconv.ParseFloat(strings.TrimSpace(height), 64)
	if err != nil || centimetres <= 0 {
		return 0, false
	}
	kilograms, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil || kilograms <= 0 {
		return 0, false
	}
	metres := centimetres / 100
	return kilograms / (metres * metres), true
}

// Validate checks the profile form and returns it with the phone number
// normalized. The returned FieldErrors is nil when the form is valid.
func Validate(form Form) (Form, FieldErrors) {
	fieldErrors := FieldErrors{}
	form.Email = strings.TrimSpace(form.Email)
	form.Height = strings.TrimSpace(form.Height)

	if !ValidEmail(form.Email) {
		fieldErrors["email"] = KeyInvalidEmail
	}
	phone, ok := NormalizePhone(strings.TrimSpace(form.Phone))
	if ok {
		form.Phone = phone
	} else {
		fieldErrors["phone"] = KeyInvalidPhone
	}
	if !ValidHeight(form.Height) {
		fieldErrors["height"] = KeyInvalidHeight
	}

	if len(fieldErrors) == 0 {
		return form, nil
	}
	return form, fieldErrors
}

// ValidateOnboarding checks the new-user form.
func ValidateOnboarding(form OnboardingForm) (OnboardingForm, FieldErrors) {
	fieldErrors := FieldErrors{}
	form.Nickname = strings.TrimSpace(form.Nickname)
	form.Email = strings.TrimSpace(form.Email)

	if form.Nickname == "" {
		fieldErrors["nickname"] = KeyMissingNickname
	}
	if !ValidEmail(form.Email) {
		fieldErrors["email"] = KeyInvalidEmail
	}
	if form.Height < 0 {
		fieldErrors["height"] = KeyInvalidHeight
	}
	if form.Weight < 0 {
		fieldErrors["weight"] = KeyInvalidWeight
	}

	if len(fieldErrors) == 0 {
		return form, nil
	}
	return form, fieldErrors
}
