package i18n

import (
	"testing"
	"testing/fstest"
)

func TestBundledManagerTranslates(t *testing.T) {
	manager, err := NewBundledManager("ru")
	if err != nil {
		t.Fatalf("NewBundledManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangRU {
		t.Fatalf("expected ru default, got %q", manager.DefaultLanguage())
	}
	if got := manager.Translate("en", "title.dashboard"); got != "Dashboard" {
		t.Fatalf("Translate(en) = %q", got)
	}
	if got := manager.Translatef("en", "dashboard.greeting", "Peter"); got != "Welcome Back, Peter" {
		t.Fatalf("Translatef(en) = %q", got)
	}
	if got := manager.Translate("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestUnsupportedDefaultFallsBackToEnglish(t *testing.T) {
	manager, err := NewBundledManager("de")
	if err != nil {
		t.Fatalf("NewBundledManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected en fallback, got %q", manager.DefaultLanguage())
	}
	if got := manager.DetectFromAcceptLanguage("fr-FR, ru;q=0.8"); got != LangRU {
		t.Fatalf("DetectFromAcceptLanguage() = %q", got)
	}
}

func TestNewManagerRequiresBothLocales(t *testing.T) {
	locales := fstest.MapFS{
		"l/en.json": {Data: []byte(`{"a":"b"}`)},
	}
	if _, err := NewManager("en", locales, "l"); err == nil {
		t.Fatal("expected missing ru locale error")
	}
}

func TestDetectFromAcceptLanguageHonorsQuality(t *testing.T) {
	manager, err := NewBundledManager("en")
	if err != nil {
		t.Fatalf("NewBundledManager() unexpected error: %v", err)
	}

	tests := []struct {
		header string
		want   string
	}{
		{header: "ru;q=0.3, en;q=0.9", want: LangEN},
		{header: "en;q=0.5, ru-RU", want: LangRU},
		{header: "ru;q=0, de", want: LangEN},
		{header: "", want: LangEN},
		{header: "en, ru", want: LangEN},
	}
	for _, tt := range tests {
		if got := manager.DetectFromAcceptLanguage(tt.header); got != tt.want {
			t.Errorf("DetectFromAcceptLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestNormalizeLanguageStripsRegion(t *testing.T) {
	manager, err := NewBundledManager("en")
	if err != nil {
		t.Fatalf("NewBundledManager() unexpected error: %v", err)
	}
	for raw, want := range map[string]string{"ru_RU": LangRU, "EN-gb": LangEN, "fr": LangEN, " ": LangEN} {
		if got := manager.NormalizeLanguage(raw); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCatalogFallsBackToDefaultForMissingKeys(t *testing.T) {
	locales := fstest.MapFS{
		"l/en.json": {Data: []byte(`{"greeting":"Hello","farewell":"Bye"}`)},
		"l/ru.json": {Data: []byte(`{"greeting":"Привет","farewell":" "}`)},
	}
	manager, err := NewManager("en", locales, "l")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if got := manager.Translate("ru", "greeting"); got != "Привет" {
		t.Fatalf("Translate(ru, greeting) = %q", got)
	}
	if got := manager.Translate("ru", "farewell"); got != "Bye" {
		t.Fatalf("expected blank ru value to fall back, got %q", got)
	}
}
