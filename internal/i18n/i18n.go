package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strconv"
	"strings"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

// Locales holds the bundled message catalogs, one <language>.json each.
//
//go:embed locales/*.json
var Locales embed.FS

// Manager serves per-language catalogs. Each catalog is merged over the
// default language once at load, so lookups never fall through at runtime.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]map[string]string
	languages       []string
}

// NewManager loads every <language>.json under dir in locales. Both en and
// ru must be present.
func NewManager(defaultLanguage string, locales fs.FS, dir string) (*Manager, error) {
	raw, err := readCatalogs(locales, dir)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{LangEN, LangRU} {
		if _, ok := raw[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	manager := &Manager{
		defaultLanguage: LangEN,
		catalogs:        make(map[string]map[string]string, len(raw)),
	}
	for language := range raw {
		manager.languages = append(manager.languages, language)
	}
	sort.Strings(manager.languages)

	if language := baseLanguage(defaultLanguage); raw[language] != nil {
		manager.defaultLanguage = language
	}

	fallback := raw[manager.defaultLanguage]
	for language, messages := range raw {
		merged := make(map[string]string, len(fallback)+len(messages))
		for _, catalog := range []map[string]string{fallback, messages} {
			for key, value := range catalog {
				if strings.TrimSpace(value) != "" {
					merged[key] = value
				}
			}
		}
		manager.catalogs[language] = merged
	}
	return manager, nil
}

// NewBundledManager loads the embedded catalogs.
func NewBundledManager(defaultLanguage string) (*Manager, error) {
	return NewManager(defaultLanguage, Locales, "locales")
}

func readCatalogs(locales fs.FS, dir string) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(locales, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	catalogs := map[string]map[string]string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		language := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))

		content, err := fs.ReadFile(locales, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}
		catalogs[language] = messages
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return slices.Clone(manager.languages)
}

// NormalizeLanguage maps tags like "ru_RU" or "EN-gb" to a supported base
// language, or the default.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := baseLanguage(raw); manager.catalogs[language] != nil {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage picks the supported language with the highest
// q-value. Ties keep header order; q=0 entries are skipped.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	type candidate struct {
		language string
		quality  float64
	}

	var candidates []candidate
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		language := baseLanguage(tag)
		if manager.catalogs[language] == nil {
			continue
		}
		quality := 1.0
		for _, param := range strings.Split(params, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(key) != "q" {
				continue
			}
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				quality = parsed
			}
		}
		if quality <= 0 {
			continue
		}
		candidates = append(candidates, candidate{language: language, quality: quality})
	}

	if len(candidates) == 0 {
		return manager.defaultLanguage
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].quality > candidates[j].quality
	})
	return candidates[0].language
}

// Messages returns the merged catalog for language. The map is shared and
// must not be modified.
func (manager *Manager) Messages(language string) map[string]string {
	return manager.catalogs[manager.NormalizeLanguage(language)]
}

func (manager *Manager) Translate(language string, key string) string {
	if value, ok := manager.Messages(language)[key]; ok {
		return value
	}
	return key
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if index := strings.IndexAny(tag, "-_"); index >= 0 {
		tag = tag[:index]
	}
	return tag
}
