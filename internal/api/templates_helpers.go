package api

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/stride/internal/guard"
)

var pageTemplates = []string{"login", "onboarding", "dashboard", "workouts", "profile", "not_found"}

func parsePageTemplates(files fs.FS, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("base").Funcs(funcMap).ParseFS(files, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		parsed[page] = tmpl
	}
	return parsed, nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":           translateMessage,
		"tf":          translateFormat,
		"formatFloat": formatTemplateFloat,
	}
}

func translateFormat(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func formatTemplateFloat(value float64) string {
	rounded := math.Round(value*10) / 10
	if math.Abs(rounded-math.Round(rounded)) < 1e-9 {
		return fmt.Sprintf("%.0f", rounded)
	}
	return fmt.Sprintf("%.1f", rounded)
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", handler.withTemplateDefaults(c, data)); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	messages := currentMessages(c)
	defaults := fiber.Map{
		"Messages":  messages,
		"Lang":      currentLanguage(c),
		"CSRFToken": csrfToken(c),
		"Path":      c.Path(),
	}
	if defaults["Lang"] == "" {
		defaults["Lang"] = handler.i18n.DefaultLanguage()
	}
	if decision, ok := guard.DecisionFrom(c); ok {
		defaults["Degraded"] = decision.Degraded
	}
	if state := currentState(c); state != nil {
		if achievement, ok := state.Inbox.Current(); ok {
			defaults["Achievement"] = achievement
		}
	}
	for key, value := range defaults {
		if _, ok := data[key]; !ok {
			data[key] = value
		}
	}
	return data
}
