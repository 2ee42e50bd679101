package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/terraincognita07/stride/internal/db"
	"github.com/terraincognita07/stride/internal/i18n"
	"github.com/terraincognita07/stride/internal/session"
	"github.com/terraincognita07/stride/internal/templates"
	"github.com/terraincognita07/stride/internal/userinfo"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type Dependencies struct {
	Database     *gorm.DB
	SecretKey    string
	APIBaseURL   string
	Location     *time.Location
	I18n         *i18n.Manager
	CookieSecure bool
	SessionTTL   time.Duration
	// HTTPClient is used for backend calls and presigned uploads.
	HTTPClient *http.Client
	// UserInfo defaults to the sqlite-backed store.
	UserInfo userinfo.Store
	Now      func() time.Time
}

type Handler struct {
	repositories *db.Repositories
	codec        *secureCookieCodec
	apiBaseURL   string
	location     *time.Location
	i18n         *i18n.Manager
	cookieSecure bool
	sessionTTL   time.Duration
	httpClient   *http.Client
	userInfo     userinfo.Store
	templates    map[string]*template.Template
	states       *session.Registry[*State]
	now          func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Database == nil {
		return nil, errors.New("database is required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.APIBaseURL == "" {
		return nil, errors.New("api base url is required")
	}

	codec, err := newSecureCookieCodec([]byte(deps.SecretKey))
	if err != nil {
		return nil, err
	}
	pages, err := parsePageTemplates(templates.Files, newTemplateFuncMap(), pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	handler := &Handler{
		repositories: db.NewRepositories(deps.Database),
		codec:        codec,
		apiBaseURL:   deps.APIBaseURL,
		location:     deps.Location,
		i18n:         deps.I18n,
		cookieSecure: deps.CookieSecure,
		sessionTTL:   deps.SessionTTL,
		httpClient:   deps.HTTPClient,
		userInfo:     deps.UserInfo,
		templates:    pages,
		now:          deps.Now,
	}
	if handler.location == nil {
		handler.location = time.Local
	}
	if handler.sessionTTL <= 0 {
		handler.sessionTTL = defaultSessionTTL
	}
	if handler.httpClient == nil {
		handler.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if handler.userInfo == nil {
		handler.userInfo = userinfo.NewSQLStore(handler.repositories.UserInfo)
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	handler.states = session.NewRegistry(handler.newState)
	return handler, nil
}

func (handler *Handler) today() time.Time {
	return handler.now().In(handler.location)
}
