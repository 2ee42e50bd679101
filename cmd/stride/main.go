package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/terraincognita07/stride/internal/api"
	"github.com/terraincognita07/stride/internal/config"
	"github.com/terraincognita07/stride/internal/db"
	"github.com/terraincognita07/stride/internal/i18n"
	"github.com/terraincognita07/stride/internal/logging"
	"github.com/terraincognita07/stride/internal/userinfo"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32
	sessionSweepInterval      = 10 * time.Minute
)

var errCSRFTokenMissing = errors.New("csrf token not found")

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.SentryDSN != "")
	time.Local = cfg.Location

	secretKey, err := resolveSecretKey(cfg)
	if err != nil {
		slog.Error("invalid secret key", "error", err)
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}()

	i18nManager, err := i18n.NewBundledManager(cfg.DefaultLanguage)
	if err != nil {
		slog.Error("i18n init failed", "error", err)
		os.Exit(1)
	}

	userInfo, closeUserInfo, err := openUserInfoStore(cfg)
	if err != nil {
		slog.Error("user info store init failed", "error", err)
		os.Exit(1)
	}
	defer closeUserInfo()

	handler, err := api.NewHandler(api.Dependencies{
		Database:     database,
		SecretKey:    secretKey,
		APIBaseURL:   cfg.APIBaseURL,
		Location:     cfg.Location,
		I18n:         i18nManager,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		UserInfo:     userInfo,
	})
	if err != nil {
		slog.Error("handler init failed", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Stride",
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	handler.StartSessionSweeper(lifecycleCtx, sessionSweepInterval)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("stride listening", "port", cfg.Port, "api", cfg.APIBaseURL, "db", cfg.DBPath, "tz", cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func resolveSecretKey(cfg *config.Config) (string, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == insecureSecretPlaceholder && cfg.IsProduction():
		return "", errors.New("SECRET_KEY must not use the placeholder in production")
	case len(secret) < minSecretKeyLength && cfg.IsProduction():
		return "", errors.New("SECRET_KEY must be at least 32 characters in production")
	}
	return secret, nil
}

// openUserInfoStore picks redis when REDIS_URL is set and the sqlite store
// otherwise.
func openUserInfoStore(cfg *config.Config) (userinfo.Store, func(), error) {
	if cfg.RedisURL == "" {
		return nil, func() {}, nil
	}
	options, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(options)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return userinfo.NewRedisStore(client, cfg.UserInfoTTL), func() { _ = client.Close() }, nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		Extractor:      csrfExtractor,
		CookieName:     "stride_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

// csrfExtractor reads the token from the X-CSRF-Token header and falls back
// to the csrf_token form field used by the server-rendered forms.
func csrfExtractor(c *fiber.Ctx) (string, error) {
	if token := strings.TrimSpace(c.Get("X-CSRF-Token")); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(c.FormValue("csrf_token")); token != "" {
		return token, nil
	}
	return "", errCSRFTokenMissing
}
