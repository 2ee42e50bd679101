package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port         string
	AppEnv       string
	CookieSecure bool
	SecretKey    string
	SessionTTL   time.Duration

	// Backend API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Storage
	DBPath      string
	RedisURL    string
	UserInfoTTL time.Duration

	// Presentation
	Location        *time.Location
	DefaultLanguage string

	// Observability
	LogLevel  slog.Level
	SentryDSN string
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		CookieSecure: parseBool(getEnv("COOKIE_SECURE", "false")),
		SecretKey:    getEnv("SECRET_KEY", "change_me_in_production"),
		SessionTTL:   parseDuration(getEnv("SESSION_TTL", "168h"), 7*24*time.Hour),

		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
		HTTPTimeout: parseDuration(getEnv("HTTP_TIMEOUT", "15s"), 15*time.Second),

		DBPath:      getEnv("DB_PATH", filepath.Join("data", "stride.db")),
		RedisURL:    getEnv("REDIS_URL", ""),
		UserInfoTTL: parseDuration(getEnv("USER_INFO_TTL", "720h"), 30*24*time.Hour),

		Location:        loadLocation(getEnv("TZ", "UTC")),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),

		LogLevel:  parseLevel(getEnv("LOG_LEVEL", "info")),
		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

func (config *Config) IsProduction() bool {
	return strings.EqualFold(config.AppEnv, "production")
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(raw)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(raw)
	return err == nil && value
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}
