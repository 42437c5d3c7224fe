package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	DefaultPort            = "3000"
	DefaultUptimeBaseURL   = "https://api.uptimerobot.com/v2"
	DefaultUptimeTimeout   = 10 * time.Second
	DefaultWebhookTimeout  = 5 * time.Second
	DefaultTokenExpiration = 7 * 24 * time.Hour
)

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
}

// Config is built once at process start and handed to every component that
// needs it. Nothing below the cmd package reads the environment directly.
type Config struct {
	Port    string
	GinMode string

	DatabaseDriver string
	DatabaseURL    string

	UptimeAPIKey  string
	UptimeBaseURL string
	UptimeTimeout time.Duration

	DiscordWebhookURL string
	SlackWebhookURL   string
	WebhookTimeout    time.Duration

	JWTSecret         string
	TokenExpiration   time.Duration
	AdminEmail        string
	AdminPasswordHash string
	CookieDomain      string

	AllowedOrigins []string

	MonitorBackfillSchedule string
}

// DatabaseEnabled reports whether a database connection was configured.
// Without one the data routes answer 503 instead of failing on first use.
func (c *Config) DatabaseEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) UptimeEnabled() bool {
	return c != nil && strings.TrimSpace(c.UptimeAPIKey) != ""
}

func (c *Config) AuthEnabled() bool {
	return c != nil && c.JWTSecret != ""
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, which keeps tests away
// from the real process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:                    getenv("PORT"),
		GinMode:                 getenv("GIN_MODE"),
		DatabaseDriver:          strings.ToLower(strings.TrimSpace(getenv("DATABASE_DRIVER"))),
		DatabaseURL:             strings.TrimSpace(getenv("DATABASE_URL")),
		UptimeAPIKey:            strings.TrimSpace(getenv("UPTIMEROBOT_API_KEY")),
		UptimeBaseURL:           strings.TrimRight(strings.TrimSpace(getenv("UPTIMEROBOT_BASE_URL")), "/"),
		DiscordWebhookURL:       strings.TrimSpace(getenv("DISCORD_WEBHOOK_URL")),
		SlackWebhookURL:         strings.TrimSpace(getenv("SLACK_WEBHOOK_URL")),
		JWTSecret:               getenv("JWT_SECRET"),
		AdminEmail:              strings.ToLower(strings.TrimSpace(getenv("ADMIN_EMAIL"))),
		AdminPasswordHash:       strings.TrimSpace(getenv("ADMIN_PASSWORD_HASH")),
		CookieDomain:            getenv("DOMAIN"),
		MonitorBackfillSchedule: strings.TrimSpace(getenv("MONITOR_BACKFILL_SCHEDULE")),
		UptimeTimeout:           DefaultUptimeTimeout,
		WebhookTimeout:          DefaultWebhookTimeout,
		TokenExpiration:         DefaultTokenExpiration,
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}

	if cfg.UptimeBaseURL == "" {
		cfg.UptimeBaseURL = DefaultUptimeBaseURL
	}

	switch cfg.DatabaseDriver {
	case "":
		cfg.DatabaseDriver = DriverPostgres
	case "postgresql":
		cfg.DatabaseDriver = DriverPostgres
	case "sqlite3":
		cfg.DatabaseDriver = DriverSQLite
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if raw := getenv("UPTIME_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid UPTIME_TIMEOUT %q", raw)
		}
		cfg.UptimeTimeout = d
	}

	if raw := getenv("WEBHOOK_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT %q", raw)
		}
		cfg.WebhookTimeout = d
	}

	cfg.AllowedOrigins = allowedOrigins(getenv("CLIENT_URL"), getenv("ALLOWED_ORIGINS"))

	return cfg, nil
}

func allowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL = strings.TrimSpace(clientURL); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(extra, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
