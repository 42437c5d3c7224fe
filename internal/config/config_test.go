package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, DefaultUptimeBaseURL, cfg.UptimeBaseURL)
	assert.Equal(t, DefaultUptimeTimeout, cfg.UptimeTimeout)
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.UptimeEnabled())
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, defaultOrigins, cfg.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":                 "8080",
		"DATABASE_DRIVER":      "SQLite3",
		"DATABASE_URL":         "file:hub.db",
		"UPTIMEROBOT_API_KEY":  " u123 ",
		"UPTIMEROBOT_BASE_URL": "http://localhost:9999/v2/",
		"UPTIME_TIMEOUT":       "3s",
		"CLIENT_URL":           "https://noble.example",
		"ALLOWED_ORIGINS":      "https://a.example, ,https://b.example",
		"ADMIN_EMAIL":          " Admin@Noble.Example ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.True(t, cfg.DatabaseEnabled())
	assert.True(t, cfg.UptimeEnabled())
	assert.Equal(t, "u123", cfg.UptimeAPIKey)
	assert.Equal(t, "http://localhost:9999/v2", cfg.UptimeBaseURL)
	assert.Equal(t, 3*time.Second, cfg.UptimeTimeout)
	assert.Equal(t, "admin@noble.example", cfg.AdminEmail)
	assert.Contains(t, cfg.AllowedOrigins, "https://noble.example")
	assert.Contains(t, cfg.AllowedOrigins, "https://a.example")
	assert.Contains(t, cfg.AllowedOrigins, "https://b.example")
	assert.Len(t, cfg.AllowedOrigins, len(defaultOrigins)+3)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"DATABASE_DRIVER": "oracle"}))
	require.Error(t, err)

	_, err = FromEnv(envMap(map[string]string{"UPTIME_TIMEOUT": "soon"}))
	require.Error(t, err)
}
