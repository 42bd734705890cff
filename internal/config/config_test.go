package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"DIRECTORY_PRIMARY.ENV":                 "local",
		"DIRECTORY_SERVER.PORT":                 "8080",
		"DIRECTORY_SERVER.READ_TIMEOUT":         "30",
		"DIRECTORY_SERVER.WRITE_TIMEOUT":        "30",
		"DIRECTORY_SERVER.IDLE_TIMEOUT":         "60",
		"DIRECTORY_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"DIRECTORY_DATABASE.HOST":               "localhost",
		"DIRECTORY_DATABASE.PORT":               "5432",
		"DIRECTORY_DATABASE.USER":               "postgres",
		"DIRECTORY_DATABASE.PASSWORD":           "postgres",
		"DIRECTORY_DATABASE.NAME":               "directory",
		"DIRECTORY_DATABASE.SSL_MODE":           "disable",
		"DIRECTORY_DATABASE.MAX_OPEN_CONNS":     "10",
		"DIRECTORY_DATABASE.MAX_IDLE_CONNS":     "2",
		"DIRECTORY_DATABASE.CONN_MAX_LIFETIME":  "300",
		"DIRECTORY_DATABASE.CONN_MAX_IDLE_TIME": "60",
		"DIRECTORY_REDIS.ADDRESS":               "localhost:6379",
		"DIRECTORY_INTEGRATION.RESEND_API_KEY":  "",
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestLoadConfig_DefaultsObservability(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.IsLocal())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.NotEmpty(t, cfg.Integration.EmailFrom)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DIRECTORY_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_HasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("database"))
	assert.True(t, cfg.HasCheck("redis"))
	assert.False(t, cfg.HasCheck("s3"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("database"))
}
