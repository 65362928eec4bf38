package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	// Blank out anything inherited from the environment.
	for _, key := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"CORS_ORIGINS", "DB_CONNECT_ATTEMPTS", "DB_CONNECT_BACKOFF_MS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "boxtrack.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Nil(t, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.DBConnectAttempts)
	assert.Equal(t, time.Second, cfg.DBConnectBackoff)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("DB_CONNECT_ATTEMPTS", "3")
	t.Setenv("DB_CONNECT_BACKOFF_MS", "250")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.DBConnectAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.DBConnectBackoff)
}

func TestFromEnvWildcardOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	assert.Nil(t, FromEnv().CORSOrigins)
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("DB_CONNECT_ATTEMPTS", "lots")
	assert.Equal(t, 30, FromEnv().DBConnectAttempts)
}
