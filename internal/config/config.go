// Package config loads service configuration from environment variables.
// A .env file, if present, is loaded by main before this runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime configuration.
type Config struct {
	Port              string
	DBPath            string
	LogLevel          string        // debug, info, warn, error
	LogFormat         string        // json or text
	CORSOrigins       []string      // empty allows all origins
	DBConnectAttempts int           // startup ping attempts before fatal
	DBConnectBackoff  time.Duration // fixed delay between attempts
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "boxtrack.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
		DBConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 30),
		DBConnectBackoff:  time.Duration(getEnvInt("DB_CONNECT_BACKOFF_MS", 1000)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" || v == "*" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
