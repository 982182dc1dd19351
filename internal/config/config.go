// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler: "text" (colored, development)
	// or "json" (aggregator-friendly). Defaults to "text".
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// TokenTTL is how long issued tokens stay valid. Defaults to 24h.
	TokenTTL time.Duration

	// GeminiAPIKey enables the AI gateway. Optional; when empty the AI
	// endpoints answer 503 instead of failing startup.
	GeminiAPIKey string

	// GeminiModel overrides the default model name. Optional.
	GeminiModel string

	// GeocodeAPIKey enables reverse geocoding. Optional; when empty
	// addresses fall back to formatted coordinates.
	GeocodeAPIKey string

	// DeviceLat/DeviceLon pin the device position. Optional, but either
	// both or neither must be set; when absent the location endpoint
	// answers 503.
	DeviceLat *float64
	DeviceLon *float64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeocodeAPIKey: os.Getenv("GEOCODE_API_KEY"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	if err := loadCoords(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadCoords parses the optional DEVICE_LAT / DEVICE_LON pair.
func loadCoords(cfg *Config) error {
	latStr, lonStr := os.Getenv("DEVICE_LAT"), os.Getenv("DEVICE_LON")
	if latStr == "" && lonStr == "" {
		return nil
	}
	if latStr == "" || lonStr == "" {
		return fmt.Errorf("DEVICE_LAT and DEVICE_LON must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return fmt.Errorf("invalid DEVICE_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return fmt.Errorf("invalid DEVICE_LON: %w", err)
	}

	cfg.DeviceLat, cfg.DeviceLon = &lat, &lon
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
