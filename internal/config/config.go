package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "ecotrack.db"
	defaultHandleDomain = "ecotrack.id"
	defaultAuthTimeout  = "10s"
)

// Config is the runtime configuration of the onboarding service,
// loaded from the environment with development defaults.
type Config struct {
	AppEnv           string
	HTTPAddr         string
	DatabaseURL      string
	AuthAPIURL       string // empty means the gorm-backed local identity store
	AuthServiceKey   string
	AuthHandleDomain string
	AuthTimeout      time.Duration
	CORSOrigins      []string
}

// defaultCORSOrigins covers the local dashboard dev servers; production
// origins come in through CORS_ALLOWED_ORIGINS.
func defaultCORSOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
}

func Load() (*Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}

	cfg := &Config{
		AppEnv:           strings.ToLower(appEnv),
		HTTPAddr:         getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:      getEnv("DATABASE_URL", defaultDatabaseURL),
		AuthAPIURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("AUTH_API_URL")), "/"),
		AuthServiceKey:   strings.TrimSpace(os.Getenv("AUTH_SERVICE_KEY")),
		AuthHandleDomain: getEnv("AUTH_HANDLE_DOMAIN", defaultHandleDomain),
		CORSOrigins:      append(defaultCORSOrigins(), splitEnv("CORS_ALLOWED_ORIGINS")...),
	}

	var err error
	cfg.AuthTimeout, err = parseDurationEnv("AUTH_TIMEOUT", defaultAuthTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.AuthAPIURL != "" && cfg.AuthServiceKey == "" {
		return nil, fmt.Errorf("AUTH_SERVICE_KEY is required when AUTH_API_URL is set")
	}

	return cfg, nil
}

func (c *Config) IsProd() bool { return c.AppEnv == "prod" || c.AppEnv == "production" }

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitEnv reads a comma-separated env var, dropping empty entries.
func splitEnv(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
