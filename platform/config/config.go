// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RoutingConfig provides settings for the route-optimization provider.
// The provider is selected here, at startup, and passed into the factory;
// business logic never reads the environment directly.
type RoutingConfig interface {
	GetRoutingProvider() string
	GetGoogleMapsAPIKey() string
	GetMapboxAccessToken() string
	GetGeocodeCacheTTL() time.Duration
	GetGeocodeRatePerSecond() float64
}

// SchedulerConfig provides settings for the asynq task scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides settings for the SMTP reminder sender.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// Routing provider identifiers accepted by ROUTING_PROVIDER.
const (
	RoutingProviderGoogle = "google"
	RoutingProviderMapbox = "mapbox"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTAccessSecret      string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	RoutingProvider      string
	GoogleMapsAPIKey     string
	MapboxAccessToken    string
	GeocodeCacheTTL      time.Duration
	GeocodeRatePerSecond float64
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	EmailEnabled         bool
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
}

// Load reads configuration from the environment (and .env when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RoutingProvider:      strings.ToLower(getEnv("ROUTING_PROVIDER", RoutingProviderGoogle)),
		GoogleMapsAPIKey:     getEnv("GOOGLE_MAPS_API_KEY", ""),
		MapboxAccessToken:    getEnv("MAPBOX_ACCESS_TOKEN", ""),
		GeocodeCacheTTL:      mustDuration(getEnv("GEOCODE_CACHE_TTL", "168h")),
		GeocodeRatePerSecond: mustFloat(getEnv("GEOCODE_RATE_PER_SECOND", "10"), 10),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "10"), 10),
		EmailEnabled:         emailEnabled,
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             mustInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "GroomRoute"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	switch cfg.RoutingProvider {
	case RoutingProviderGoogle:
		if cfg.GoogleMapsAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required when ROUTING_PROVIDER is google")
		}
	case RoutingProviderMapbox:
		if cfg.MapboxAccessToken == "" {
			return nil, fmt.Errorf("MAPBOX_ACCESS_TOKEN is required when ROUTING_PROVIDER is mapbox")
		}
	default:
		return nil, fmt.Errorf("unknown ROUTING_PROVIDER %q", cfg.RoutingProvider)
	}
	if cfg.EmailEnabled && (cfg.SMTPHost == "" || cfg.EmailFromAddress == "") {
		return nil, fmt.Errorf("SMTP_HOST and EMAIL_FROM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string             { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string         { return c.JWTAccessSecret }
func (c *Config) GetHTTPAddr() string                { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool              { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string           { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool            { return c.CORSAllowCreds }
func (c *Config) GetRoutingProvider() string         { return c.RoutingProvider }
func (c *Config) GetGoogleMapsAPIKey() string        { return c.GoogleMapsAPIKey }
func (c *Config) GetMapboxAccessToken() string       { return c.MapboxAccessToken }
func (c *Config) GetGeocodeCacheTTL() time.Duration  { return c.GeocodeCacheTTL }
func (c *Config) GetGeocodeRatePerSecond() float64   { return c.GeocodeRatePerSecond }
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool          { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string          { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int           { return c.AsynqConcurrency }
func (c *Config) GetEmailEnabled() bool              { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string                { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                   { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string            { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string            { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string           { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string        { return c.EmailFromAddress }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func mustFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
