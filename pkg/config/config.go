package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Link target search
	SearchURL      string
	SearchTimeout  time.Duration
	SearchModel    string
	SearchField    string
	SearchLocale   string
	SearchCacheTTL time.Duration

	// Circuit breaker around the search endpoint
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32

	// Redis caches search results when set.
	RedisURL string

	// OptionsFile is a YAML or JSON file of field option overrides.
	OptionsFile string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		SearchURL:      getEnv("RICHFIELD_SEARCH_URL", ""),
		SearchTimeout:  getDurationEnv("RICHFIELD_SEARCH_TIMEOUT", 5*time.Second),
		SearchModel:    getEnv("RICHFIELD_SEARCH_MODEL", ""),
		SearchField:    getEnv("RICHFIELD_SEARCH_FIELD", ""),
		SearchLocale:   getEnv("RICHFIELD_SEARCH_LOCALE", ""),
		SearchCacheTTL: getDurationEnv("RICHFIELD_SEARCH_CACHE_TTL", time.Minute),

		BreakerMaxRequests:      uint32(getIntEnv("RICHFIELD_BREAKER_MAX_REQUESTS", 1)),
		BreakerInterval:         getDurationEnv("RICHFIELD_BREAKER_INTERVAL", time.Minute),
		BreakerTimeout:          getDurationEnv("RICHFIELD_BREAKER_TIMEOUT", 30*time.Second),
		BreakerFailureThreshold: uint32(getIntEnv("RICHFIELD_BREAKER_FAILURE_THRESHOLD", 5)),

		RedisURL: getEnv("REDIS_URL", ""),

		OptionsFile: getEnv("RICHFIELD_OPTIONS_FILE", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SearchEnabled reports whether a link target search endpoint is configured.
func (c *Config) SearchEnabled() bool {
	return c.SearchURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= 0 {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
