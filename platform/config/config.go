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

// RedisConfig provides Redis connection settings.
type RedisConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
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

// SearchConfig provides tuning knobs for the universal search module.
type SearchConfig interface {
	GetSearchTimeout() time.Duration
	GetSearchPageSize() int
	GetSearchMaxPageSize() int
}

// HistoryConfig provides settings for the search history store.
type HistoryConfig interface {
	GetRecentSearchCap() int
	GetRecentSearchDisplay() int
	GetTrendingWindow() time.Duration
}

// Config holds all application configuration.
type Config struct {
	Env string

	HTTPAddr        string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTAccessSecret string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	SearchTimeout     time.Duration
	SearchPageSize    int
	SearchMaxPageSize int

	RecentSearchCap     int
	RecentSearchDisplay int
	TrendingWindow      time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// RedisConfig implementation
func (c *Config) GetRedisAddr() string     { return c.RedisAddr }
func (c *Config) GetRedisPassword() string { return c.RedisPassword }
func (c *Config) GetRedisDB() int          { return c.RedisDB }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SearchConfig implementation
func (c *Config) GetSearchTimeout() time.Duration { return c.SearchTimeout }
func (c *Config) GetSearchPageSize() int          { return c.SearchPageSize }
func (c *Config) GetSearchMaxPageSize() int       { return c.SearchMaxPageSize }

// HistoryConfig implementation
func (c *Config) GetRecentSearchCap() int          { return c.RecentSearchCap }
func (c *Config) GetRecentSearchDisplay() int      { return c.RecentSearchDisplay }
func (c *Config) GetTrendingWindow() time.Duration { return c.TrendingWindow }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         mustInt(getEnv("REDIS_DB", "0")),
		JWTAccessSecret: getEnv("JWT_ACCESS_SECRET", ""),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		SearchTimeout:     mustDuration(getEnv("SEARCH_TIMEOUT", "5s")),
		SearchPageSize:    mustInt(getEnv("SEARCH_PAGE_SIZE", "20")),
		SearchMaxPageSize: mustInt(getEnv("SEARCH_MAX_PAGE_SIZE", "50")),

		RecentSearchCap:     mustInt(getEnv("RECENT_SEARCH_CAP", "50")),
		RecentSearchDisplay: mustInt(getEnv("RECENT_SEARCH_DISPLAY", "5")),
		TrendingWindow:      mustDuration(getEnv("TRENDING_WINDOW", "168h")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.SearchTimeout <= 0 {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be a positive duration")
	}
	if cfg.SearchPageSize <= 0 || cfg.SearchPageSize > cfg.SearchMaxPageSize {
		return nil, fmt.Errorf("SEARCH_PAGE_SIZE must be positive and not exceed SEARCH_MAX_PAGE_SIZE")
	}

	return cfg, nil
}

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

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
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
