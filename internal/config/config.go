package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/petervass/lineup/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port                string
	DBPath              string
	CachePath           string
	LineupURL           string
	Market              string
	SpotifyClientID     string
	SpotifyClientSecret string
	ScrapeLimit         int
	LogLevel            string
	LogFormat           string
}

// Load loads configuration from environment variables with defaults.
// Spotify credentials may legitimately be absent here; they only become
// an error at the moment a catalog lookup is attempted.
func Load() *Config {
	limit := constants.DefaultScrapeLimit
	if raw := os.Getenv("SCRAPE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", constants.DefaultPort),
		DBPath:              getEnv("DB_PATH", constants.DefaultDBPath),
		CachePath:           getEnv("CACHE_PATH", constants.DefaultCachePath),
		LineupURL:           getEnv("LINEUP_URL", constants.DefaultLineupURL),
		Market:              getEnv("SPOTIFY_MARKET", constants.DefaultMarket),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		ScrapeLimit:         limit,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.CachePath == "" {
		errors = append(errors, "CACHE_PATH cannot be empty")
	}

	if c.LineupURL == "" {
		errors = append(errors, "LINEUP_URL cannot be empty")
	} else if _, err := url.ParseRequestURI(c.LineupURL); err != nil {
		errors = append(errors, fmt.Sprintf("LINEUP_URL is not a valid URL: %s", c.LineupURL))
	}

	if c.Market == "" {
		errors = append(errors, "SPOTIFY_MARKET cannot be empty")
	} else if len(c.Market) != 2 {
		errors = append(errors, fmt.Sprintf("SPOTIFY_MARKET must be a two-letter country code, got: %s", c.Market))
	}

	if c.ScrapeLimit < 0 {
		errors = append(errors, fmt.Sprintf("SCRAPE_LIMIT cannot be negative, got: %d", c.ScrapeLimit))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
