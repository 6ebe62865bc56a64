package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	TokenDBPath    string
	GradeLevel     int
	Debug          bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("SMARTPATH_API_URL", "http://localhost:8000/api/v1"),
		RequestTimeout: getDuration("SMARTPATH_TIMEOUT", 30*time.Second),
		TokenDBPath:    getEnv("SMARTPATH_TOKEN_DB", "./smartpath.db"),
		GradeLevel:     getInt("SMARTPATH_GRADE_LEVEL", 0),
		Debug:          getEnv("SMARTPATH_DEBUG", "") != "",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt reads an integer environment variable or returns a default value
func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
