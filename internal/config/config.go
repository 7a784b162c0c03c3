package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Jobin12/invoice-extraction/internal/logger"
)

// Config carries the runtime settings for the CLI, loaded from environment
// variables (a .env file is honored by main).
type Config struct {
	// Collaborator endpoints
	ExtractionBaseURL string
	ZohoBaseURL       string

	// HTTP client behavior
	HTTPTimeout time.Duration

	// Logging configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	timeoutSecs, err := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: HTTP_TIMEOUT_SECONDS must be an integer: %w", err)
	}
	if timeoutSecs <= 0 {
		return nil, fmt.Errorf("config validation failed: HTTP_TIMEOUT_SECONDS must be positive")
	}

	config := &Config{
		ExtractionBaseURL: getEnv("EXTRACTION_BASE_URL", "http://localhost:8000"),
		ZohoBaseURL:       getEnv("ZOHO_BASE_URL", "http://localhost:8000"),
		HTTPTimeout:       time.Duration(timeoutSecs) * time.Second,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
	}

	return config, nil
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
