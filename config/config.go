package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server
type Config struct {
	Port      string
	AWSRegion string
	S3Bucket  string

	// Gemini completion service
	GeminiAPIKey string
	GeminiModel  string

	// Logging
	LogJSON  bool
	LogDebug bool

	// AI endpoint throttling, requests per user per minute
	AIRateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8080"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		LogJSON:      getEnvBool("LOG_JSON", false),
		LogDebug:     getEnvBool("LOG_DEBUG", false),
	}

	limitStr := getEnvOrDefault("AI_RATE_LIMIT_PER_MINUTE", "6")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AI_RATE_LIMIT_PER_MINUTE: %w", err)
	}
	cfg.AIRateLimitPerMinute = limit

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
