package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Provider struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Export struct {
		CSVDir    string
		Locations []string
		Frequency int
		Schedule  string
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))

	// Provider configuration
	cfg.Provider.APIKey = getEnv("WWO_API_KEY", "")
	cfg.Provider.BaseURL = getEnv("WWO_BASE_URL", "")
	cfg.Provider.Timeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Scheduled export configuration
	cfg.Export.CSVDir = getEnv("CSV_DIR", "")
	locations := getEnv("EXPORT_LOCATIONS", "")
	if locations != "" {
		cfg.Export.Locations = strings.Split(locations, ",")
	}
	cfg.Export.Frequency = parseInt(getEnv("EXPORT_FREQUENCY", "1"))
	cfg.Export.Schedule = getEnv("EXPORT_SCHEDULE", "0 6 * * *")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}
