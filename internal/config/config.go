// ABOUTME: Environment-driven configuration with typed defaults
// ABOUTME: Every knob has a POLICYSTORE_-prefixed variable

package config

import (
	"os"
	"strconv"
)

// Config holds the configuration for the PolicyStore service
type Config struct {
	APIPort     int
	MetricsPort int

	LogLevel  string
	LogPretty bool

	// Upload limits for untrusted document ingestion
	MaxUploadBytes int64
	UploadRateRPS  float64
	UploadBurst    int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		APIPort:     GetIntEnv("POLICYSTORE_API_PORT", 8080),
		MetricsPort: GetIntEnv("POLICYSTORE_METRICS_PORT", 9090),

		LogLevel:  GetStringEnv("POLICYSTORE_LOG_LEVEL", "info"),
		LogPretty: GetBoolEnv("POLICYSTORE_LOG_PRETTY", false),

		MaxUploadBytes: GetInt64Env("POLICYSTORE_MAX_UPLOAD_BYTES", 32<<20),
		UploadRateRPS:  GetFloatEnv("POLICYSTORE_UPLOAD_RATE_RPS", 5),
		UploadBurst:    GetIntEnv("POLICYSTORE_UPLOAD_BURST", 10),
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
