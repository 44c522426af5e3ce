package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	DatabasePath string
	LogLevel     string

	// Analysis defaults, overridable per request
	HorizonMonths     int
	Granularity       string // daily, weekly, monthly
	SafetyThreshold   float64
	FixedCostsMonthly float64
	ConservativeMode  bool

	// Credit line defaults
	CreditLineTotal    float64
	CreditLineUsed     float64
	CreditInterestRate float64 // annual, percent
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// Try the current directory first, then the parent (common when running
	// from /backend during development).
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	granularity := strings.ToLower(getEnv("GRANULARITY", "weekly"))
	switch granularity {
	case "daily", "weekly", "monthly":
	default:
		log.Printf("WARNING: Invalid GRANULARITY '%s', using 'weekly'.", granularity)
		granularity = "weekly"
	}

	Cfg = &AppConfig{
		DatabasePath: getEnv("DATABASE_PATH", "./caudal.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		HorizonMonths:     getEnvAsInt("HORIZON_MONTHS", 6),
		Granularity:       granularity,
		SafetyThreshold:   getEnvAsFloat("SAFETY_THRESHOLD", 0),
		FixedCostsMonthly: getEnvAsFloat("FIXED_COSTS_MONTHLY", 0),
		ConservativeMode:  getEnvAsBool("CONSERVATIVE_MODE", false),

		CreditLineTotal:    getEnvAsFloat("CREDIT_LINE_TOTAL", 0),
		CreditLineUsed:     getEnvAsFloat("CREDIT_LINE_USED", 0),
		CreditInterestRate: getEnvAsFloat("CREDIT_INTEREST_RATE", 0),
	}

	log.Printf("Configuration loaded: DBPath=%s, LogLevel=%s, Horizon=%dm, Granularity=%s",
		Cfg.DatabasePath, Cfg.LogLevel, Cfg.HorizonMonths, Cfg.Granularity)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float or returns a fallback.
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid numeric value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a fallback.
func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}
