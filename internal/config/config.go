package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	APIKey      string // API key for authentication

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// StoreBackend selects the award store implementation ("postgres" or "memory").
	// The memory backend is for local development and tests only.
	StoreBackend string

	Wheel WheelConfig
}

// WheelConfig holds the spin-limiting and lifecycle settings for the wheel.
type WheelConfig struct {
	Enabled              bool
	MaxSpinsPerSession   int
	MaxSpinsPerDay       int
	CooldownBetweenSpins time.Duration
	AwardValidity        time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		APIKey:       getEnv("API_KEY", ""),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "wheelservice"),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendPostgres),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	wheel, err := loadWheelConfig()
	if err != nil {
		return nil, err
	}
	cfg.Wheel = wheel

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.StoreBackend != StoreBackendPostgres && cfg.StoreBackend != StoreBackendMemory {
		return nil, fmt.Errorf("invalid STORE_BACKEND value %q (expected %q or %q)",
			cfg.StoreBackend, StoreBackendPostgres, StoreBackendMemory)
	}

	return cfg, nil
}

func loadWheelConfig() (WheelConfig, error) {
	maxSession, err := getEnvInt("WHEEL_MAX_SPINS_PER_SESSION", DefaultMaxSpinsPerSession)
	if err != nil {
		return WheelConfig{}, err
	}
	maxDay, err := getEnvInt("WHEEL_MAX_SPINS_PER_DAY", DefaultMaxSpinsPerDay)
	if err != nil {
		return WheelConfig{}, err
	}
	cooldownMs, err := getEnvInt("WHEEL_SPIN_COOLDOWN_MS", DefaultSpinCooldownMs)
	if err != nil {
		return WheelConfig{}, err
	}
	validityHours, err := getEnvInt("WHEEL_AWARD_VALIDITY_HOURS", DefaultAwardValidityHours)
	if err != nil {
		return WheelConfig{}, err
	}

	cfg := WheelConfig{
		Enabled:              getEnvBool("WHEEL_ENABLED", true),
		MaxSpinsPerSession:   maxSession,
		MaxSpinsPerDay:       maxDay,
		CooldownBetweenSpins: time.Duration(cooldownMs) * time.Millisecond,
		AwardValidity:        time.Duration(validityHours) * time.Hour,
	}

	if cfg.MaxSpinsPerSession <= 0 {
		return WheelConfig{}, fmt.Errorf("WHEEL_MAX_SPINS_PER_SESSION must be positive, got %d", cfg.MaxSpinsPerSession)
	}
	if cfg.MaxSpinsPerDay <= 0 {
		return WheelConfig{}, fmt.Errorf("WHEEL_MAX_SPINS_PER_DAY must be positive, got %d", cfg.MaxSpinsPerDay)
	}
	if cfg.CooldownBetweenSpins < 0 {
		return WheelConfig{}, fmt.Errorf("WHEEL_SPIN_COOLDOWN_MS must not be negative, got %d", cooldownMs)
	}
	if cfg.AwardValidity <= 0 {
		return WheelConfig{}, fmt.Errorf("WHEEL_AWARD_VALIDITY_HOURS must be positive, got %d", validityHours)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return parsed, nil
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// Unparseable values fall back to the default rather than failing startup.
func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
