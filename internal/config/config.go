package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds calculation engine tunables. Defaults mirror the
// standard 8-hour split shift with a 30 minute grace window.
type PayrollConfig struct {
	GracePeriodMinutes int
	SessionCapHours    float64
	StandardDayHours   float64
	BatchConcurrency   int
}

func Load() (*Config, error) {
	// A missing .env file is fine; values may come from the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll engine configuration
	graceMinutes, err := strconv.Atoi(getEnv("PAYROLL_GRACE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_GRACE_MINUTES: %w", err)
	}
	sessionCap, err := strconv.ParseFloat(getEnv("PAYROLL_SESSION_CAP_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_SESSION_CAP_HOURS: %w", err)
	}
	standardDay, err := strconv.ParseFloat(getEnv("PAYROLL_STANDARD_DAY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_DAY_HOURS: %w", err)
	}
	batchConcurrency, err := strconv.Atoi(getEnv("PAYROLL_BATCH_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_CONCURRENCY: %w", err)
	}

	config.Payroll = PayrollConfig{
		GracePeriodMinutes: graceMinutes,
		SessionCapHours:    sessionCap,
		StandardDayHours:   standardDay,
		BatchConcurrency:   batchConcurrency,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.SessionCapHours <= 0 {
		return fmt.Errorf("PAYROLL_SESSION_CAP_HOURS must be positive")
	}
	if c.Payroll.StandardDayHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_DAY_HOURS must be positive")
	}
	if c.Payroll.BatchConcurrency < 1 {
		return fmt.Errorf("PAYROLL_BATCH_CONCURRENCY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
