package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Salary   SalaryConfig
	Holiday  HolidayConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// SalaryConfig holds the salary engine tunables. Durations use Go syntax,
// e.g. "3h" or "90m".
type SalaryConfig struct {
	PreStartTolerance      time.Duration
	LateCheckoutTolerance  time.Duration
	EarlyCheckoutTolerance time.Duration
	FullDayThreshold       float64
	HalfDayThreshold       float64
	Workers                int
	Seed                   uint64
	Timezone               string
}

// HolidayConfig points at the Google Calendar the holiday table is synced
// from. An empty CalendarID disables the feed.
type HolidayConfig struct {
	CalendarID      string
	CredentialsFile string
	BaseURL         string
	SyncInterval    time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "2"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "payroll"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(maxConns),
		MinConns:    int32(minConns),
		AutoMigrate: getEnv("DB_AUTO_MIGRATE", "false") == "true",
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Salary engine configuration
	salaryConfig, err := loadSalaryConfig()
	if err != nil {
		return nil, err
	}
	config.Salary = salaryConfig

	// Holiday feed configuration
	syncInterval, err := time.ParseDuration(getEnv("HOLIDAY_SYNC_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_SYNC_INTERVAL: %w", err)
	}
	config.Holiday = HolidayConfig{
		CalendarID:      getEnv("HOLIDAY_CALENDAR_ID", ""),
		CredentialsFile: getEnv("HOLIDAY_CREDENTIALS_FILE", ""),
		BaseURL:         getEnv("HOLIDAY_CALENDAR_BASE_URL", ""),
		SyncInterval:    syncInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadSalaryConfig() (SalaryConfig, error) {
	var (
		cfg SalaryConfig
		err error
	)

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"SALARY_PRE_START_TOLERANCE", "3h", &cfg.PreStartTolerance},
		{"SALARY_LATE_CHECKOUT_TOLERANCE", "6h", &cfg.LateCheckoutTolerance},
		{"SALARY_EARLY_CHECKOUT_TOLERANCE", "3h", &cfg.EarlyCheckoutTolerance},
	}
	for _, d := range durations {
		if *d.target, err = time.ParseDuration(getEnv(d.key, d.fallback)); err != nil {
			return SalaryConfig{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
	}

	if cfg.FullDayThreshold, err = strconv.ParseFloat(getEnv("SALARY_FULL_DAY_THRESHOLD", "9"), 64); err != nil {
		return SalaryConfig{}, fmt.Errorf("invalid SALARY_FULL_DAY_THRESHOLD: %w", err)
	}
	if cfg.HalfDayThreshold, err = strconv.ParseFloat(getEnv("SALARY_HALF_DAY_THRESHOLD", "6"), 64); err != nil {
		return SalaryConfig{}, fmt.Errorf("invalid SALARY_HALF_DAY_THRESHOLD: %w", err)
	}
	if cfg.Workers, err = strconv.Atoi(getEnv("SALARY_WORKERS", "4")); err != nil {
		return SalaryConfig{}, fmt.Errorf("invalid SALARY_WORKERS: %w", err)
	}
	if cfg.Seed, err = strconv.ParseUint(getEnv("SALARY_SEED", "1"), 10, 64); err != nil {
		return SalaryConfig{}, fmt.Errorf("invalid SALARY_SEED: %w", err)
	}
	cfg.Timezone = getEnv("SALARY_TIMEZONE", "Asia/Colombo")

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Salary.Workers < 1 {
		return fmt.Errorf("SALARY_WORKERS must be at least 1")
	}
	if c.Salary.HalfDayThreshold > c.Salary.FullDayThreshold {
		return fmt.Errorf("SALARY_HALF_DAY_THRESHOLD must not exceed SALARY_FULL_DAY_THRESHOLD")
	}
	if _, err := time.LoadLocation(c.Salary.Timezone); err != nil {
		return fmt.Errorf("invalid SALARY_TIMEZONE: %w", err)
	}
	if c.Holiday.CalendarID != "" && c.Holiday.CredentialsFile == "" {
		return fmt.Errorf("HOLIDAY_CREDENTIALS_FILE is required when HOLIDAY_CALENDAR_ID is set")
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

// Location resolves the salary timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Salary.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
