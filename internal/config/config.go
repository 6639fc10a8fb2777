package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	Slack        SlackConfig
	Storage      StorageConfig
	Cron         CronConfig
	Policy       PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// MongoConfig holds the call log document store settings.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the lock backend settings. An empty Addr selects the in-process locker.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port              int
	Env               string
	LogLevel          string
	AllowedOrigins    []string
	PrimaryAdminEmail string
	MaxAdmins         int
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Enabled reports whether Google login has been configured.
func (o OAuth2GoogleConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

type SMTPConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	From              string
	RecipientOverride string
}

type SlackConfig struct {
	BotToken     string
	InfoChannel  string
	ErrorChannel string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

type CronConfig struct {
	BreakSweepInterval time.Duration
}

// PolicyConfig carries the shift calendar and the attendance/leave thresholds.
type PolicyConfig struct {
	ShiftOffsetMinutes      int
	ShiftStartHour          int
	BreakHalfDay            time.Duration
	BreakAbsent             time.Duration
	LeaveMaxDaysPerRequest  int
	LeaveMaxRequestsPerYear int
	LeaveFallbackQuota      int
	EmployeeDefaultQuota    int
	ApprovedLeaveOnly       bool
}

// DefaultPolicy returns the organizational defaults.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		ShiftOffsetMinutes:      330,
		ShiftStartHour:          17,
		BreakHalfDay:            70 * time.Minute,
		BreakAbsent:             90 * time.Minute,
		LeaveMaxDaysPerRequest:  5,
		LeaveMaxRequestsPerYear: 4,
		LeaveFallbackQuota:      21,
		EmployeeDefaultQuota:    20,
		ApprovedLeaveOnly:       false,
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Info("no .env file found, using process environment")
	}

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
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DATABASE", "attendance"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	maxAdmins, err := strconv.Atoi(getEnv("MAX_ADMINS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_ADMINS: %w", err)
	}

	config.App = AppConfig{
		Port:              appPort,
		Env:               getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:    getEnvSlice("CORS_ALLOWED_ORIGINS"),
		PrimaryAdminEmail: getEnv("PRIMARY_ADMIN_EMAIL", ""),
		MaxAdmins:         maxAdmins,
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:              getEnv("SMTP_HOST", ""),
		Port:              smtpPort,
		Username:          getEnv("SMTP_USERNAME", ""),
		Password:          getEnv("SMTP_PASSWORD", ""),
		From:              getEnv("SMTP_FROM", "no-reply@localhost"),
		RecipientOverride: getEnv("REPORT_RECIPIENT_OVERRIDE", ""),
	}

	config.Slack = SlackConfig{
		BotToken:     getEnv("SLACK_BOT_TOKEN", ""),
		InfoChannel:  getEnv("SLACK_INFO_CHANNEL", ""),
		ErrorChannel: getEnv("SLACK_ERROR_CHANNEL", ""),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
	}

	sweep, err := time.ParseDuration(getEnv("BREAK_SWEEP_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_SWEEP_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{BreakSweepInterval: sweep}

	config.Policy, err = loadPolicy()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPolicy() (PolicyConfig, error) {
	p := DefaultPolicy()
	var err error

	if p.ShiftOffsetMinutes, err = getEnvInt("SHIFT_TZ_OFFSET_MINUTES", p.ShiftOffsetMinutes); err != nil {
		return p, err
	}
	if p.ShiftStartHour, err = getEnvInt("SHIFT_START_HOUR", p.ShiftStartHour); err != nil {
		return p, err
	}
	halfDay, err := getEnvInt("BREAK_HALF_DAY_MINUTES", int(p.BreakHalfDay/time.Minute))
	if err != nil {
		return p, err
	}
	absent, err := getEnvInt("BREAK_ABSENT_MINUTES", int(p.BreakAbsent/time.Minute))
	if err != nil {
		return p, err
	}
	p.BreakHalfDay = time.Duration(halfDay) * time.Minute
	p.BreakAbsent = time.Duration(absent) * time.Minute

	if p.LeaveMaxDaysPerRequest, err = getEnvInt("LEAVE_MAX_DAYS_PER_REQUEST", p.LeaveMaxDaysPerRequest); err != nil {
		return p, err
	}
	if p.LeaveMaxRequestsPerYear, err = getEnvInt("LEAVE_MAX_REQUESTS_PER_YEAR", p.LeaveMaxRequestsPerYear); err != nil {
		return p, err
	}
	if p.LeaveFallbackQuota, err = getEnvInt("LEAVE_FALLBACK_QUOTA", p.LeaveFallbackQuota); err != nil {
		return p, err
	}
	if p.EmployeeDefaultQuota, err = getEnvInt("EMPLOYEE_DEFAULT_LEAVE_QUOTA", p.EmployeeDefaultQuota); err != nil {
		return p, err
	}

	approvedOnly, err := strconv.ParseBool(getEnv("ATTENDANCE_APPROVED_LEAVE_ONLY", "false"))
	if err != nil {
		return p, fmt.Errorf("invalid ATTENDANCE_APPROVED_LEAVE_ONLY: %w", err)
	}
	p.ApprovedLeaveOnly = approvedOnly

	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Cron.BreakSweepInterval < 0 {
		return fmt.Errorf("BREAK_SWEEP_INTERVAL must not be negative")
	}
	return c.Policy.Validate()
}

// Validate checks that thresholds are positive and ordered.
func (p PolicyConfig) Validate() error {
	if p.BreakHalfDay <= 0 || p.BreakAbsent <= 0 {
		return fmt.Errorf("break thresholds must be positive")
	}
	if p.BreakHalfDay >= p.BreakAbsent {
		return fmt.Errorf("BREAK_HALF_DAY_MINUTES must be lower than BREAK_ABSENT_MINUTES")
	}
	if p.LeaveMaxDaysPerRequest <= 0 {
		return fmt.Errorf("LEAVE_MAX_DAYS_PER_REQUEST must be positive")
	}
	if p.LeaveMaxRequestsPerYear <= 0 {
		return fmt.Errorf("LEAVE_MAX_REQUESTS_PER_YEAR must be positive")
	}
	if p.ShiftStartHour < 0 || p.ShiftStartHour > 23 {
		return fmt.Errorf("SHIFT_START_HOUR must be between 0 and 23")
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

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
