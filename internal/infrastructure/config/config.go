// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL
	PostgresURI string

	// Redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	// Gmail delivery
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	ReportSender      string
	ReportRecipient   string

	// Pipeline
	ProcessMode     string
	PriceLimit      int
	StartWeekdays   []int
	EndWeekdays     []int
	MinTripHours    int
	MaxStartHour    int
	MinTripDays     int
	MaxTripDays     int
	WindowStartDate string
	WindowEndDate   string
	TimetablesDir   string

	// Scheduling
	ProcessScheduleAt string
	RunOnStart        bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightdeals"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		ReportCacheTTL: time.Duration(getEnvAsInt("REPORT_CACHE_TTL", 86400)) * time.Second,

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		ReportSender:      getEnv("REPORT_SENDER", ""),
		ReportRecipient:   getEnv("REPORT_RECIPIENT", ""),

		ProcessMode:     getEnv("PROCESS_MODE", "duration"),
		PriceLimit:      getEnvAsInt("PRICE_LIMIT", 500),
		StartWeekdays:   getEnvAsIntSlice("START_WEEKDAYS", []int{4, 5}),
		EndWeekdays:     getEnvAsIntSlice("END_WEEKDAYS", []int{6, 0, 1}),
		MinTripHours:    getEnvAsInt("MIN_TRIP_HOURS", 10),
		MaxStartHour:    getEnvAsInt("MAX_START_HOUR", 11),
		MinTripDays:     getEnvAsInt("MIN_TRIP_DAYS", 4),
		MaxTripDays:     getEnvAsInt("MAX_TRIP_DAYS", 8),
		WindowStartDate: getEnv("WINDOW_START_DATE", ""),
		WindowEndDate:   getEnv("WINDOW_END_DATE", ""),
		TimetablesDir:   getEnv("TIMETABLES_DIR", "timetables"),

		ProcessScheduleAt: getEnv("PROCESS_SCHEDULE_AT", "06:00"),
		RunOnStart:        getEnvAsBool("RUN_ON_START", true),
	}

	return config, nil
}

// EmailConfigured reports whether report delivery by email can be wired up
func (c *Config) EmailConfigured() bool {
	return c.GmailClientID != "" && c.GmailClientSecret != "" &&
		c.GmailRefreshToken != "" && c.ReportRecipient != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsIntSlice parses comma separated integers, e.g. "4,5"
func getEnvAsIntSlice(key string, defaultValue []int) []int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		values = append(values, value)
	}
	return values
}
