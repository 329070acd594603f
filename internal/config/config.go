package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Policy   PolicyConfig
	Holidays HolidayConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name               string
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
	SeedDemo           bool
}

// PolicyConfig holds the attendance and leave rules.
type PolicyConfig struct {
	OfficeLatitude       float64
	OfficeLongitude      float64
	OfficeRadiusMeters   float64
	HomeRadiusMeters     float64
	LateCutoff           string // HH:MM local
	Timezone             string
	SickLeaveYearlyQuota int
}

type NationalHoliday struct {
	Month time.Month
	Day   int
	Name  string
}

type HolidayConfig struct {
	National []NationalHoliday
}

type CronConfig struct {
	AutoCloseEnabled  bool
	AutoCloseTime     string // HH:MM local
	AutoCloseSchedule string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", DriverPostgres),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	seedDemo, err := strconv.ParseBool(getEnv("SEED_DEMO", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO: %w", err)
	}

	config.App = AppConfig{
		Name:               getEnv("APP_NAME", "attendance-cmlabs"),
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		SeedDemo:           seedDemo,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Policy configuration
	policy := PolicyConfig{
		LateCutoff: getEnv("LATE_CUTOFF", "09:35"),
		Timezone:   getEnv("TIMEZONE", "Asia/Kolkata"),
	}
	floats := []struct {
		key      string
		fallback string
		dst      *float64
	}{
		{"OFFICE_LATITUDE", "12.99695", &policy.OfficeLatitude},
		{"OFFICE_LONGITUDE", "77.66048", &policy.OfficeLongitude},
		{"OFFICE_RADIUS_METERS", "100", &policy.OfficeRadiusMeters},
		{"HOME_RADIUS_METERS", "200", &policy.HomeRadiusMeters},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(getEnv(f.key, f.fallback), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = v
	}
	policy.SickLeaveYearlyQuota, err = strconv.Atoi(getEnv("SICK_LEAVE_YEARLY_QUOTA", strconv.Itoa(leave.DefaultSickLeaveYearlyQuota)))
	if err != nil {
		return nil, fmt.Errorf("invalid SICK_LEAVE_YEARLY_QUOTA: %w", err)
	}
	config.Policy = policy

	// National holidays
	national, err := parseNationalHolidays(getEnv("HOLIDAY_NATIONAL", "01-26:Republic Day,08-15:Independence Day,10-02:Gandhi Jayanti"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_NATIONAL: %w", err)
	}
	config.Holidays = HolidayConfig{National: national}

	// Cron configuration
	autoClose, err := strconv.ParseBool(getEnv("AUTO_CLOSE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CLOSE_ENABLED: %w", err)
	}
	config.Cron = CronConfig{
		AutoCloseEnabled:  autoClose,
		AutoCloseTime:     getEnv("AUTO_CLOSE_TIME", "23:45"),
		AutoCloseSchedule: getEnv("AUTO_CLOSE_SCHEDULE", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be one of: %s, %s", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	if !geo.ValidCoordinate(c.Policy.OfficeLatitude, c.Policy.OfficeLongitude) {
		return fmt.Errorf("OFFICE_LATITUDE/OFFICE_LONGITUDE out of range")
	}
	if c.Policy.OfficeRadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must be positive")
	}
	if c.Policy.HomeRadiusMeters <= 0 {
		return fmt.Errorf("HOME_RADIUS_METERS must be positive")
	}
	if _, err := validator.ParseClock(c.Policy.LateCutoff); err != nil {
		return fmt.Errorf("LATE_CUTOFF: %w", err)
	}
	if _, err := time.LoadLocation(c.Policy.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	if c.Policy.SickLeaveYearlyQuota <= 0 {
		return fmt.Errorf("SICK_LEAVE_YEARLY_QUOTA must be positive")
	}
	if c.Cron.AutoCloseEnabled {
		if _, err := validator.ParseClock(c.Cron.AutoCloseTime); err != nil {
			return fmt.Errorf("AUTO_CLOSE_TIME: %w", err)
		}
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

// Location returns the configured business time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Policy.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AttendancePolicy converts the policy section into the engine's rules.
func (c *Config) AttendancePolicy() attendance.Policy {
	cutoff, err := validator.ParseClock(c.Policy.LateCutoff)
	if err != nil {
		cutoff = attendance.DefaultLateCutoffMinutes
	}
	return attendance.Policy{
		Office:            geo.Point{Latitude: c.Policy.OfficeLatitude, Longitude: c.Policy.OfficeLongitude},
		OfficeRadiusKm:    c.Policy.OfficeRadiusMeters / 1000,
		HomeRadiusKm:      c.Policy.HomeRadiusMeters / 1000,
		LateCutoffMinutes: cutoff,
		Location:          c.Location(),
	}
}

// AutoCloseMinutes is the local minute-of-day open punches close at,
// attendance.AutoCloseDisabled when the job is off.
func (c *Config) AutoCloseMinutes() int {
	if !c.Cron.AutoCloseEnabled {
		return attendance.AutoCloseDisabled
	}
	minutes, err := validator.ParseClock(c.Cron.AutoCloseTime)
	if err != nil {
		return attendance.AutoCloseDisabled
	}
	return minutes
}

// AutoCloseCron returns the job schedule, derived from AUTO_CLOSE_TIME unless set explicitly.
func (c *Config) AutoCloseCron() string {
	if c.Cron.AutoCloseSchedule != "" {
		return c.Cron.AutoCloseSchedule
	}
	minutes := c.AutoCloseMinutes()
	if minutes == attendance.AutoCloseDisabled {
		return ""
	}
	return fmt.Sprintf("%d %d * * *", minutes%60, minutes/60)
}

// SlogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// parseNationalHolidays parses "MM-DD:Name,MM-DD:Name".
func parseNationalHolidays(value string) ([]NationalHoliday, error) {
	var out []NationalHoliday
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		date, name, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("entry %q must be MM-DD:Name", entry)
		}
		t, err := time.Parse("01-02", strings.TrimSpace(date))
		if err != nil {
			return nil, fmt.Errorf("entry %q has an invalid date", entry)
		}
		out = append(out, NationalHoliday{Month: t.Month(), Day: t.Day(), Name: strings.TrimSpace(name)})
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
