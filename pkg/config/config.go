package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS       CORSConfig
	Log        LogConfig
	Storage    StorageConfig
	Enrollment EnrollmentConfig
	Attendance AttendanceConfig
	Metrics    MetricsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig points at the directory holding the CSV tables.
type StorageConfig struct {
	DataDir string
}

// EnrollmentConfig controls cohort allocation.
type EnrollmentConfig struct {
	CohortCapacity int
	ProgramLength  time.Duration
	DefaultCity    string
}

// AttendanceConfig holds the promotion thresholds applied when a sheet is saved.
type AttendanceConfig struct {
	FailAbsenceLimit         int
	CompletePresenceTarget   int
	CompleteAbsenceAllowance int
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Storage = StorageConfig{DataDir: v.GetString("DATA_DIR")}

	capacity := v.GetInt("COHORT_CAPACITY")
	if capacity <= 0 {
		capacity = 20
	}
	cfg.Enrollment = EnrollmentConfig{
		CohortCapacity: capacity,
		ProgramLength:  parseDuration(v.GetString("PROGRAM_LENGTH"), 8*7*24*time.Hour),
		DefaultCity:    v.GetString("DEFAULT_CITY"),
	}

	cfg.Attendance = AttendanceConfig{
		FailAbsenceLimit:         v.GetInt("FAIL_ABSENCE_LIMIT"),
		CompletePresenceTarget:   v.GetInt("COMPLETE_PRESENCE_TARGET"),
		CompleteAbsenceAllowance: v.GetInt("COMPLETE_ABSENCE_ALLOWANCE"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATA_DIR", "./data")

	v.SetDefault("COHORT_CAPACITY", 20)
	v.SetDefault("PROGRAM_LENGTH", "1344h")
	v.SetDefault("DEFAULT_CITY", "Guarujá/SP")

	v.SetDefault("FAIL_ABSENCE_LIMIT", 3)
	v.SetDefault("COMPLETE_PRESENCE_TARGET", 16)
	v.SetDefault("COMPLETE_ABSENCE_ALLOWANCE", 2)

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
