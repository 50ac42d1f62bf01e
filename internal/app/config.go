package app

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"stock-data/internal/process"
	"stock-data/internal/quality"
)

// Config holds application configuration from env.
type Config struct {
	DataDir    string `validate:"required"`
	SaveFormat string `validate:"oneof=csv parquet json"`
	LogLevel   string `validate:"oneof=debug info warn warning error"`

	ExtremeMoveThreshold float64 `validate:"gt=0,lt=1"`
	LargeGapDays         int     `validate:"gte=1"`
	MAShortWindow        int     `validate:"gt=1"`
	MALongWindow         int     `validate:"gt=1,gtefield=MAShortWindow"`
	VolWindow            int     `validate:"gt=1"`
}

// LoadConfig reads config from environment. Unset or unparseable variables
// keep their defaults; a config that fails validation is an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DataDir:              getEnv("DATA_DIR", "data"),
		SaveFormat:           getSaveFormat(),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ExtremeMoveThreshold: getEnvFloat("EXTREME_MOVE_THRESHOLD", 0.10),
		LargeGapDays:         getEnvInt("LARGE_GAP_DAYS", 3),
		MAShortWindow:        getEnvInt("MA_SHORT_WINDOW", 5),
		MALongWindow:         getEnvInt("MA_LONG_WINDOW", 20),
		VolWindow:            getEnvInt("VOL_WINDOW", 20),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// QualityOptions maps the configured thresholds onto checker options.
func (c *Config) QualityOptions() quality.Options {
	return quality.Options{
		ExtremeMoveThreshold: c.ExtremeMoveThreshold,
		LargeGapDays:         c.LargeGapDays,
	}
}

// ProcessOptions maps the configured windows onto processor options.
func (c *Config) ProcessOptions() process.Options {
	return process.Options{
		MAShortWindow: c.MAShortWindow,
		MALongWindow:  c.MALongWindow,
		VolWindow:     c.VolWindow,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func getSaveFormat() string {
	if v := os.Getenv("SAVE_FORMAT"); v != "" {
		return v
	}
	switch os.Getenv("PROFILE") {
	case "dev", "development":
		return "csv"
	case "prod", "production", "":
		return "parquet"
	default:
		return "parquet"
	}
}
