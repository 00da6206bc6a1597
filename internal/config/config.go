// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
)

// Config captures everything cmd/api needs to start.
type Config struct {
	Addr            string        `validate:"required"`
	MirrorBaseURL   string        `validate:"required,url"`
	CatalogSource   string        `validate:"oneof=seed postgres"`
	DatabaseDSN     string        `validate:"required_if=CatalogSource postgres"`
	DBTimeout       time.Duration `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	RateLimitRPS    float64       `validate:"gt=0"`
	RateLimitBurst  int           `validate:"gt=0"`
	AllowedOrigins  []string
	EnableHSTS      bool
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the env files and builds a validated Config.
func Load() (Config, error) {
	LoadEnvFiles()
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Addr:           getEnv("APP_ADDR", ":5000"),
		MirrorBaseURL:  getEnv("MIRROR_BASE_URL", "http://localhost:5000"),
		CatalogSource:  getEnv("CATALOG_SOURCE", SourceSeed),
		DatabaseDSN:    os.Getenv("DB_DSN"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:     os.Getenv("ENABLE_HSTS") == "true",
	}

	var err error
	if cfg.DBTimeout, err = durationEnv("DB_TIMEOUT", 2*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitRPS, err = floatEnv("RATE_LIMIT_RPS", 20); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", 40); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
