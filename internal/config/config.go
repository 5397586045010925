package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port               string        `mapstructure:"PORT"`
	Env                string        `mapstructure:"ENV"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	DatabaseDriver     string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN        string        `mapstructure:"DATABASE_DSN"`
	DBMaxOpenConns     int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns     int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime  time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	JWTExpiry          time.Duration `mapstructure:"JWT_EXPIRY"`
	CORSOrigins        string        `mapstructure:"CORS_ORIGINS"`
	AuthRateLimitRPS   float64       `mapstructure:"AUTH_RATE_LIMIT_RPS"`
	AuthRateLimitBurst int           `mapstructure:"AUTH_RATE_LIMIT_BURST"`
	AutoMigrate        bool          `mapstructure:"AUTO_MIGRATE"`
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"DATABASE_DRIVER":       "mysql",
	"DATABASE_DSN":          "root:password@tcp(127.0.0.1:3306)/healthsync?parseTime=true",
	"DB_MAX_OPEN_CONNS":     25,
	"DB_MAX_IDLE_CONNS":     5,
	"DB_CONN_MAX_LIFETIME":  "5m",
	"JWT_SECRET":            devJWTSecret,
	"JWT_EXPIRY":            "90m",
	"CORS_ORIGINS":          "http://localhost:3000",
	"AUTH_RATE_LIMIT_RPS":   5,
	"AUTH_RATE_LIMIT_BURST": 10,
	"AUTO_MIGRATE":          true,
}

// Load reads a .env file when present, then the environment, and validates
// the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		// Unmarshal only sees keys viper knows about.
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that the server cannot run with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be mysql or sqlite, got %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production environment"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	if c.AuthRateLimitRPS <= 0 || c.AuthRateLimitBurst <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT_RPS and AUTH_RATE_LIMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// IsProduction returns true when the server is configured for production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins returns the configured CORS origins.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
