// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port            string  `mapstructure:"PORT"`
	Env             string  `mapstructure:"APP_ENV"`
	DBDriver        string  `mapstructure:"DB_DRIVER"`
	DBPath          string  `mapstructure:"DB_PATH"`
	DatabaseURL     string  `mapstructure:"DATABASE_URL"`
	DBHost          string  `mapstructure:"DB_HOST"`
	DBPort          string  `mapstructure:"DB_PORT"`
	DBUser          string  `mapstructure:"DB_USER"`
	DBPassword      string  `mapstructure:"DB_PASSWORD"`
	DBName          string  `mapstructure:"DB_NAME"`
	DBSSLMode       string  `mapstructure:"DB_SSLMODE"`
	RedisURL        string  `mapstructure:"REDIS_URL"`
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	SessionTTLHours int     `mapstructure:"SESSION_TTL_HOURS"`
	CookieSecure    bool    `mapstructure:"COOKIE_SECURE"`
	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from .env, config.yml and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Println("Config file not found; using environment variables and defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "bitki_takip.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "plantcare")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	e := strings.ToLower(strings.TrimSpace(c.Env))
	return e == "production" || e == "prod"
}

// SessionTTL is the idle lifetime of a login session.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if strings.EqualFold(c.DBDriver, "postgres") && c.DatabaseURL == "" &&
			(c.DBPassword == "password" || c.DBPassword == "") {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if !c.CookieSecure {
			log.Println("WARNING: COOKIE_SECURE is false in production. Session cookies will be sent over plain HTTP.")
		}
	} else if len(c.JWTSecret) < 32 {
		log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}
