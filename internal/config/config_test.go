package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:      "5000",
		Env:       "development",
		DBDriver:  "sqlite",
		JWTSecret: "secure-secret-at-least-32-chars-long",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Development defaults", func(*Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Postgres driver", func(c *Config) { c.DBDriver = "postgres" }, false},
		{"Production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"Production short secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"Production postgres weak password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"Production postgres strong password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "a-much-better-password"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SessionTTL(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 24*time.Hour, c.SessionTTL())

	c.SessionTTLHours = 2
	assert.Equal(t, 2*time.Hour, c.SessionTTL())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, ":memory:", c.DBPath)
	assert.False(t, c.IsProduction())
}
