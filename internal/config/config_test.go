package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 5.0, cfg.AuthRateLimitRPS)
	assert.Equal(t, 10, cfg.AuthRateLimitBurst)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file:healthsync.db")
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:healthsync.db", cfg.DatabaseDSN)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be set")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabaseDriver:     "sqlite",
		DatabaseDSN:        ":memory:",
		JWTSecret:          "s",
		JWTExpiry:          time.Minute,
		AuthRateLimitRPS:   1,
		AuthRateLimitBurst: 1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "postgres" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero expiry", func(c *Config) { c.JWTExpiry = 0 }},
		{"zero burst", func(c *Config) { c.AuthRateLimitBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
