package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
			JWTIssuer: "swipemeal",
		},
		Storage: StorageConfig{
			RootDir:       "./data/images",
			PublicBaseURL: "http://localhost:8080/images",
		},
		Household: HouseholdConfig{
			InviteTTL:       7 * 24 * time.Hour,
			CodeMaxAttempts: 20,
		},
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"empty storage root", func(c *Config) { c.Storage.RootDir = "" }},
		{"empty public base url", func(c *Config) { c.Storage.PublicBaseURL = "" }},
		{"zero invite ttl", func(c *Config) { c.Household.InviteTTL = 0 }},
		{"zero code attempts", func(c *Config) { c.Household.CodeMaxAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/db")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 7*24*time.Hour, cfg.Household.InviteTTL)
}
