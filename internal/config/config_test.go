package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("IsProduction only for production environment", func(t *testing.T) {
		assert.True(t, (&Config{Environment: "production"}).IsProduction())
		assert.False(t, (&Config{Environment: "development"}).IsProduction())
		assert.False(t, (&Config{Environment: ""}).IsProduction())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":                 os.Getenv("PORT"),
		"DATABASE_URL":         os.Getenv("DATABASE_URL"),
		"REDIS_URL":            os.Getenv("REDIS_URL"),
		"ENVIRONMENT":          os.Getenv("ENVIRONMENT"),
		"ADMIN_PASSWORD_HASH":  os.Getenv("ADMIN_PASSWORD_HASH"),
		"ADMIN_SESSION_SECRET": os.Getenv("ADMIN_SESSION_SECRET"),
		"LOG_LEVEL":            os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ADMIN_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
		os.Unsetenv("PORT")
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("fails without admin session secret", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("ADMIN_SESSION_SECRET")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without database url", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ADMIN_SESSION_SECRET", "0123456789abcdef0123456789abcdef")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DatabaseURL:        "postgres://localhost/test",
			RedisURL:           "rediss://localhost:6379",
			AdminPasswordHash:  "$2b$12$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
			AdminSessionSecret: "0123456789abcdef0123456789abcdef",
		}
	}

	t.Run("accepts bcrypt password hash", func(t *testing.T) {
		cfg := base()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects plaintext admin password", func(t *testing.T) {
		cfg := base()
		cfg.AdminPasswordHash = "plaintext-password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects short session secret in production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.AdminSessionSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects known weak secret in production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.AdminSessionSecret = "change-me"
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires admin password hash in production", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		cfg.AdminPasswordHash = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret allowed outside production", func(t *testing.T) {
		cfg := base()
		cfg.AdminSessionSecret = "dev-only"
		assert.NoError(t, cfg.Validate())
	})
}
