package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "libris-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "session", cfg.Cookie.Name)
	assert.Equal(t, "lax", cfg.Cookie.SameSite)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiration)
	assert.Equal(t, 5*time.Second, cfg.Ratings.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires session secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires long secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Session.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("production with full config passes", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Session.Secret = strings.Repeat("s", 32)
		cfg.Database.Password = "pw"
		cfg.Database.SSLMode = "require"
		cfg.Cookie.Secure = true
		cfg.Ratings.APIKey = "key"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.local",
			Port:     5432,
			User:     "libris",
			Password: "p@ss word",
			DBName:   "libris",
			SSLMode:  "require",
		}
		dsn := d.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.local:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss word")
	})

	t.Run("sqlite", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", Path: "/tmp/libris.db"}
		assert.Equal(t, "/tmp/libris.db", d.DSN())
	})
}
