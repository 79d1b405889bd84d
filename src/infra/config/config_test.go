package config

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_DB_USER", "reporter")
	t.Setenv("APP_DB_PASSWORD", "secret")
	t.Setenv("APP_DB_NAME", "bu_reporting")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Database.PoolSize)
	assert.Equal(t, 2*time.Second, cfg.Database.AcquireTimeout)
	assert.Equal(t, "/bu-rpt/v1", cfg.API.Prefix)
	assert.Equal(t, []string{"*"}, cfg.API.AllowedOrigins)
	assert.Equal(t, "smtp.office365.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 60*time.Minute, cfg.Auth.LoginCodeExpiry)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_DB_POOL_SIZE", "12")
	t.Setenv("APP_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Database.PoolSize)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.API.AllowedOrigins)
}

func TestLoadMissingDatabaseCredentials(t *testing.T) {
	for _, k := range []string{"APP_DB_USER", "APP_DB_PASSWORD", "APP_DB_NAME"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsEmptyPool(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_DB_POOL_SIZE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_DB_POOL_SIZE")
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5432, User: "u", Password: "p", Name: "rpt", SSLMode: "require",
	}
	assert.Equal(t, "postgres://u:p@db.internal:5432/rpt?sslmode=require", c.DSN())
}

func TestDSNEscapesCredentials(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5432, User: "rpt@ops", Password: "p@ss:w/rd?#", Name: "rpt", SSLMode: "disable",
	}

	u, err := url.Parse(c.DSN())
	require.NoError(t, err)

	pass, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "rpt@ops", u.User.Username())
	assert.Equal(t, "p@ss:w/rd?#", pass)
	assert.Equal(t, "db.internal:5432", u.Host)
	assert.Equal(t, "/rpt", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}
