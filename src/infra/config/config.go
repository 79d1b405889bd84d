// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=8080, APP_DB_POOL_SIZE=5
type Config struct {
	// Server configuration (embedded to flatten env vars)
	Server ServerConfig

	// Database configuration (embedded to flatten env vars)
	Database DatabaseConfig

	// Logging configuration (embedded to flatten env vars)
	Log LogConfig

	// Mail configuration for one-time login codes
	Mail MailConfig

	// API surface configuration
	API APIConfig

	// Auth configuration
	Auth AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds connection settings for the reporting database.
type DatabaseConfig struct {
	// Host is the database server (default: localhost)
	Host string `envconfig:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `envconfig:"DB_PORT" default:"5432"`

	// User is the database user (required)
	User string `envconfig:"DB_USER" required:"true"`

	// Password is the database password (required)
	Password string `envconfig:"DB_PASSWORD" required:"true"`

	// Name is the database name (required)
	Name string `envconfig:"DB_NAME" required:"true"`

	// SSLMode is the SSL mode for the connection (default: disable)
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	// PoolSize is the number of pooled connections, read once at startup (default: 5)
	PoolSize int `envconfig:"DB_POOL_SIZE" default:"5"`

	// AcquireTimeout is how long a request waits for a free connection (default: 2s)
	AcquireTimeout time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`

	// ConnectTimeout bounds opening a single connection (default: 5s)
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// MailConfig holds SMTP settings.
type MailConfig struct {
	// Host is the SMTP server (default: smtp.office365.com)
	Host string `envconfig:"SMTP_HOST" default:"smtp.office365.com"`

	// Port is the SMTP submission port (default: 587)
	Port int `envconfig:"SMTP_PORT" default:"587"`

	// SenderEmail is the From address and SMTP username
	SenderEmail string `envconfig:"SENDER_EMAIL"`

	// SenderPassword is the SMTP password
	SenderPassword string `envconfig:"SENDER_PASSWORD"`

	// Timeout bounds a single send (default: 15s)
	Timeout time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

// APIConfig holds settings for the public HTTP surface.
type APIConfig struct {
	// ProjectName is shown by the root endpoint
	ProjectName string `envconfig:"PROJECT_NAME" default:"Business Unit Reporting API"`

	// Prefix is prepended to every versioned route (default: /bu-rpt/v1)
	Prefix string `envconfig:"API_PREFIX" default:"/bu-rpt/v1"`

	// AllowedOrigins is a comma separated CORS allow list (default: *)
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// AuthConfig holds login code settings.
type AuthConfig struct {
	// LoginCodeExpiry is used in the email when the database does not report one (default: 60m)
	LoginCodeExpiry time.Duration `envconfig:"LOGIN_CODE_EXPIRY" default:"60m"`
}

// DSN returns the connection string for the reporting database.
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Mail); err != nil {
		return nil, fmt.Errorf("failed to load mail config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.API); err != nil {
		return nil, fmt.Errorf("failed to load api config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Auth); err != nil {
		return nil, fmt.Errorf("failed to load auth config: %w", err)
	}

	if cfg.Database.PoolSize < 1 {
		return nil, fmt.Errorf("APP_DB_POOL_SIZE must be at least 1, got %d", cfg.Database.PoolSize)
	}

	return &cfg, nil
}
