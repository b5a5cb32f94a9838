// Package config loads process configuration from DRYING_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"drying-engine/pkg/database"
)

// Prefix is prepended to every environment variable name
const Prefix = "DRYING"

// Catalog sources
const (
	CatalogReference = "reference"
	CatalogFile      = "file"
	CatalogPostgres  = "postgres"
)

// Config is the process configuration for the server and the migrate command
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Engine   EngineConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// DatabaseConfig holds Postgres settings, used when the catalog lives in a table
type DatabaseConfig struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"5432"`
	User            string        `envconfig:"USER" default:"drying"`
	Password        string        `envconfig:"PASSWORD" default:""`
	Database        string        `envconfig:"NAME" default:"drying"`
	SSLMode         string        `envconfig:"SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
}

// EngineConfig says where the engine constants and the catalog come from
type EngineConfig struct {
	ConfigFile    string `envconfig:"CONFIG_FILE" default:""`
	CatalogSource string `envconfig:"CATALOG_SOURCE" default:"reference"`
	CatalogFile   string `envconfig:"CATALOG_FILE" default:""`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.Engine.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.Engine.CatalogSource))
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}

	switch c.Engine.CatalogSource {
	case CatalogReference:
	case CatalogFile:
		if c.Engine.CatalogFile == "" {
			return fmt.Errorf("catalog source %q requires %s_ENGINE_CATALOG_FILE", CatalogFile, Prefix)
		}
	case CatalogPostgres:
		if c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("catalog source %q requires database host and name", CatalogPostgres)
		}
	default:
		return fmt.Errorf("unknown catalog source %q, expected reference, file or postgres", c.Engine.CatalogSource)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	return nil
}

// NeedsDatabase reports whether the configured catalog source reads Postgres
func (c *Config) NeedsDatabase() bool {
	return c.Engine.CatalogSource == CatalogPostgres
}

// PostgresConfig converts the database section for pkg/database
func (c *Config) PostgresConfig() *database.Config {
	return &database.Config{
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		Database:        c.Database.Database,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
	}
}
