// Package config loads poco configuration from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported database drivers. Both quote identifiers as [name] and bind
// @name placeholders.
const (
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

// Config is the top-level configuration.
type Config struct {
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
}

// Database selects the driver and the data source.
type Database struct {
	Driver       string `yaml:"driver" env:"POCO_DB_DRIVER"`
	DSN          string `yaml:"dsn" env:"POCO_DB_DSN"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"POCO_DB_MAX_OPEN_CONNS"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level" env:"POCO_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"POCO_LOG_PRETTY"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database: Database{
			Driver: DriverSQLite,
			DSN:    "poco.db",
		},
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := LoadFromEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// Validate checks the driver and the data source.
func (d Database) Validate() error {
	switch d.Driver {
	case DriverSQLite, DriverSQLServer:
	case "":
		return errors.New("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q", d.Driver)
	}

	if d.DSN == "" {
		return errors.New("database dsn is required")
	}

	if d.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must not be negative, got %d", d.MaxOpenConns)
	}

	return nil
}
