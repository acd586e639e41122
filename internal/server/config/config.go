// Package config handles configuration for the server component: defaults,
// a JSON file overlay, KEYVAULT_* environment variables and command-line
// flags, applied in that order.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/keyvault/internal/flagx"
)

// Config holds runtime settings for the keyvault server.
type Config struct {
	ListenAddr      string
	DatabaseDriver  string // sqlite or postgres
	DatabaseDSN     string
	LogFile         string // empty disables the file copy
	LogLevel        string
	LogJSON         bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:keyvault.db?_txlock=immediate&_pragma=busy_timeout(5000)"
	c.LogFile = "keyvault.log"
	c.LogLevel = "info"
	c.LogJSON = false
	c.ReadTimeout = 10 * time.Second
	c.WriteTimeout = 10 * time.Second
	c.ShutdownTimeout = 15 * time.Second
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is empty")
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config in args, then the environment, then flags in args.
// args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
