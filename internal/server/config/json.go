package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keyvault/internal/timex"
)

// jsonConfig is the on-disk shape of the config file. Absent fields leave
// the current value untouched, hence the pointers.
type jsonConfig struct {
	ListenAddr      *string         `json:"listen_addr"`
	DatabaseDriver  *string         `json:"database_driver"`
	DatabaseDSN     *string         `json:"database_dsn"`
	LogFile         *string         `json:"log_file"`
	LogLevel        *string         `json:"log_level"`
	LogJSON         *bool           `json:"log_json"`
	ReadTimeout     *timex.Duration `json:"read_timeout"`
	WriteTimeout    *timex.Duration `json:"write_timeout"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var c jsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.ListenAddr, c.ListenAddr)
	setString(&cfg.DatabaseDriver, c.DatabaseDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.LogFile, c.LogFile)
	setString(&cfg.LogLevel, c.LogLevel)
	if c.LogJSON != nil {
		cfg.LogJSON = *c.LogJSON
	}
	if c.ReadTimeout != nil {
		cfg.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.WriteTimeout != nil {
		cfg.WriteTimeout = c.WriteTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
