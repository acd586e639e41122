package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "KEYVAULT_"

func getenv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return v, ok && v != ""
}

func getbool(key string, dst *bool) error {
	if v, ok := getenv(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s%s: %w", envPrefix, key, err)
		}
		*dst = b
	}
	return nil
}

func getdur(key string, dst *time.Duration) error {
	if v, ok := getenv(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration for %s%s: %w", envPrefix, key, err)
		}
		*dst = d
	}
	return nil
}

// parseEnv overlays KEYVAULT_* variables. A .env file, if any, is expected
// to have been loaded into the process environment by the caller.
func parseEnv(cfg *Config) error {
	strs := map[string]*string{
		"LISTEN_ADDR":     &cfg.ListenAddr,
		"DATABASE_DRIVER": &cfg.DatabaseDriver,
		"DATABASE_DSN":    &cfg.DatabaseDSN,
		"LOG_FILE":        &cfg.LogFile,
		"LOG_LEVEL":       &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := getenv(key); ok {
			*dst = v
		}
	}

	if err := getbool("LOG_JSON", &cfg.LogJSON); err != nil {
		return err
	}
	if err := getdur("READ_TIMEOUT", &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := getdur("WRITE_TIMEOUT", &cfg.WriteTimeout); err != nil {
		return err
	}
	return getdur("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
}
