package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8000", c.ListenAddr)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Contains(t, c.DatabaseDSN, "_txlock=immediate")
	assert.Equal(t, "keyvault.log", c.LogFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
	assert.Equal(t, 10*time.Second, c.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.WriteTimeout)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_NoSources(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"listen_addr":  ":9000",
		"log_level":    "debug",
		"database_dsn": "file:json.db",
	})
	t.Setenv("KEYVAULT_LOG_LEVEL", "warn")
	t.Setenv("KEYVAULT_DATABASE_DSN", "file:env.db")

	c, err := LoadConfig([]string{"-c", path, "-d", "file:flag.db"})
	require.NoError(t, err)

	want := defaults()
	want.ListenAddr = ":9000"
	want.LogLevel = "warn"
	want.DatabaseDSN = "file:flag.db"
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig([]string{"-driver", "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = LoadConfig([]string{"-c", "/does/not/exist.json"})
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.DatabaseDSN = ""
	assert.Error(t, c.Validate())

	c = defaults()
	c.ListenAddr = ""
	assert.Error(t, c.Validate())

	c = defaults()
	c.DatabaseDriver = "postgres"
	assert.NoError(t, c.Validate())
}
