package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-driver", "postgres", "-d", "db",
				"-log-file", "kv.log", "-log-level", "debug", "-log-json",
				"-read-timeout", "1s", "-write-timeout", "2s", "-shutdown-timeout", "3s",
			},
			want: func(c *Config) {
				c.ListenAddr = "127.0.0.1:9090"
				c.DatabaseDriver = "postgres"
				c.DatabaseDSN = "db"
				c.LogFile = "kv.log"
				c.LogLevel = "debug"
				c.LogJSON = true
				c.ReadTimeout = time.Second
				c.WriteTimeout = 2 * time.Second
				c.ShutdownTimeout = 3 * time.Second
			},
		},
		{
			name: "config flag ignored",
			args: []string{"-c", "cfg.json", "-a", ":1"},
			want: func(c *Config) { c.ListenAddr = ":1" },
		},
		{
			name:    "bad duration",
			args:    []string{"-read-timeout", "later"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.want(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}
