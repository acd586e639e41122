package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/keyvault/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string     listen address (e.g. ":8000")
//	-driver       database driver, sqlite or postgres
//	-d string     database DSN
//	-log-file     log file path, "" to disable
//	-log-level    debug, info, warn or error
//	-log-json     emit JSON log records
//	-read-timeout, -write-timeout, -shutdown-timeout  durations ("10s")
//
// Unknown flags (such as -c) are filtered out before parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-driver", "-d", "-log-file", "-log-level", "-log-json",
		"-read-timeout", "-write-timeout", "-shutdown-timeout",
	})

	fs := flag.NewFlagSet("keyvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "JSON log output")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	return fs.Parse(args)
}
