// Package server wires configuration, storage, the vault service and the
// HTTP server together and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/keyvault/internal/logging"
	"github.com/dmitrijs2005/keyvault/internal/server/config"
	"github.com/dmitrijs2005/keyvault/internal/server/httpapi"
	"github.com/dmitrijs2005/keyvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/keyvault/internal/server/services"
	"github.com/google/uuid"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	logCloser io.Closer
	db        *sql.DB
	server    *httpapi.Server
}

// NewApp opens the database, applies migrations and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	base, closer, err := logging.New(logging.Options{Level: c.LogLevel, JSON: c.LogJSON, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := base.With("instance", uuid.NewString())

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		closer.Close()
		return nil, err
	}

	db, err := repomanager.Open(ctx, rm, c.DatabaseDSN)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		closer.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	svc := services.NewVaultService(db, rm, logger)
	srv := httpapi.NewServer(httpapi.ServerConfig{
		ListenAddr:   c.ListenAddr,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}, httpapi.NewHandler(svc, logger), logger)

	return &App{config: c, logger: logger, logCloser: closer, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// listener fails, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting app",
		"database_driver", app.config.DatabaseDriver, "listen_addr", app.config.ListenAddr)

	errc, err := app.server.RunInBackground()
	if err != nil {
		app.close()
		return fmt.Errorf("listen: %w", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info(context.Background(), "shutdown requested")
	case runErr = <-errc:
		app.logger.Error(context.Background(), "HTTP server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}

	app.close()
	return runErr
}

func (app *App) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database failed", "error", err)
	}
	app.logger.Info(context.Background(), "stopped")
	_ = app.logCloser.Close()
}

// Main is the process entry point used by cmd/server.
func Main(ctx context.Context, args []string) int {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	app, err := NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		return 1
	}
	return 0
}
