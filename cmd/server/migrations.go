package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/taskmanager/api/internal/config"
	"github.com/taskmanager/api/internal/platform/sqlstore"
	"github.com/taskmanager/api/migrations"
)

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
// Note: Unlike the standard Fatalf behavior, this does NOT call os.Exit
// to allow main.go to handle application exit consistently
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
	// Deliberately NOT calling os.Exit(1) here
	// The error will be returned to main which will handle the exit
}

// configureGoose points goose at the embedded migration files for the given
// driver and returns the migration directory to run against.
func configureGoose(driver string) (string, error) {
	dialect, dir, err := migrations.ForDriver(driver)
	if err != nil {
		return "", err
	}

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}

	return dir, nil
}

// applyMigrations brings the schema up to date on an already open connection.
// It runs at startup when auto-migration is enabled.
func applyMigrations(db *sql.DB, driver string, logger *slog.Logger) error {
	dir, err := configureGoose(driver)
	if err != nil {
		return err
	}

	logger.Info("Applying pending migrations", "driver", driver)
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// handleMigrations executes the migration command given on the command line.
// It's called from main() when the migrate flag is set, opens its own
// database connection, and closes it when the command finishes.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, verbose bool) error {
	// Use a correlation ID for all migration logs to allow tracing the entire operation
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command),
		"verbose", verbose,
		"driver", cfg.Database.Driver,
		"url", maskDatabaseURL(cfg.Database.URL))

	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		migrationLogger.Error("Failed to open database connection", "error", err)
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
		migrationLogger.Info("Migration operation completed",
			"duration_ms", time.Since(startTime).Milliseconds())
	}()

	dir, err := configureGoose(cfg.Database.Driver)
	if err != nil {
		return err
	}
	goose.SetVerbose(verbose)

	switch command {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "reset":
		err = goose.Reset(db, dir)
	case "status":
		err = goose.Status(db, dir)
	case "version":
		err = goose.Version(db, dir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, or version)",
			command,
		)
	}

	if err != nil {
		migrationLogger.Error("Migration command failed",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	migrationLogger.Info("Migration command executed successfully")
	return nil
}
