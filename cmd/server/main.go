// Package main implements the entry point for the task manager server,
// which serves the JSON task API and the embedded browser frontend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

// main is the entry point for the task manager server.
// It parses command line flags and either runs a migration command or
// initializes the full application and starts the HTTP server.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit (up, down, reset, status, version)")
	verbose := flag.Bool("verbose", false, "enable verbose migration logging")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd, *verbose); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
}

// run wires configuration, logging, and either the requested migration
// command or the full application. Keeping it separate from main leaves
// the exit path in one place.
func run(ctx context.Context, migrateCmd string, verbose bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, verbose)
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
