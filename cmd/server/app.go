package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskmanager/api/internal/config"
	"github.com/taskmanager/api/internal/platform/sqlstore"
	"github.com/taskmanager/api/internal/service"
	"github.com/taskmanager/api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Service interfaces
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It establishes the database connection, applies pending
// migrations when auto-migration is enabled, and wires the store and
// service layers together.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(db, cfg.Database.Driver, logger); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	// Initialize stores
	app.taskStore = sqlstore.NewSQLTaskStore(db, logger)

	// Create required adapters and initialize the task service
	taskRepoAdapter := service.NewTaskRepositoryAdapter(app.taskStore, app.db)
	app.taskService, err = service.NewTaskService(taskRepoAdapter, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
