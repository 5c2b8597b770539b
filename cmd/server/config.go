package main

import (
	"fmt"

	"log/slog"

	"github.com/taskmanager/api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log basic configuration details after successful loading
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Log additional configuration details at debug level
	slog.Debug("Database configuration",
		"driver", cfg.Database.Driver,
		"auto_migrate", cfg.Database.AutoMigrate)

	return cfg, nil
}
