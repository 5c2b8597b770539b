package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Add other server settings as needed (e.g., timeouts)
}

// DatabaseConfig contains all database-related configuration settings.
// URL holds a PostgreSQL connection string or a SQLite file path,
// depending on the configured driver. AutoMigrate applies pending
// migrations during startup.
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL         string `mapstructure:"url" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}
