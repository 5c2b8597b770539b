package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable the application
// reads, e.g. TASKAPI_SERVER_PORT maps to the server.port setting.
const envPrefix = "TASKAPI"

// Default values for optional settings.
const (
	defaultServerPort     = 8080
	defaultLogLevel       = "info"
	defaultDatabaseDriver = "sqlite"
	defaultDatabaseURL    = "tasks.db"
)

// Load reads configuration from environment variables.
// Every setting has a default, so the application starts without any
// environment configured. Returns a populated Config struct or an error
// if loading or validation fails.
func Load() (*Config, error) {
	// Initialize a new viper instance
	v := viper.New()

	// Set default values. Registering a default also registers the key,
	// which viper needs before AutomaticEnv can resolve it.
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("database.driver", defaultDatabaseDriver)
	v.SetDefault("database.url", defaultDatabaseURL)
	v.SetDefault("database.auto_migrate", true)

	// Configure to read from environment variables with the TASKAPI_ prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
