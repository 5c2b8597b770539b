// Package config handles configuration loading, parsing, and validation
// from environment variables. It provides type-safe access to the settings
// the server and storage layers need while keeping configuration details
// separate from business logic.
package config
