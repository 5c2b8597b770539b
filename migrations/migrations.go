// Package migrations embeds the goose migration files for every supported
// database dialect. Each dialect keeps its own directory because the
// engines differ in autoincrement syntax and column types.
package migrations

import (
	"embed"
	"fmt"
)

// FS holds the embedded migration files, one directory per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// ForDriver returns the goose dialect name and the embedded migration
// directory for the given database driver.
func ForDriver(driver string) (dialect, dir string, err error) {
	switch driver {
	case "postgres":
		return "postgres", "postgres", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for database driver %q", driver)
	}
}
