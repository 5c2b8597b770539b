// Package sqlstore provides database/sql implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// A single implementation serves both PostgreSQL (through the pgx driver)
// and SQLite (through modernc.org/sqlite), so queries stay within the
// syntax both engines accept and timestamps are stored as Unix
// milliseconds rather than engine-specific time types.
package sqlstore
