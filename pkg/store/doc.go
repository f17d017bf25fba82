// Package store records lint run history.
//
// A Run captures one lint pass over one file: counts per severity, the rules
// that failed, and every finding flattened to a line and column. Runs are kept
// in SQLite (either the pure Go modernc.org/sqlite driver or the cgo
// github.com/mattn/go-sqlite3 driver) or in memory when history is disabled.
//
// Pruner applies the retention settings from the store configuration and
// Scheduler runs it on a cron schedule while watch mode is active.
package store
