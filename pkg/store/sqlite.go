package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // "sqlite3" driver (cgo)
	_ "modernc.org/sqlite"          // "sqlite" driver (pure Go)
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is the database/sql driver name: "sqlite" (modernc.org/sqlite)
	// or "sqlite3" (github.com/mattn/go-sqlite3, requires cgo).
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	BusyTimeout time.Duration

	// WALMode enables Write-Ahead Logging so watch mode and history queries
	// can run side by side.
	WALMode bool
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:      "sqlite",
		Path:        ".wdlint/history.db",
		BusyTimeout: 5 * time.Second,
		WALMode:     true,
	}
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database and its schema.
func NewSQLiteStore(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store.sqlite")

	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between
	// our own goroutines.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, config: config, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite store initialized",
		"driver", config.Driver,
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion, time.Now().UnixNano()); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Save stores a run and its findings in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "begin", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, path, mode, started_at, duration_ns, errors, warnings, notes, failed_rules)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.Mode, run.StartedAt.UnixNano(), int64(run.Duration),
		run.Errors, run.Warnings, run.Notes, strings.Join(run.FailedRules, ","),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	for i, f := range run.Findings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, seq, rule, severity, message, line, col, fix)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, f.Rule, f.Severity, f.Message, f.Line, f.Column, f.Fix,
		)
		if err != nil {
			return NewStorageError("sqlite", "save_finding", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}
	return nil
}

const runColumns = `id, path, mode, started_at, duration_ns, errors, warnings, notes, failed_rules`

// Get returns a run with its findings.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT rule, severity, message, line, col, fix
		FROM findings WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, NewStorageError("sqlite", "get_findings", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.Rule, &f.Severity, &f.Message, &f.Line, &f.Column, &f.Fix); err != nil {
			return nil, NewStorageError("sqlite", "scan_finding", err)
		}
		run.Findings = append(run.Findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "get_findings", err)
	}
	return run, nil
}

// List returns runs matching query, newest first.
func (s *SQLiteStore) List(ctx context.Context, query Query) ([]*Run, error) {
	var (
		where []string
		args  []any
	)
	if query.Path != "" {
		where = append(where, "path = ?")
		args = append(args, query.Path)
	}
	if query.Since != nil {
		where = append(where, "started_at >= ?")
		args = append(args, query.Since.UnixNano())
	}

	stmt := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY started_at DESC, id DESC"
	if query.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	return runs, nil
}

// Count returns the number of stored runs.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// DeleteBefore deletes runs started before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteWhere(ctx, "delete_before",
		`SELECT id FROM runs WHERE started_at < ?`, cutoff.UnixNano())
}

// DeleteOldest deletes the n oldest runs.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	return s.deleteWhere(ctx, "delete_oldest",
		`SELECT id FROM runs ORDER BY started_at ASC, id ASC LIMIT ?`, n)
}

// deleteWhere removes the runs selected by idQuery together with their findings.
func (s *SQLiteStore) deleteWhere(ctx context.Context, op, idQuery string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE run_id IN (`+idQuery+`)`, args...); err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id IN (`+idQuery+`)`, args...)
	if err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		startedAt   int64
		durationNs  int64
		failedRules string
	)
	err := row.Scan(&run.ID, &run.Path, &run.Mode, &startedAt, &durationNs,
		&run.Errors, &run.Warnings, &run.Notes, &failedRules)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.Unix(0, startedAt)
	run.Duration = time.Duration(durationNs)
	if failedRules != "" {
		run.FailedRules = strings.Split(failedRules, ",")
	}
	return &run, nil
}
