package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store[S].
//
// It keeps run history in a single-file database, which suits the puzzle
// CLI: solve a few boards, then list them with the history command.
//
// Features:
//   - Single file database (e.g., "./runs.db")
//   - Auto-migration on first use
//   - WAL mode for concurrent reads
//
// Schema:
//   - search_runs: one row per finished search, states stored as JSON text
//
// Type parameter S is the state type (must be JSON-serializable).
type SQLiteStore[S any] struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteStore creates a new SQLite-backed store.
//
// The path parameter specifies the database file location:
//   - "./runs.db" - file in current directory
//   - ":memory:" - in-memory database (data lost on close)
//
// Example:
//
//	history, err := store.NewSQLiteStore[puzzle.Board]("./runs.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer history.Close()
func NewSQLiteStore[S any](path string) (*SQLiteStore[S], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite supports one writer at a time
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout (wait up to 5 seconds for locks)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	store := &SQLiteStore[S]{
		db:   db,
		path: path,
	}

	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore[S]) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			algorithm TEXT NOT NULL,
			found INTEGER NOT NULL,
			start_state TEXT NOT NULL,
			goal_state TEXT NOT NULL,
			path TEXT NOT NULL,
			cost REAL NOT NULL,
			expanded INTEGER NOT NULL,
			generated INTEGER NOT NULL,
			reopened INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at_ms INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON search_runs(algorithm)"); err != nil {
		return fmt.Errorf("failed to create idx_runs_algorithm: %w", err)
	}

	return nil
}

func (s *SQLiteStore[S]) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// SaveRun inserts or replaces a run (implements Store interface).
func (s *SQLiteStore[S]) SaveRun(ctx context.Context, run Run[S]) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	row, err := encodeRun(run)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			algorithm = excluded.algorithm,
			found = excluded.found,
			start_state = excluded.start_state,
			goal_state = excluded.goal_state,
			path = excluded.path,
			cost = excluded.cost,
			expanded = excluded.expanded,
			generated = excluded.generated,
			reopened = excluded.reopened,
			duration_ms = excluded.duration_ms,
			created_at_ms = excluded.created_at_ms
	`
	_, err = s.db.ExecContext(ctx, query,
		run.ID, run.Algorithm, run.Found, row.start, row.goal, row.path, run.Cost,
		run.Expanded, run.Generated, run.Reopened, run.DurationMS, row.createdMS)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun retrieves a run by ID (implements Store interface).
func (s *SQLiteStore[S]) LoadRun(ctx context.Context, id string) (Run[S], error) {
	if err := s.checkOpen(); err != nil {
		return Run[S]{}, err
	}

	query := `SELECT ` + runColumns + ` FROM search_runs WHERE run_id = ?`
	run, err := scanRun[S](s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run[S]{}, ErrNotFound
	}
	if err != nil {
		return Run[S]{}, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first (implements Store interface).
func (s *SQLiteStore[S]) ListRuns(ctx context.Context, limit int) ([]Run[S], error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := `SELECT ` + runColumns + ` FROM search_runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []Run[S]{}
	for rows.Next() {
		run, err := scanRun[S](rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run (implements Store interface).
func (s *SQLiteStore[S]) DeleteRun(ctx context.Context, id string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM search_runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
//
// After Close, all operations return ErrClosed.
// Calling Close multiple times is safe.
func (s *SQLiteStore[S]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore[S]) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

// Path returns the database file path.
func (s *SQLiteStore[S]) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}
