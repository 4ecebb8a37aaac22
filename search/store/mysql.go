package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store[S].
//
// Use it when several solver processes should share one run history.
//
// Schema:
//   - search_runs: one row per finished search, states stored as JSON
//
// Type parameter S is the state type (must be JSON-serializable).
type MySQLStore[S any] struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore creates a new MySQL-backed store.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
//
// Security Warning:
//
//	NEVER hardcode credentials in your source code. Pass the DSN through
//	the environment or the CLI config file.
//
// Example:
//
//	history, err := store.NewMySQLStore[puzzle.Board]("user:pass@tcp(localhost:3306)/search")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer history.Close()
func NewMySQLStore[S any](dsn string) (*MySQLStore[S], error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	store := &MySQLStore[S]{db: db}

	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (m *MySQLStore[S]) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(64) NOT NULL,
			algorithm VARCHAR(32) NOT NULL,
			found BOOLEAN NOT NULL,
			start_state JSON NOT NULL,
			goal_state JSON NOT NULL,
			path JSON NOT NULL,
			cost DOUBLE NOT NULL,
			expanded INT NOT NULL,
			generated INT NOT NULL,
			reopened INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at_ms BIGINT NOT NULL,
			UNIQUE KEY unique_run_id (run_id),
			INDEX idx_algorithm (algorithm)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`

	if _, err := m.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}
	return nil
}

func (m *MySQLStore[S]) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// SaveRun inserts or replaces a run (implements Store interface).
func (m *MySQLStore[S]) SaveRun(ctx context.Context, run Run[S]) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	row, err := encodeRun(run)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			algorithm = VALUES(algorithm),
			found = VALUES(found),
			start_state = VALUES(start_state),
			goal_state = VALUES(goal_state),
			path = VALUES(path),
			cost = VALUES(cost),
			expanded = VALUES(expanded),
			generated = VALUES(generated),
			reopened = VALUES(reopened),
			duration_ms = VALUES(duration_ms),
			created_at_ms = VALUES(created_at_ms)
	`
	_, err = m.db.ExecContext(ctx, query,
		run.ID, run.Algorithm, run.Found, row.start, row.goal, row.path, run.Cost,
		run.Expanded, run.Generated, run.Reopened, run.DurationMS, row.createdMS)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun retrieves a run by ID (implements Store interface).
func (m *MySQLStore[S]) LoadRun(ctx context.Context, id string) (Run[S], error) {
	if err := m.checkOpen(); err != nil {
		return Run[S]{}, err
	}

	query := `SELECT ` + runColumns + ` FROM search_runs WHERE run_id = ?`
	run, err := scanRun[S](m.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run[S]{}, ErrNotFound
	}
	if err != nil {
		return Run[S]{}, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first (implements Store interface).
func (m *MySQLStore[S]) ListRuns(ctx context.Context, limit int) ([]Run[S], error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	query := `SELECT ` + runColumns + ` FROM search_runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
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
func (m *MySQLStore[S]) DeleteRun(ctx context.Context, id string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	res, err := m.db.ExecContext(ctx, `DELETE FROM search_runs WHERE run_id = ?`, id)
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

// Close closes the database connection pool.
//
// Calling Close multiple times is safe.
func (m *MySQLStore[S]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	return m.db.Close()
}

// Ping verifies the database connection is alive.
func (m *MySQLStore[S]) Ping(ctx context.Context) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	return m.db.PingContext(ctx)
}

// Stats returns database connection pool statistics.
func (m *MySQLStore[S]) Stats() sql.DBStats {
	return m.db.Stats()
}
