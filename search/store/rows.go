package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// runRow is the column layout shared by the SQL-backed stores.
type runRow struct {
	start, goal, path string
	createdMS         int64
}

const runColumns = `run_id, algorithm, found, start_state, goal_state, path, cost,
	expanded, generated, reopened, duration_ms, created_at_ms`

func encodeRun[S any](run Run[S]) (runRow, error) {
	start, err := json.Marshal(run.Start)
	if err != nil {
		return runRow{}, fmt.Errorf("failed to marshal start state: %w", err)
	}
	goal, err := json.Marshal(run.Goal)
	if err != nil {
		return runRow{}, fmt.Errorf("failed to marshal goal state: %w", err)
	}
	path := run.Path
	if path == nil {
		path = []S{}
	}
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return runRow{}, fmt.Errorf("failed to marshal path: %w", err)
	}

	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return runRow{
		start:     string(start),
		goal:      string(goal),
		path:      string(pathJSON),
		createdMS: created.UnixMilli(),
	}, nil
}

func scanRun[S any](sc rowScanner) (Run[S], error) {
	var (
		run Run[S]
		row runRow
	)
	err := sc.Scan(&run.ID, &run.Algorithm, &run.Found, &row.start, &row.goal, &row.path,
		&run.Cost, &run.Expanded, &run.Generated, &run.Reopened, &run.DurationMS, &row.createdMS)
	if err != nil {
		return Run[S]{}, err
	}

	if err := json.Unmarshal([]byte(row.start), &run.Start); err != nil {
		return Run[S]{}, fmt.Errorf("failed to unmarshal start state: %w", err)
	}
	if err := json.Unmarshal([]byte(row.goal), &run.Goal); err != nil {
		return Run[S]{}, fmt.Errorf("failed to unmarshal goal state: %w", err)
	}
	if err := json.Unmarshal([]byte(row.path), &run.Path); err != nil {
		return Run[S]{}, fmt.Errorf("failed to unmarshal path: %w", err)
	}
	if len(run.Path) == 0 {
		run.Path = nil
	}
	run.CreatedAt = time.UnixMilli(row.createdMS).UTC()
	return run, nil
}
