// Package journal persists self-test runs in a SQLite database under the
// data directory, giving the CLI a durable history of regression results.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hardenlabs/bulwark/internal/selftest"
)

// DBFileName is the journal database file created under the data directory.
const DBFileName = "bulwark.db"

// timeLayout is RFC3339 with a fixed-width nanosecond fraction so that
// lexicographic ordering of stored timestamps matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal errors.
var (
	ErrJournalClosed = errors.New("journal is closed")
	ErrRunNotFound   = errors.New("run not found")
)

// Journal records and retrieves self-test results. Safe for concurrent use.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates the data directory and journal database if needed, applies
// the schema, and returns a ready Journal.
func Open(dataDir string) (*Journal, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Journal{db: db}, nil
}

// Close releases the database. Idempotent: repeated calls succeed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Record persists a run and its step outcomes in one transaction.
func (j *Journal) Record(result selftest.Result) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrJournalClosed
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, started_at, duration_ns, passed) VALUES (?, ?, ?, ?)`,
		result.RunID,
		result.StartedAt.UTC().Format(timeLayout),
		int64(result.Duration),
		boolToInt(result.Passed),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, step := range result.Steps {
		_, err = tx.Exec(
			`INSERT INTO run_steps (run_id, ordinal, name, status, message) VALUES (?, ?, ?, ?, ?)`,
			result.RunID, i, step.Name, string(step.Status), step.Message,
		)
		if err != nil {
			return fmt.Errorf("insert step %q: %w", step.Name, err)
		}
	}

	return tx.Commit()
}

// List returns all recorded runs with their steps, newest first.
func (j *Journal) List() ([]selftest.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, ErrJournalClosed
	}

	rows, err := j.db.Query(
		`SELECT run_id, started_at, duration_ns, passed FROM runs ORDER BY started_at DESC, run_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var results []selftest.Result
	for rows.Next() {
		result, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range results {
		steps, err := j.loadSteps(results[i].RunID)
		if err != nil {
			return nil, err
		}
		results[i].Steps = steps
	}
	return results, nil
}

// Get returns one recorded run with its steps.
// Returns ErrRunNotFound if no run has the given ID.
func (j *Journal) Get(runID string) (selftest.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return selftest.Result{}, ErrJournalClosed
	}

	row := j.db.QueryRow(
		`SELECT run_id, started_at, duration_ns, passed FROM runs WHERE run_id = ?`, runID,
	)
	result, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return selftest.Result{}, ErrRunNotFound
	}
	if err != nil {
		return selftest.Result{}, err
	}

	steps, err := j.loadSteps(runID)
	if err != nil {
		return selftest.Result{}, err
	}
	result.Steps = steps
	return result, nil
}

// loadSteps returns the step outcomes for a run in execution order.
// Caller holds j.mu.
func (j *Journal) loadSteps(runID string) ([]selftest.StepResult, error) {
	rows, err := j.db.Query(
		`SELECT name, status, message FROM run_steps WHERE run_id = ? ORDER BY ordinal`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []selftest.StepResult
	for rows.Next() {
		var step selftest.StepResult
		var status string
		if err := rows.Scan(&step.Name, &status, &step.Message); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.Status = selftest.StepStatus(status)
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row into a Result without its steps.
func scanRun(row rowScanner) (selftest.Result, error) {
	var (
		result     selftest.Result
		startedAt  string
		durationNS int64
		passed     int
	)
	if err := row.Scan(&result.RunID, &startedAt, &durationNS, &passed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return selftest.Result{}, err
		}
		return selftest.Result{}, fmt.Errorf("scan run: %w", err)
	}

	ts, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return selftest.Result{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	result.StartedAt = ts
	result.Duration = time.Duration(durationNS)
	result.Passed = passed != 0
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
