package journal

// Schema DDL for the run journal. Applied on every Open; IF NOT EXISTS keeps
// existing history intact.
const (
	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    duration_ns INTEGER NOT NULL,
    passed INTEGER NOT NULL
);`

	createRunSteps = `CREATE TABLE IF NOT EXISTS run_steps (
    run_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    status TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, ordinal),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);`
)

// schemaStatements lists the DDL applied by Open, in order.
var schemaStatements = []string{
	createRuns,
	createRunSteps,
}
