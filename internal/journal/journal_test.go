package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardenlabs/bulwark/internal/selftest"
)

func sampleResult(runID string, startedAt time.Time, passed bool) selftest.Result {
	steps := []selftest.StepResult{
		{Name: "empty-pop", Status: selftest.StatusPassed},
		{Name: "push-pop-roundtrip", Status: selftest.StatusPassed},
	}
	if !passed {
		steps[1] = selftest.StepResult{
			Name:    "push-pop-roundtrip",
			Status:  selftest.StatusFailed,
			Message: "want 7, got 3",
		}
	}
	return selftest.Result{
		RunID:     runID,
		StartedAt: startedAt,
		Duration:  42 * time.Millisecond,
		Passed:    passed,
		Steps:     steps,
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "nested", "data")

	j, err := Open(dataDir)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(filepath.Join(dataDir, DBFileName))
	assert.NoError(t, err, "journal database must be created")
}

func TestRecordAndGet(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	startedAt := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	want := sampleResult("run-1", startedAt, false)
	require.NoError(t, j.Record(want))

	got, err := j.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, want.RunID, got.RunID)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.Passed, got.Passed)
	assert.Equal(t, want.Steps, got.Steps)
}

func TestGetUnknownRun(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	_, err = j.Get("no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListNewestFirst(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(sampleResult("run-old", base, true)))
	require.NoError(t, j.Record(sampleResult("run-mid", base.Add(time.Minute), false)))
	require.NoError(t, j.Record(sampleResult("run-new", base.Add(2*time.Minute), true)))

	results, err := j.List()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "run-new", results[0].RunID)
	assert.Equal(t, "run-mid", results[1].RunID)
	assert.Equal(t, "run-old", results[2].RunID)
	assert.Len(t, results[1].Steps, 2, "listed runs include their steps")
}

func TestListEmpty(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	results, err := j.List()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHistorySurvivesReopen(t *testing.T) {
	dataDir := t.TempDir()

	j, err := Open(dataDir)
	require.NoError(t, err)
	startedAt := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(sampleResult("run-1", startedAt, true)))
	require.NoError(t, j.Close())

	j, err = Open(dataDir)
	require.NoError(t, err)
	defer j.Close()

	got, err := j.Get("run-1")
	require.NoError(t, err)
	assert.True(t, got.Passed)
}

func TestClosedJournal(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, j.Close())
	require.NoError(t, j.Close(), "close is idempotent")

	err = j.Record(sampleResult("run-1", time.Now(), true))
	assert.ErrorIs(t, err, ErrJournalClosed)

	_, err = j.List()
	assert.ErrorIs(t, err, ErrJournalClosed)

	_, err = j.Get("run-1")
	assert.ErrorIs(t, err, ErrJournalClosed)
}

func TestRecordDuplicateRunID(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	result := sampleResult("run-1", time.Now().UTC(), true)
	require.NoError(t, j.Record(result))
	assert.Error(t, j.Record(result), "run IDs are unique")
}
