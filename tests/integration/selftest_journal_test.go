// Integration tests covering the full self-test lifecycle: run the default
// regression suite, record the result in the journal, and read it back.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardenlabs/bulwark/internal/journal"
	"github.com/hardenlabs/bulwark/internal/selftest"
)

func TestRunRecordAndRetrieve(t *testing.T) {
	dataDir := t.TempDir()

	result := selftest.DefaultSuite(selftest.Config{}).Run()
	require.True(t, result.Passed, "default suite must pass: %+v", result.Steps)

	j, err := journal.Open(dataDir)
	require.NoError(t, err)
	require.NoError(t, j.Record(result))
	require.NoError(t, j.Close())

	// A fresh journal over the same directory sees the run.
	j, err = journal.Open(dataDir)
	require.NoError(t, err)
	defer j.Close()

	got, err := j.Get(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, got.RunID)
	assert.True(t, got.Passed)
	require.Len(t, got.Steps, len(result.Steps))
	for i, step := range got.Steps {
		assert.Equal(t, result.Steps[i].Name, step.Name)
		assert.Equal(t, selftest.StatusPassed, step.Status)
	}
}

func TestFailedRunIsRecordedWithDiagnostics(t *testing.T) {
	dataDir := t.TempDir()

	// A suite with a deliberately broken step after one passing step.
	suite := selftest.New()
	suite.Add(selftest.Step{Name: "passes", Run: func() error { return nil }})
	suite.Add(selftest.Step{Name: "breaks", Run: func() error {
		return assert.AnError
	}})
	suite.Add(selftest.Step{Name: "skipped", Run: func() error { return nil }})

	result := suite.Run()
	require.False(t, result.Passed)
	require.ErrorIs(t, result.Err(), selftest.ErrSuiteFailed)

	j, err := journal.Open(dataDir)
	require.NoError(t, err)
	defer j.Close()
	require.NoError(t, j.Record(result))

	got, err := j.Get(result.RunID)
	require.NoError(t, err)
	assert.False(t, got.Passed)
	require.Len(t, got.Steps, 3)
	assert.Equal(t, selftest.StatusPassed, got.Steps[0].Status)
	assert.Equal(t, selftest.StatusFailed, got.Steps[1].Status)
	assert.NotEmpty(t, got.Steps[1].Message)
	assert.Equal(t, selftest.StatusSkipped, got.Steps[2].Status)
}

func TestRepeatedRunsAccumulateHistory(t *testing.T) {
	dataDir := t.TempDir()

	j, err := journal.Open(dataDir)
	require.NoError(t, err)
	defer j.Close()

	var runIDs []string
	for i := 0; i < 3; i++ {
		result := selftest.DefaultSuite(selftest.Config{Capacity: 8}).Run()
		require.True(t, result.Passed)
		require.NoError(t, j.Record(result))
		runIDs = append(runIDs, result.RunID)
	}

	results, err := j.List()
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Newest first: the last recorded run leads the list.
	assert.Equal(t, runIDs[2], results[0].RunID)
	assert.Equal(t, runIDs[0], results[2].RunID)
}
