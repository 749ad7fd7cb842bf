package selftest

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteRunAllPass(t *testing.T) {
	s := New()
	s.Add(Step{Name: "first", Run: func() error { return nil }})
	s.Add(Step{Name: "second", Run: func() error { return nil }})

	result := s.Run()

	assert.True(t, result.Passed)
	assert.NoError(t, result.Err())
	require.Len(t, result.Steps, 2)
	for _, step := range result.Steps {
		assert.Equal(t, StatusPassed, step.Status)
		assert.Empty(t, step.Message)
	}
}

func TestSuiteRunShortCircuitsOnFailure(t *testing.T) {
	ran := []string{}
	s := New()
	s.Add(Step{Name: "passes", Run: func() error {
		ran = append(ran, "passes")
		return nil
	}})
	s.Add(Step{Name: "fails", Run: func() error {
		ran = append(ran, "fails")
		return errors.New("expected error status not returned")
	}})
	s.Add(Step{Name: "never-runs", Run: func() error {
		ran = append(ran, "never-runs")
		return nil
	}})

	result := s.Run()

	assert.False(t, result.Passed)
	assert.ErrorIs(t, result.Err(), ErrSuiteFailed)
	assert.Equal(t, []string{"passes", "fails"}, ran, "steps after the failure must not execute")

	require.Len(t, result.Steps, 3)
	assert.Equal(t, StatusPassed, result.Steps[0].Status)
	assert.Equal(t, StatusFailed, result.Steps[1].Status)
	assert.Equal(t, "expected error status not returned", result.Steps[1].Message)
	assert.Equal(t, StatusSkipped, result.Steps[2].Status)
	assert.Empty(t, result.Steps[2].Message)
}

func TestSuiteRunEmptyPasses(t *testing.T) {
	result := New().Run()
	assert.True(t, result.Passed)
	assert.Empty(t, result.Steps)
}

func TestSuiteRunGeneratesUUIDv7RunID(t *testing.T) {
	result := New().Run()

	parsed, err := uuid.Parse(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSuiteRunIDsAreUnique(t *testing.T) {
	s := New()
	first := s.Run()
	second := s.Run()
	assert.NotEqual(t, first.RunID, second.RunID)
}
