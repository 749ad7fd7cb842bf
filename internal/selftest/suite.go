// Package selftest implements the compiled-in regression suite for the
// defensive stack. A suite is a linear sequence of named steps; the first
// failing step short-circuits the run and the remaining steps are marked
// skipped.
package selftest

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSuiteFailed is returned by Result.Err when any step failed.
var ErrSuiteFailed = errors.New("self-test suite failed")

// Step is one regression case. Run returns nil on pass; any error is the
// step's failure diagnostic.
type Step struct {
	Name string
	Run  func() error
}

// StepStatus is the outcome of a single step.
type StepStatus string

// Step outcomes.
const (
	StatusPassed  StepStatus = "passed"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one step. Message is the failure
// diagnostic and is empty unless Status is StatusFailed.
type StepResult struct {
	Name    string     `json:"name"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}

// Result records one complete run of a suite.
type Result struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Passed    bool          `json:"passed"`
	Steps     []StepResult  `json:"steps"`
}

// Err returns nil when the run passed and ErrSuiteFailed otherwise.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return ErrSuiteFailed
}

// Suite is an ordered list of steps executed front to back.
type Suite struct {
	steps []Step
}

// New creates an empty suite.
func New() *Suite {
	return &Suite{}
}

// Add appends a step to the end of the suite.
func (s *Suite) Add(step Step) {
	s.steps = append(s.steps, step)
}

// Len returns the number of registered steps.
func (s *Suite) Len() int {
	return len(s.steps)
}

// Run executes the steps in order. The first failure stops execution; steps
// after it are recorded as skipped. A run over zero steps passes.
func (s *Suite) Run() Result {
	result := Result{
		RunID:     newRunID(),
		StartedAt: time.Now(),
		Passed:    true,
		Steps:     make([]StepResult, 0, len(s.steps)),
	}

	failed := false
	for _, step := range s.steps {
		if failed {
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusSkipped})
			continue
		}
		if err := step.Run(); err != nil {
			result.Steps = append(result.Steps, StepResult{
				Name:    step.Name,
				Status:  StatusFailed,
				Message: err.Error(),
			})
			failed = true
			continue
		}
		result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusPassed})
	}

	result.Passed = !failed
	result.Duration = time.Since(result.StartedAt)
	return result
}

// newRunID generates a UUID v7 run identifier, falling back to v4 if the
// system clock refuses to cooperate.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
