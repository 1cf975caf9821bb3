package onboarding

import (
	"context"
	"fmt"
)

// SagaStep is one remote write in the finalize sequence
type SagaStep struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepError reports which finalize step failed. Earlier steps have
// already been committed remotely and are not rolled back.
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("onboarding finalize step %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Saga runs the finalize steps in fixed order. It is deliberately not
// transactional: the first error stops the run and committed steps
// stay committed. Callers persist the completed count so a re-run can
// resume from the first uncommitted step.
type Saga struct {
	steps []SagaStep

	// OnCommit, when set, is called after each step commits with the
	// number of steps completed so far. Used to persist resume
	// progress.
	OnCommit func(completed int)
}

// NewSaga creates a finalize saga over the given steps
func NewSaga(steps []SagaStep) *Saga {
	return &Saga{steps: steps}
}

// Len returns the number of steps
func (s *Saga) Len() int {
	return len(s.steps)
}

// Run executes steps[startAt:] in order. It returns the total number
// of committed steps (including the skipped prefix) and, on failure,
// a *StepError naming the step that failed.
func (s *Saga) Run(ctx context.Context, startAt int) (int, error) {
	if startAt < 0 {
		startAt = 0
	}
	completed := startAt

	for i := startAt; i < len(s.steps); i++ {
		step := s.steps[i]
		if err := step.Run(ctx); err != nil {
			return completed, &StepError{Index: i, Name: step.Name, Err: err}
		}
		completed = i + 1
		if s.OnCommit != nil {
			s.OnCommit(completed)
		}
	}

	return completed, nil
}
