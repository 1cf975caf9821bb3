package onboarding

import (
	"context"
	"errors"
	"testing"
)

func recordingStep(name string, log *[]string, fail error) SagaStep {
	return SagaStep{
		Name: name,
		Run: func(ctx context.Context) error {
			if fail != nil {
				return fail
			}
			*log = append(*log, name)
			return nil
		},
	}
}

func TestSaga_RunsStepsInOrder(t *testing.T) {
	var log []string
	saga := NewSaga([]SagaStep{
		recordingStep("update_client", &log, nil),
		recordingStep("insert_business_info", &log, nil),
		recordingStep("insert_assistant_config", &log, nil),
		recordingStep("insert_subscription", &log, nil),
		recordingStep("upsert_widget_config", &log, nil),
	})

	completed, err := saga.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if completed != 5 {
		t.Fatalf("completed = %d, want 5", completed)
	}

	want := []string{
		"update_client",
		"insert_business_info",
		"insert_assistant_config",
		"insert_subscription",
		"upsert_widget_config",
	}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("step %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestSaga_SecondStepFailureCommitsExactlyOne(t *testing.T) {
	var log []string
	boom := errors.New("backend unavailable")
	saga := NewSaga([]SagaStep{
		recordingStep("update_client", &log, nil),
		recordingStep("insert_business_info", &log, boom),
		recordingStep("insert_assistant_config", &log, nil),
	})

	completed, err := saga.Run(context.Background(), 0)
	if completed != 1 {
		t.Fatalf("completed = %d, want 1", completed)
	}
	if len(log) != 1 || log[0] != "update_client" {
		t.Fatalf("committed steps = %v, want only update_client", log)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if stepErr.Index != 1 || stepErr.Name != "insert_business_info" {
		t.Fatalf("failed step = %d %q, want 1 insert_business_info", stepErr.Index, stepErr.Name)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSaga_ResumeSkipsCommittedSteps(t *testing.T) {
	var log []string
	saga := NewSaga([]SagaStep{
		recordingStep("update_client", &log, nil),
		recordingStep("insert_business_info", &log, nil),
		recordingStep("insert_assistant_config", &log, nil),
	})

	completed, err := saga.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("resume run: %v", err)
	}
	if completed != 3 {
		t.Fatalf("completed = %d, want 3", completed)
	}
	if len(log) != 1 || log[0] != "insert_assistant_config" {
		t.Fatalf("resumed run executed %v, want only insert_assistant_config", log)
	}
}

func TestSaga_OnCommitReportsProgress(t *testing.T) {
	var log []string
	var progress []int
	saga := NewSaga([]SagaStep{
		recordingStep("a", &log, nil),
		recordingStep("b", &log, nil),
	})
	saga.OnCommit = func(completed int) {
		progress = append(progress, completed)
	}

	if _, err := saga.Run(context.Background(), 0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(progress) != 2 || progress[0] != 1 || progress[1] != 2 {
		t.Fatalf("progress = %v, want [1 2]", progress)
	}
}
