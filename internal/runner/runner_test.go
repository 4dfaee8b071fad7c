package runner

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/enrich"
)

type stubTask struct {
	name   string
	report enrich.Report
	err    error
	calls  *[]string
}

func (s stubTask) Name() string { return s.name }

func (s stubTask) Run(ctx context.Context, env *enrich.Env) (enrich.Report, error) {
	*s.calls = append(*s.calls, s.name)
	return s.report, s.err
}

func newTestRunner() *Runner {
	return New(&enrich.Env{Log: zap.NewNop()}, zap.NewNop())
}

func TestRunTasksOrderAndAggregation(t *testing.T) {
	var calls []string
	r := newTestRunner()

	status := r.RunTasks(context.Background(), []enrich.Task{
		stubTask{name: "a", report: enrich.Report{Applied: 2}, calls: &calls},
		stubTask{name: "b", report: enrich.Report{Failed: 1}, calls: &calls},
		stubTask{name: "c", report: enrich.Report{}, calls: &calls},
	})

	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("calls = %v, want configured order", calls)
	}
	if status != StatusDegraded {
		t.Fatalf("status = %v, want degraded (worst wins)", status)
	}
}

func TestRunTasksFailureDoesNotStopSequence(t *testing.T) {
	var calls []string
	r := newTestRunner()

	status := r.RunTasks(context.Background(), []enrich.Task{
		stubTask{name: "a", err: fmt.Errorf("boom"), calls: &calls},
		stubTask{name: "b", calls: &calls},
	})

	if len(calls) != 2 {
		t.Fatalf("a failing task must not stop the run, calls = %v", calls)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
}

func TestRunUnknownTask(t *testing.T) {
	r := newTestRunner()
	if status := r.Run(context.Background(), []string{"does-not-exist"}); status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
}

func TestRunCanceledContext(t *testing.T) {
	var calls []string
	r := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := r.RunTasks(ctx, []enrich.Task{stubTask{name: "a", calls: &calls}})
	if len(calls) != 0 {
		t.Fatalf("canceled run must not execute tasks, calls = %v", calls)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
}

func TestStatusString(t *testing.T) {
	if StatusOK.String() != "ok" || StatusDegraded.String() != "degraded" || StatusFailed.String() != "failed" {
		t.Fatalf("unexpected status strings")
	}
}
