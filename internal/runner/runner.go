// Package runner executes enrichment tasks in sequence and aggregates
// their outcomes.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/enrich"
	"github.com/fieldops/prospector/internal/metrics"
)

// Status summarizes a whole run. The worst task status wins.
type Status int

const (
	// StatusOK means every task completed and every write succeeded.
	StatusOK Status = iota
	// StatusDegraded means tasks completed but some records failed.
	StatusDegraded
	// StatusFailed means at least one task could not run at all.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// Runner drives task execution against a shared environment.
type Runner struct {
	env *enrich.Env
	log *zap.Logger
}

// New creates a Runner. The logger is the parent; each task logs under its
// own name.
func New(env *enrich.Env, log *zap.Logger) *Runner {
	return &Runner{env: env, log: log.Named("runner")}
}

// Run resolves names (empty means the default order) and executes them.
func (r *Runner) Run(ctx context.Context, names []string) Status {
	tasks, err := enrich.Select(names)
	if err != nil {
		r.log.Error("task selection failed", zap.Error(err))
		return StatusFailed
	}
	return r.RunTasks(ctx, tasks)
}

// RunScoped runs tasks against a single record, as triggered by a webhook
// event for that record.
func (r *Runner) RunScoped(ctx context.Context, names []string, recordID string) Status {
	env := *r.env
	env.Cfg.Run.RecordScope = recordID
	scoped := &Runner{env: &env, log: r.log}
	return scoped.Run(ctx, names)
}

// RunTasks executes the given tasks in order. Task failures do not stop the
// sequence; the aggregate status reflects the worst outcome.
func (r *Runner) RunTasks(ctx context.Context, tasks []enrich.Task) Status {
	worst := StatusOK
	for _, task := range tasks {
		if ctx.Err() != nil {
			r.log.Warn("run canceled", zap.Error(ctx.Err()))
			if worst < StatusFailed {
				worst = StatusFailed
			}
			break
		}

		log := r.log.Named(task.Name())
		env := *r.env
		env.Log = log

		start := time.Now()
		rep, err := task.Run(ctx, &env)
		elapsed := time.Since(start)

		status := StatusOK
		switch {
		case err != nil:
			status = StatusFailed
			log.Error("task failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		case rep.Failed > 0:
			status = StatusDegraded
			log.Warn("task completed with record failures",
				zap.String("report", rep.String()), zap.Duration("elapsed", elapsed))
		default:
			log.Info("task completed",
				zap.String("report", rep.String()), zap.Duration("elapsed", elapsed))
		}

		metrics.ObserveTaskRun(task.Name(), status.String(), elapsed)
		if status > worst {
			worst = status
		}
	}
	return worst
}
