package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/metrics"
)

// Outcome classifies how a record ended within a task.
type Outcome string

const (
	// OutcomeApplied means a value was written to the board.
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped means the column already held the derived value, or
	// the task's fill-once rule left an existing value in place.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNone means no signal was derived and nothing was written.
	OutcomeNone Outcome = "none"
)

// ApplyUpdate writes value into the record's column unless the column
// already renders to the same text. The comparison trims whitespace and
// ignores case, which makes reruns no-ops for every value shape.
func ApplyUpdate(ctx context.Context, env *Env, task string, rec board.Record, col board.Column, value board.Value) (Outcome, error) {
	if err := board.CheckKind(col, value); err != nil {
		return OutcomeNone, fmt.Errorf("apply %s: %w", task, err)
	}

	current := strings.TrimSpace(rec.Text(col.ID))
	want := strings.TrimSpace(value.Render())
	if current != "" && strings.EqualFold(current, want) {
		metrics.ObserveBoardWrite(task, "skipped")
		return OutcomeSkipped, nil
	}

	if err := env.Board.WriteColumnValue(ctx, env.BoardID, rec.ID, col.ID, value); err != nil {
		metrics.ObserveBoardWrite(task, "error")
		return OutcomeNone, fmt.Errorf("apply %s: %w", task, err)
	}
	metrics.ObserveBoardWrite(task, "ok")
	return OutcomeApplied, nil
}
