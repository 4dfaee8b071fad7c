package enrich

import (
	"context"
	"testing"

	"github.com/fieldops/prospector/internal/board"
)

func TestApplyUpdateIdempotent(t *testing.T) {
	col := board.Column{ID: "txt", Title: "Service Guarantees", Type: board.KindText}
	fb := &fakeBoard{}
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	rec := board.Record{ID: "1", Values: []board.ColumnValue{{ID: "txt", Type: board.KindText, Text: "  lifetime WARRANTY  "}}}
	out, err := ApplyUpdate(context.Background(), env, "t", rec, col, board.TextValue{Text: "Lifetime Warranty"})
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if out != OutcomeSkipped {
		t.Fatalf("outcome = %q, want skipped for equivalent value", out)
	}
	if len(fb.writes) != 0 {
		t.Fatalf("no write expected, got %v", fb.writes)
	}
}

func TestApplyUpdateWritesChangedValue(t *testing.T) {
	col := board.Column{ID: "txt", Title: "Service Guarantees", Type: board.KindText}
	fb := &fakeBoard{}
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	rec := board.Record{ID: "1", Values: []board.ColumnValue{{ID: "txt", Type: board.KindText, Text: "old"}}}
	out, err := ApplyUpdate(context.Background(), env, "t", rec, col, board.TextValue{Text: "new value"})
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if out != OutcomeApplied {
		t.Fatalf("outcome = %q, want applied", out)
	}
	if len(fb.writes) != 1 || fb.writes[0].rendered != "new value" {
		t.Fatalf("writes = %v", fb.writes)
	}
}

func TestApplyUpdateEmptyColumnWrites(t *testing.T) {
	col := board.Column{ID: "n", Title: "Followers Count", Type: board.KindNumeric}
	fb := &fakeBoard{}
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	out, err := ApplyUpdate(context.Background(), env, "t", board.Record{ID: "1"}, col, board.NumberValue{N: 0})
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if out != OutcomeApplied {
		t.Fatalf("an empty column must be written even for zero, got %q", out)
	}
}

func TestApplyUpdateKindMismatch(t *testing.T) {
	col := board.Column{ID: "n", Title: "Followers Count", Type: board.KindNumeric}
	env := newTestEnv(&fakeBoard{}, &fakeFetcher{}, nil)

	if _, err := ApplyUpdate(context.Background(), env, "t", board.Record{ID: "1"}, col, board.TextValue{Text: "x"}); err == nil {
		t.Fatalf("expected kind mismatch error")
	}
}

func TestApplyUpdateWriteFailure(t *testing.T) {
	col := board.Column{ID: "txt", Title: "Service Guarantees", Type: board.KindText}
	fb := &fakeBoard{failWrite: true}
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	out, err := ApplyUpdate(context.Background(), env, "t", board.Record{ID: "1"}, col, board.TextValue{Text: "x"})
	if err == nil {
		t.Fatalf("expected write error")
	}
	if out != OutcomeNone {
		t.Fatalf("outcome = %q, want none on failure", out)
	}
}
