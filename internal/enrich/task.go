// Package enrich implements the enrichment tasks that derive board
// attributes from scraped sites and write them back.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/metrics"
	"github.com/fieldops/prospector/internal/site"
)

// BoardAPI is the board surface tasks depend on.
type BoardAPI interface {
	FetchBoard(ctx context.Context, boardID string) (board.Board, error)
	FetchAllRecords(ctx context.Context, boardID string) ([]board.Record, error)
	WriteColumnValue(ctx context.Context, boardID, recordID, columnID string, value board.Value) error
}

// PageGetter fetches pages without JavaScript.
type PageGetter interface {
	GetHTML(ctx context.Context, rawURL string) string
	GetText(ctx context.Context, rawURL string) string
}

// PageRenderer fetches pages through headless Chrome.
type PageRenderer interface {
	RenderHTML(ctx context.Context, rawURL string) (string, error)
}

// Env bundles the shared dependencies every task runs against.
type Env struct {
	Board    BoardAPI
	BoardID  string
	Fetcher  PageGetter
	Renderer PageRenderer
	Cfg      config.Config
	Log      *zap.Logger
}

// Task is one enrichment pass over the board.
type Task interface {
	Name() string
	Run(ctx context.Context, env *Env) (Report, error)
}

// Report summarizes one task run. Failed counts record-local write
// failures; a non-nil Run error means the task could not start at all.
type Report struct {
	Processed int
	Applied   int
	Skipped   int
	Failed    int
}

func (r Report) String() string {
	return fmt.Sprintf("processed=%d applied=%d skipped=%d failed=%d",
		r.Processed, r.Applied, r.Skipped, r.Failed)
}

// renderHTML falls back to the plain fetcher when rendering is disabled or
// fails, so headless-only environments degrade instead of erroring.
func (e *Env) renderHTML(ctx context.Context, rawURL string) string {
	if e.Renderer != nil {
		if html, err := e.Renderer.RenderHTML(ctx, rawURL); err == nil && html != "" {
			return html
		}
	}
	return e.Fetcher.GetHTML(ctx, rawURL)
}

// ForEachRecord drives the per-record loop: scope filtering, politeness
// delay, metrics, and non-fatal error handling. fn reports how the record
// ended; errors are logged and counted but never stop the batch.
func (e *Env) ForEachRecord(ctx context.Context, task string, records []board.Record, fn func(ctx context.Context, rec board.Record) (Outcome, error)) Report {
	var rep Report
	scope := strings.TrimSpace(e.Cfg.Run.RecordScope)
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		if scope != "" && rec.ID != scope {
			continue
		}
		rep.Processed++
		metrics.ObserveRecord()

		outcome, err := fn(ctx, rec)
		switch {
		case err != nil:
			rep.Failed++
			e.Log.Warn("record failed",
				zap.String("task", task),
				zap.String("record", rec.ID),
				zap.String("name", rec.Name),
				zap.Error(err))
		case outcome == OutcomeApplied:
			rep.Applied++
		case outcome == OutcomeSkipped:
			rep.Skipped++
		}

		e.sleep(ctx, e.Cfg.RecordDelay())
	}
	return rep
}

func (e *Env) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// requireColumn resolves a column by title and enforces its type. An empty
// kinds list accepts any type. Status columns may carry the legacy "color"
// type, so both spellings are accepted wherever status is allowed.
func requireColumn(b board.Board, title string, kinds ...string) (board.Column, error) {
	col := board.ResolveColumn(b.Columns, title)
	if col == nil {
		return board.Column{}, fmt.Errorf("column %q not found on board %q", title, b.Name)
	}
	if len(kinds) == 0 {
		return *col, nil
	}
	for _, k := range kinds {
		if strings.EqualFold(col.Type, k) {
			return *col, nil
		}
		if k == board.KindStatus && strings.EqualFold(col.Type, board.KindColor) {
			return *col, nil
		}
	}
	return board.Column{}, fmt.Errorf("column %q has type %q, want one of %v", title, col.Type, kinds)
}

// alreadySet reports whether the record has any text in the column. Tasks
// with fill-once semantics use this to keep reruns cheap and idempotent.
func alreadySet(rec board.Record, col board.Column) bool {
	return strings.TrimSpace(rec.Text(col.ID)) != ""
}

// yesNoStatus builds a status value for col. When the column settings map
// yes/no labels to indices the index is included so the write is exact even
// if the board renames label casing.
func yesNoStatus(col board.Column, yes bool) board.StatusValue {
	labels := board.StatusLabels(col)
	yesIdx, noIdx := board.YesNoIndices(labels)
	v := board.StatusValue{Label: "No", Index: noIdx}
	if yes {
		v = board.StatusValue{Label: "Yes", Index: yesIdx}
	}
	// Prefer the board's own label spelling when the index is known.
	if v.Index != nil {
		for name, idx := range labels {
			if idx == *v.Index {
				v.Label = name
				break
			}
		}
	}
	return v
}

// websiteBase resolves the record's website to a normalized scheme://host,
// or "" when the record has no usable site.
func websiteBase(rec board.Record, websiteCol board.Column) string {
	return site.BaseURL(site.WebsiteFromRecord(rec, websiteCol))
}
