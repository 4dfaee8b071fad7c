package enrich

import (
	"context"
	"testing"

	"github.com/fieldops/prospector/internal/board"
)

func snippetTestBoard() *fakeBoard {
	return &fakeBoard{
		board: board.Board{
			Name: "Companies",
			Columns: []board.Column{
				{ID: "website", Title: "Website", Type: board.KindLink},
				{ID: "guar", Title: "Service Guarantees", Type: board.KindLongText},
			},
		},
		records: []board.Record{
			{ID: "1", Name: "Acme", Values: []board.ColumnValue{websiteValue("https://acme.example.com")}},
		},
	}
}

func TestGuaranteesTask(t *testing.T) {
	fb := snippetTestBoard()
	ff := &fakeFetcher{pages: map[string]string{
		"https://acme.example.com": `<html><body>
			<p>100% Satisfaction Guaranteed on every roof.</p>
			<p>Lifetime workmanship warranty included at no cost.</p>
		</body></html>`,
	}}
	env := newTestEnv(fb, ff, nil)

	rep, err := NewGuaranteesTask().Run(context.Background(), env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Applied != 1 {
		t.Fatalf("report = %+v", rep)
	}
	want := "100% Satisfaction Guaranteed on every roof. | Lifetime workmanship warranty included at no cost."
	if fb.writes[0].rendered != want {
		t.Fatalf("wrote %q, want %q", fb.writes[0].rendered, want)
	}
}

func TestGuaranteesTaskNoSiteWritesNoneFound(t *testing.T) {
	fb := snippetTestBoard()
	fb.records = append(fb.records, board.Record{ID: "2", Name: "NoSite"})
	ff := &fakeFetcher{pages: map[string]string{}}
	env := newTestEnv(fb, ff, nil)

	if _, err := NewGuaranteesTask().Run(context.Background(), env); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := map[string]string{}
	for _, w := range fb.writes {
		got[w.recordID] = w.rendered
	}
	if got["2"] != "None found" {
		t.Fatalf("no-site record = %q, want \"None found\"", got["2"])
	}
	// Reachable site without guarantee language also records the miss.
	if got["1"] != "None found" {
		t.Fatalf("no-snippet record = %q, want \"None found\"", got["1"])
	}
}

func TestGuaranteesTaskFillOnce(t *testing.T) {
	fb := snippetTestBoard()
	fb.records[0].Values = append(fb.records[0].Values,
		board.ColumnValue{ID: "guar", Type: board.KindLongText, Text: "Existing note"})
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	rep, err := NewGuaranteesTask().Run(context.Background(), env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Skipped != 1 || len(fb.writes) != 0 {
		t.Fatalf("pre-filled column must be left alone: %+v writes=%v", rep, fb.writes)
	}
}

func TestSponsorshipsEmptyText(t *testing.T) {
	if got := NewSponsorshipsTask().emptyText; got != "None" {
		t.Fatalf("sponsorships empty marker = %q", got)
	}
	if got := NewFinancingTask().emptyText; got != "None found" {
		t.Fatalf("financing empty marker = %q", got)
	}
}

func TestMergeSnippets(t *testing.T) {
	got := mergeSnippets([]string{"a"}, []string{"a", "b", "c", "d"}, 3)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
}
