package enrich

import (
	"context"
	"testing"

	"github.com/fieldops/prospector/internal/board"
)

func verticalsTestBoard() *fakeBoard {
	return &fakeBoard{
		board: board.Board{
			Name: "Companies",
			Columns: []board.Column{
				{ID: "website", Title: "Website", Type: board.KindLink},
				{ID: "tv", Title: "Target Verticals", Type: board.KindDropdown,
					SettingsStr: `{"labels":[{"id":1,"name":"Residential"},{"id":2,"name":"Commercial"},{"id":3,"name":"Insurance Driven"}]}`},
			},
		},
		records: []board.Record{
			{ID: "1", Name: "Acme", Values: []board.ColumnValue{websiteValue("https://acme.example.com")}},
		},
	}
}

func TestVerticalsTask(t *testing.T) {
	fb := verticalsTestBoard()
	ff := &fakeFetcher{pages: map[string]string{
		"https://acme.example.com": `<html><body>
			<p>Commercial roofing for offices and retail.</p>
			<p>We also serve residential homeowners.</p>
		</body></html>`,
	}}
	env := newTestEnv(fb, ff, nil)

	rep, err := VerticalsTask{}.Run(context.Background(), env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Applied != 1 {
		t.Fatalf("report = %+v", rep)
	}
	// DropdownValue renders labels comma-joined.
	if got := fb.writes[0].rendered; got != "Commercial, Residential" {
		t.Fatalf("labels = %q", got)
	}
}

func TestVerticalsTaskNoSignal(t *testing.T) {
	fb := verticalsTestBoard()
	ff := &fakeFetcher{pages: map[string]string{
		"https://acme.example.com": `<html><body><p>Welcome to our page.</p></body></html>`,
	}}
	env := newTestEnv(fb, ff, nil)

	rep, err := VerticalsTask{}.Run(context.Background(), env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Applied != 0 || len(fb.writes) != 0 {
		t.Fatalf("no labels must mean no write: %+v %v", rep, fb.writes)
	}
}

func TestVerticalsTaskRequiresLabels(t *testing.T) {
	fb := verticalsTestBoard()
	fb.board.Columns[1].SettingsStr = `{"labels":[{"id":1,"name":"Residential"}]}`
	env := newTestEnv(fb, &fakeFetcher{}, nil)

	if _, err := (VerticalsTask{}).Run(context.Background(), env); err == nil {
		t.Fatalf("dropdown missing required labels must be fatal")
	}
}
