package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/site"
)

// fakeBoard is an in-memory BoardAPI that records writes.
type fakeBoard struct {
	board     board.Board
	records   []board.Record
	writes    []fakeWrite
	failWrite bool
}

type fakeWrite struct {
	recordID string
	columnID string
	rendered string
}

func (f *fakeBoard) FetchBoard(ctx context.Context, boardID string) (board.Board, error) {
	return f.board, nil
}

func (f *fakeBoard) FetchAllRecords(ctx context.Context, boardID string) ([]board.Record, error) {
	return f.records, nil
}

func (f *fakeBoard) WriteColumnValue(ctx context.Context, boardID, recordID, columnID string, value board.Value) error {
	if f.failWrite {
		return &board.WriteError{RecordID: recordID, ColumnID: columnID}
	}
	f.writes = append(f.writes, fakeWrite{recordID: recordID, columnID: columnID, rendered: value.Render()})
	return nil
}

// fakeFetcher serves canned HTML by URL.
type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) GetHTML(ctx context.Context, rawURL string) string {
	return f.pages[rawURL]
}

func (f *fakeFetcher) GetText(ctx context.Context, rawURL string) string {
	return site.HTMLText(f.pages[rawURL])
}

// fakeRenderer serves canned rendered HTML by URL.
type fakeRenderer struct {
	pages map[string]string
}

func (f *fakeRenderer) RenderHTML(ctx context.Context, rawURL string) (string, error) {
	html, ok := f.pages[rawURL]
	if !ok {
		return "", fmt.Errorf("no page for %s", rawURL)
	}
	return html, nil
}

func testColumns() config.ColumnsConfig {
	return config.ColumnsConfig{
		Website:         "Website",
		ItemName:        "Name",
		HQAddress:       "HQ Address",
		TargetVerticals: "Target Verticals",
		Guarantees:      "Service Guarantees",
		Financing:       "Financing Options",
		Sponsorships:    "Sponsorships",
		Followers:       "Followers Count",
		YelpReviews:     "Yelp Reviews",
		NewReviews:      "New Reviews (30 Days)",
		Traffic:         "Website Traffic Estimate",
		Organic:         "Organic Keywords",
		InsuranceVendor: "Insurance Vendor",
		FacebookActive:  "Facebook Active",
		LinkedInActive:  "LinkedIn Active",
		TikTokActive:    "TikTok Active",
		GoogleAds:       "Google Ads Active",
		MetaAds:         "Meta Ads Active",
		BBB:             "BBB Accreditation",
		AdSamples:       "Ad Samples",
	}
}

func newTestEnv(fb *fakeBoard, ff *fakeFetcher, fr *fakeRenderer) *Env {
	env := &Env{
		Board:   fb,
		BoardID: "42",
		Fetcher: ff,
		Cfg: config.Config{
			Columns: testColumns(),
		},
		Log: zap.NewNop(),
	}
	if fr != nil {
		env.Renderer = fr
	}
	return env
}

// websiteValue builds a link-column value holding url.
func websiteValue(url string) board.ColumnValue {
	return board.ColumnValue{
		ID:   "website",
		Type: board.KindLink,
		Text: url,
		Raw:  fmt.Sprintf(`{"url":%q}`, url),
	}
}

func statusSettings() string {
	return `{"labels":{"1":"Yes","2":"No"}}`
}
