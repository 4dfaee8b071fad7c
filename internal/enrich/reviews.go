package enrich

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
)

var relativeAgeRe = regexp.MustCompile(`(?i)(\d+)\s+(minute|hour|day|week|month|year)s?\s+ago`)

// withinThirtyDays decides whether a relative review timestamp like
// "3 weeks ago" falls inside the trailing 30-day window. "a day ago" style
// phrasings normalize to "1 day ago" first.
func withinThirtyDays(label string) bool {
	s := strings.ToLower(strings.TrimSpace(label))
	switch s {
	case "a day ago", "a week ago", "a month ago":
		s = "1 " + strings.TrimPrefix(s, "a ")
	}
	m := relativeAgeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(m[2], "minute"), strings.HasPrefix(m[2], "hour"):
		return true
	case strings.HasPrefix(m[2], "day"):
		return n <= 30
	case strings.HasPrefix(m[2], "week"):
		return n*7 <= 30
	case strings.HasPrefix(m[2], "month"):
		return n <= 1
	}
	return false
}

// countRecentReviews counts relative timestamps inside the window across a
// rendered reviews page. Candidate strings longer than 40 characters are
// ignored; those are sentences that merely mention "ago".
func countRecentReviews(text string) int {
	count := 0
	for _, m := range relativeAgeRe.FindAllString(text, -1) {
		if len(m) <= 40 && withinThirtyDays(m) {
			count++
		}
	}
	return count
}

// NewReviewsTask counts each company's Google Maps reviews from the last 30
// days using the rendered reviews page.
type NewReviewsTask struct{}

func (NewReviewsTask) Name() string { return "new-reviews-30d" }

func (t NewReviewsTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	addrCol, err := requireColumn(b, env.Cfg.Columns.HQAddress)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	newCol, err := requireColumn(b, env.Cfg.Columns.NewReviews, board.KindNumeric)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		addr := strings.TrimSpace(rec.Text(addrCol.ID))
		query := strings.TrimSpace(rec.Name + " " + addr)
		if query == "" {
			return OutcomeNone, nil
		}

		// Try both maps URL styles; the first page that renders wins.
		count := -1
		for _, mapsURL := range mapsSearchURLs(query) {
			html := env.renderHTML(ctx, mapsURL)
			if html == "" {
				continue
			}
			count = countRecentReviews(htmlToText(html))
			break
		}
		if count < 0 {
			env.Log.Debug("maps page unavailable", zap.String("name", rec.Name))
			return OutcomeNone, nil
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, newCol, board.NumberValue{N: int64(count)})
	}), nil
}

func mapsSearchURLs(query string) []string {
	escaped := url.QueryEscape(query)
	return []string{
		"https://www.google.com/maps/search/?api=1&query=" + escaped,
		"https://www.google.com/maps/search/" + escaped,
	}
}
