package enrich

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/heuristic"
)

const (
	yelpSearchURL = "https://www.yelp.com/search"
	yelpBaseURL   = "https://www.yelp.com"
)

var yelpReviewsRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s+reviews`)

// YelpTask looks up each company on Yelp by name and location, follows the
// first business result, and writes its review count.
type YelpTask struct{}

func (YelpTask) Name() string { return "yelp-reviews" }

func (t YelpTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	reviewsCol, err := requireColumn(b, env.Cfg.Columns.YelpReviews, board.KindNumeric)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if alreadySet(rec, reviewsCol) {
			return OutcomeSkipped, nil
		}
		bizURL := t.searchBusiness(ctx, env, rec.Name)
		if bizURL == "" {
			return OutcomeNone, nil
		}
		env.sleep(ctx, env.Cfg.FetchDelay())
		html := env.renderHTML(ctx, bizURL)
		n, ok := heuristic.FirstNumberToken(htmlToText(html), yelpReviewsRe)
		if !ok {
			env.Log.Debug("no review count parsed",
				zap.String("name", rec.Name), zap.String("url", bizURL))
			return OutcomeNone, nil
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, reviewsCol, board.NumberValue{N: n})
	}), nil
}

// searchBusiness returns the first /biz/ result URL for the company, or "".
func (t YelpTask) searchBusiness(ctx context.Context, env *Env, name string) string {
	q := url.Values{
		"find_desc": {name},
		"find_loc":  {env.Cfg.Run.Location},
	}
	html := env.renderHTML(ctx, yelpSearchURL+"?"+q.Encode())
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var biz string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "/biz/") {
			biz = yelpBaseURL + href
			return false
		}
		return true
	})
	return biz
}

// htmlToText flattens a document to space-joined visible text for the loose
// count regexes.
func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script,style,noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
