package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/heuristic"
	"github.com/fieldops/prospector/internal/site"
)

var googleAdsCountRe = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s+ads\b`)

// adsTransparencyURL is the public Google ads-transparency lookup for a
// registrable domain.
func adsTransparencyURL(domain string) string {
	return "https://adstransparency.google.com/?region=anywhere&domain=" + url.QueryEscape(domain)
}

// GoogleAdsTask sets a Yes/No status for whether the company currently runs
// Google ads, by rendering the ads-transparency page for its domain and
// parsing the "<n> ads" total.
type GoogleAdsTask struct{}

func (GoogleAdsTask) Name() string { return "google-ads-active" }

func (t GoogleAdsTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	statusCol, err := requireColumn(b, env.Cfg.Columns.GoogleAds, board.KindStatus)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		active := false
		if domain := site.RegistrableDomain(site.WebsiteFromRecord(rec, websiteCol)); domain != "" {
			text := htmlToText(env.renderHTML(ctx, adsTransparencyURL(domain)))
			if n, ok := heuristic.FirstNumberToken(text, googleAdsCountRe); ok && n > 0 {
				active = true
				env.Log.Debug("google ads found",
					zap.String("name", rec.Name), zap.String("domain", domain), zap.Int64("ads", n))
			}
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, statusCol, yesNoStatus(statusCol, active))
	}), nil
}

// Meta ad-library page heuristics: negative markers are checked first so
// "No ads to show" never counts as the "Sponsored" positive.
var (
	metaNoAdsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)No ads to show`),
		regexp.MustCompile(`(?i)No ads available`),
		regexp.MustCompile(`(?i)We didn.t find any ads`),
	}
	metaHasAdsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)results? for`),
		regexp.MustCompile(`(?i)Ad details`),
		regexp.MustCompile(`(?i)Sponsored`),
	}
)

func metaAdLibraryURL(query string) string {
	return "https://www.facebook.com/ads/library/?active_status=active&ad_type=all&country=US&q=" + url.QueryEscape(query)
}

// metaAdsActive classifies the rendered ad-library text.
func metaAdsActive(text string) bool {
	if text == "" {
		return false
	}
	for _, rx := range metaNoAdsRes {
		if rx.MatchString(text) {
			return false
		}
	}
	for _, rx := range metaHasAdsRes {
		if rx.MatchString(text) {
			return true
		}
	}
	return false
}

// MetaAdsTask sets a Yes/No status for whether the company runs Meta ads,
// by querying the public ad library for the company name.
type MetaAdsTask struct{}

func (MetaAdsTask) Name() string { return "meta-ads-active" }

func (t MetaAdsTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	statusCol, err := requireColumn(b, env.Cfg.Columns.MetaAds, board.KindStatus)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		text := htmlToText(env.renderHTML(ctx, metaAdLibraryURL(rec.Name)))
		active := metaAdsActive(text)
		return ApplyUpdate(ctx, env, t.Name(), rec, statusCol, yesNoStatus(statusCol, active))
	}), nil
}

// AdSamplesTask attaches the ads-transparency lookup URL for each company's
// domain as a LINK entry in the files column. No file upload happens; the
// entry is a pointer reviewers can click.
type AdSamplesTask struct{}

func (AdSamplesTask) Name() string { return "ad-samples" }

func (t AdSamplesTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	filesCol, err := requireColumn(b, env.Cfg.Columns.AdSamples, board.KindFile)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if !env.Cfg.Run.OverwriteFiles && filesColumnPopulated(rec.Value(filesCol.ID)) {
			return OutcomeSkipped, nil
		}
		domain := site.RegistrableDomain(site.WebsiteFromRecord(rec, websiteCol))
		if domain == "" {
			return OutcomeNone, nil
		}
		link := board.FileLinkValue{
			Name: "Ads Transparency: " + domain,
			URL:  adsTransparencyURL(domain),
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, filesCol, link)
	}), nil
}

// filesColumnPopulated reports whether the files column already holds any
// entries, checking the structured payload first and the text fallback.
func filesColumnPopulated(cv *board.ColumnValue) bool {
	if cv == nil {
		return false
	}
	if cv.Raw != "" {
		var payload struct {
			Files []json.RawMessage `json:"files"`
		}
		if err := json.Unmarshal([]byte(cv.Raw), &payload); err == nil {
			return len(payload.Files) > 0
		}
	}
	return cv.Text != ""
}
