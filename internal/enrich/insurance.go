package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/site"
)

// Phrases that strongly indicate the company works insurance claims.
var insuranceVendorPhrases = []string{
	"work with your insurance",
	"we work with your insurance",
	"work with all insurance companies",
	"work with all major insurance",
	"deal directly with your insurance",
	"bill your insurance",
	"we bill your insurance",
	"directly with the insurance company",
	"insurance claims assistance",
	"insurance claim assistance",
	"insurance claim process",
	"insurance company approved",
	"approved by your insurance",
	"assist with your insurance",
	"we handle the insurance",
}

// Carrier names are a looser signal but still count.
var insuranceCarriers = []string{
	"state farm", "allstate", "farmers insurance", "nationwide",
	"progressive", "liberty mutual", "usaa", "traveler", "travellers",
	"chubb", "the hartford", "hartford insurance", "geico",
	"american family", "amfam", "metlife", "erie insurance",
	"auto-owners insurance",
}

// InsuranceVendorTask sets a Yes/No status for whether the company works
// with insurance carriers, from vendor phrases and carrier names on the
// home page plus a few insurance-topic internal pages.
type InsuranceVendorTask struct{}

func (InsuranceVendorTask) Name() string { return "insurance-vendor" }

func (t InsuranceVendorTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	statusCol, err := requireColumn(b, env.Cfg.Columns.InsuranceVendor, board.KindStatus)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		found := false
		if base := websiteBase(rec, websiteCol); base != "" {
			homeHTML := env.Fetcher.GetHTML(ctx, base)
			found = hasInsuranceSignal(site.HTMLText(homeHTML))
			if !found && homeHTML != "" {
				for _, link := range site.DiscoverTopicLinks(base, homeHTML, []string{"insurance", "claims"}, 3) {
					if ctx.Err() != nil {
						break
					}
					env.sleep(ctx, env.Cfg.FetchDelay())
					if hasInsuranceSignal(env.Fetcher.GetText(ctx, link)) {
						found = true
						break
					}
				}
			}
		}
		if found {
			env.Log.Debug("insurance signal found", zap.String("name", rec.Name))
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, statusCol, yesNoStatus(statusCol, found))
	}), nil
}

func hasInsuranceSignal(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range insuranceVendorPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, c := range insuranceCarriers {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}
