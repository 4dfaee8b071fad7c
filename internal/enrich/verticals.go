package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/heuristic"
	"github.com/fieldops/prospector/internal/site"
)

// VerticalsTask classifies each company into target verticals (Residential,
// Commercial, Insurance Driven) from its website and writes the dropdown.
type VerticalsTask struct{}

func (VerticalsTask) Name() string { return "target-verticals" }

func (t VerticalsTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	targetCol, err := requireColumn(b, env.Cfg.Columns.TargetVerticals, board.KindDropdown)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	valid := map[string]struct{}{}
	for _, l := range board.DropdownLabels(targetCol) {
		valid[l] = struct{}{}
	}
	for _, need := range []string{heuristic.LabelResidential, heuristic.LabelCommercial, heuristic.LabelInsurance} {
		if _, ok := valid[need]; !ok {
			return Report{}, fmt.Errorf("%s: dropdown %q missing label %q", t.Name(), targetCol.Title, need)
		}
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	classifier := heuristic.NewVerticalsClassifier(env.Cfg.Run.DebugEvidence)

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		base := websiteBase(rec, websiteCol)
		if base == "" {
			env.Log.Debug("no valid website", zap.String("record", rec.ID), zap.String("name", rec.Name))
			return OutcomeNone, nil
		}

		homeHTML := env.Fetcher.GetHTML(ctx, base)
		pages := site.CollectPages(ctx, env.Fetcher, base, homeHTML,
			heuristic.TopicLinkKeywords, 8, env.Cfg.FetchDelay())

		hp := make([]heuristic.Page, 0, len(pages))
		for _, p := range pages {
			hp = append(hp, heuristic.Page{URL: p.URL, Text: p.Text})
		}
		res := classifier.Classify(hp)

		labels := make([]string, 0, len(res.Labels))
		for _, l := range res.Labels {
			if _, ok := valid[l]; ok {
				labels = append(labels, l)
			}
		}
		if len(labels) == 0 {
			env.Log.Info("no clear verticals", zap.String("name", rec.Name), zap.String("site", base))
			return OutcomeNone, nil
		}

		for _, l := range labels {
			if ev := res.Evidence[l]; len(ev) > 0 {
				env.Log.Debug("vertical evidence",
					zap.String("name", rec.Name), zap.String("label", l), zap.Strings("lines", ev))
			}
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, targetCol, board.DropdownValue{Labels: labels})
	}), nil
}
