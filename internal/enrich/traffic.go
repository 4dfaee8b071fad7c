package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/site"
)

const trafficMaxPages = 10

// TrafficTask writes a rough traffic estimate per company: a bounded crawl
// of the company's own site scored as pages times average words per page.
// It is a relative ranking signal, not real visit data.
type TrafficTask struct{}

func (TrafficTask) Name() string { return "website-traffic" }

func (t TrafficTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	trafficCol, err := requireColumn(b, env.Cfg.Columns.Traffic, board.KindNumeric)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if alreadySet(rec, trafficCol) {
			return OutcomeSkipped, nil
		}
		base := websiteBase(rec, websiteCol)
		if base == "" {
			return OutcomeNone, nil
		}
		stats := site.CrawlSite(ctx, env.Fetcher, base, trafficMaxPages, env.Cfg.FetchDelay())
		if stats.Pages == 0 {
			return OutcomeNone, nil
		}
		score := stats.Score()
		env.Log.Debug("traffic score",
			zap.String("name", rec.Name),
			zap.Int("pages", stats.Pages),
			zap.Int("words", stats.TotalWords),
			zap.Int64("score", score))
		return ApplyUpdate(ctx, env, t.Name(), rec, trafficCol, board.NumberValue{N: score})
	}), nil
}
