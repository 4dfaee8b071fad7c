package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/heuristic"
)

const topKeywordCount = 10

// OrganicKeywordsTask writes the homepage's most frequent keywords,
// comma-joined, into the first matching keywords column.
type OrganicKeywordsTask struct{}

func (OrganicKeywordsTask) Name() string { return "organic-keywords" }

func (t OrganicKeywordsTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	// The column has shipped under two titles; accept either.
	organicCol := board.ResolveFirstColumn(b.Columns, env.Cfg.Columns.Organic, "Top Organic Keywords")
	if organicCol == nil {
		return Report{}, fmt.Errorf("%s: column %q not found on board %q", t.Name(), env.Cfg.Columns.Organic, b.Name)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if alreadySet(rec, *organicCol) {
			return OutcomeSkipped, nil
		}
		text := "None found"
		if base := websiteBase(rec, websiteCol); base != "" {
			if words := heuristic.TopKeywords(env.Fetcher.GetText(ctx, base), topKeywordCount); len(words) > 0 {
				text = strings.Join(words, ", ")
			}
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, *organicCol, board.TextValue{Text: text})
	}), nil
}
