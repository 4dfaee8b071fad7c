package enrich

import (
	"context"
	"fmt"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/heuristic"
	"github.com/fieldops/prospector/internal/site"
)

var guaranteeKeywords = []string{
	"guarantee", "guaranteed",
	"warranty",
	"satisfaction", "100%", "promise",
	"quality assurance",
	"lifetime", "peace of mind",
	"service guarantee",
	"workmanship guarantee",
}

var financingKeywords = []string{
	"financing", "finance options", "payment plans", "low monthly payment",
	"0% apr", "zero interest", "apply for financing", "apply for credit",
	"special financing", "loan", "credit approval", "synchrony", "affirm",
	"klarna", "get approved", "finance available",
}

var sponsorshipKeywords = []string{
	"sponsor", "sponsors", "sponsorship", "sponsoring", "sponsored by",
	"proud sponsor", "proud to sponsor", "community partner",
	"community partners", "our partners", "partnered with",
	"charity partner", "charitable partner", "nonprofit partner",
	"foundation partner", "local team", "youth sports", "little league",
	"supporting our community", "support our community",
	"community involvement", "community outreach", "community engagement",
}

// SnippetTask extracts short keyword-bearing statements from a company's
// site into a text column. Guarantees, financing, and sponsorships are the
// same scan with different keyword tables and topic pages.
type SnippetTask struct {
	name        string
	keywords    []string
	topicLinks  []string
	maxExtra    int
	emptyText   string
	columnTitle func(config.ColumnsConfig) string
}

// NewGuaranteesTask scans for guarantee and warranty language.
func NewGuaranteesTask() SnippetTask {
	return SnippetTask{
		name:        "service-guarantees",
		keywords:    guaranteeKeywords,
		topicLinks:  []string{"guarantee", "warranty"},
		maxExtra:    3,
		emptyText:   "None found",
		columnTitle: func(c config.ColumnsConfig) string { return c.Guarantees },
	}
}

// NewFinancingTask scans for consumer financing offers.
func NewFinancingTask() SnippetTask {
	return SnippetTask{
		name:        "financing-options",
		keywords:    financingKeywords,
		topicLinks:  []string{"financing", "finance", "payment"},
		maxExtra:    5,
		emptyText:   "None found",
		columnTitle: func(c config.ColumnsConfig) string { return c.Financing },
	}
}

// NewSponsorshipsTask scans for sponsorship and community-partner mentions.
func NewSponsorshipsTask() SnippetTask {
	return SnippetTask{
		name:        "sponsorships",
		keywords:    sponsorshipKeywords,
		topicLinks:  []string{"sponsor", "community", "partner"},
		maxExtra:    5,
		emptyText:   "None",
		columnTitle: func(c config.ColumnsConfig) string { return c.Sponsorships },
	}
}

func (t SnippetTask) Name() string { return t.name }

func (t SnippetTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}
	textCol, err := requireColumn(b, t.columnTitle(env.Cfg.Columns), board.KindText, board.KindLongText)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}

	return env.ForEachRecord(ctx, t.name, records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if alreadySet(rec, textCol) {
			return OutcomeSkipped, nil
		}
		base := websiteBase(rec, websiteCol)
		if base == "" {
			return ApplyUpdate(ctx, env, t.name, rec, textCol, board.TextValue{Text: t.emptyText})
		}

		homeHTML := env.Fetcher.GetHTML(ctx, base)
		snippets := heuristic.SnippetsFromHTML(homeHTML, t.keywords, 3)

		// Follow topic-related internal pages until the snippet cap fills.
		if len(snippets) < 3 && homeHTML != "" {
			for _, link := range site.DiscoverTopicLinks(base, homeHTML, t.topicLinks, t.maxExtra) {
				if ctx.Err() != nil {
					break
				}
				env.sleep(ctx, env.Cfg.FetchDelay())
				extra := heuristic.SnippetsFromHTML(env.Fetcher.GetHTML(ctx, link), t.keywords, 3)
				snippets = mergeSnippets(snippets, extra, 3)
				if len(snippets) >= 3 {
					break
				}
			}
		}

		text := heuristic.JoinSnippets(snippets)
		if text == "" {
			text = t.emptyText
		}
		return ApplyUpdate(ctx, env, t.name, rec, textCol, board.TextValue{Text: text})
	}), nil
}

func mergeSnippets(dst, src []string, max int) []string {
	seen := map[string]struct{}{}
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if len(dst) >= max {
			break
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
