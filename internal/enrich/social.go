package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/site"
)

// SocialPresenceTask sets a Yes/No status for whether the company's
// homepage links to a given social platform. Unreachable sites count as No:
// absence of evidence is the negative default here.
type SocialPresenceTask struct {
	name        string
	needle      string
	columnTitle func(config.ColumnsConfig) string
}

// NewFacebookActiveTask checks for facebook.com references.
func NewFacebookActiveTask() SocialPresenceTask {
	return SocialPresenceTask{
		name:        "facebook-active",
		needle:      site.NeedleFacebook,
		columnTitle: func(c config.ColumnsConfig) string { return c.FacebookActive },
	}
}

// NewLinkedInActiveTask checks for linkedin.com references.
func NewLinkedInActiveTask() SocialPresenceTask {
	return SocialPresenceTask{
		name:        "linkedin-active",
		needle:      site.NeedleLinkedIn,
		columnTitle: func(c config.ColumnsConfig) string { return c.LinkedInActive },
	}
}

// NewTikTokActiveTask checks for tiktok.com references.
func NewTikTokActiveTask() SocialPresenceTask {
	return SocialPresenceTask{
		name:        "tiktok-active",
		needle:      site.NeedleTikTok,
		columnTitle: func(c config.ColumnsConfig) string { return c.TikTokActive },
	}
}

func (t SocialPresenceTask) Name() string { return t.name }

func (t SocialPresenceTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}
	statusCol, err := requireColumn(b, t.columnTitle(env.Cfg.Columns), board.KindStatus)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.name, err)
	}

	return env.ForEachRecord(ctx, t.name, records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		present := false
		if base := websiteBase(rec, websiteCol); base != "" {
			if html := env.Fetcher.GetHTML(ctx, base); html != "" {
				present = site.HasPlatformLink(html, t.needle)
			}
		}
		if present {
			env.Log.Debug("platform link found",
				zap.String("task", t.name), zap.String("name", rec.Name))
		}
		return ApplyUpdate(ctx, env, t.name, rec, statusCol, yesNoStatus(statusCol, present))
	}), nil
}
