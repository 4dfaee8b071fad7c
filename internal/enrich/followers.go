package enrich

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/heuristic"
	"github.com/fieldops/prospector/internal/site"
)

// Structured JSON count fields are tried before the loose "<n> followers"
// text so rendered profile pages beat marketing copy.
var (
	igFollowersJSONRe  = regexp.MustCompile(`"edge_followed_by"\s*:\s*{\s*"count"\s*:\s*(\d+)`)
	tiktokFollowersRe  = regexp.MustCompile(`"followerCount"\s*:\s*(\d+)`)
	looseFollowersRe   = regexp.MustCompile(`(?i)(\d[\d,\.]*\s*[KkMm]?)\s+followers`)
	followerPatternSet = map[string][]*regexp.Regexp{
		"instagram": {igFollowersJSONRe, looseFollowersRe},
		"tiktok":    {tiktokFollowersRe, looseFollowersRe},
		"facebook":  {looseFollowersRe},
		"linkedin":  {looseFollowersRe},
	}
)

// FollowersTask sums follower counts across the social profiles linked from
// the company homepage and writes the total into the numbers column. Rows
// that already have a value are left untouched.
type FollowersTask struct{}

func (FollowersTask) Name() string { return "followers-count" }

func (t FollowersTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	websiteCol, err := requireColumn(b, env.Cfg.Columns.Website)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	followersCol, err := requireColumn(b, env.Cfg.Columns.Followers, board.KindNumeric)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if alreadySet(rec, followersCol) {
			return OutcomeSkipped, nil
		}
		base := websiteBase(rec, websiteCol)
		if base == "" {
			return OutcomeNone, nil
		}
		homeHTML := env.Fetcher.GetHTML(ctx, base)
		if homeHTML == "" {
			return OutcomeNone, nil
		}
		links := site.FindSocialLinks(homeHTML)
		profiles := map[string]string{
			"facebook":  links.Facebook,
			"instagram": links.Instagram,
			"tiktok":    links.TikTok,
			"linkedin":  links.LinkedIn,
		}

		var total int64
		found := false
		for platform, profileURL := range profiles {
			if profileURL == "" {
				continue
			}
			html := env.renderHTML(ctx, profileURL)
			if html == "" {
				continue
			}
			if n, ok := heuristic.FirstNumberToken(html, followerPatternSet[platform]...); ok {
				env.Log.Debug("followers parsed",
					zap.String("name", rec.Name),
					zap.String("platform", platform),
					zap.Int64("count", n))
				total += n
				found = true
			}
			env.sleep(ctx, env.Cfg.FetchDelay())
		}
		if !found {
			return OutcomeNone, nil
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, followersCol, board.NumberValue{N: total})
	}), nil
}
