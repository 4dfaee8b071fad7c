package enrich

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/board"
)

var (
	bbbAccreditedRe    = regexp.MustCompile(`(?i)\bBBB\s+Accredited\s+Business\b`)
	bbbNotAccreditedRe = regexp.MustCompile(`(?i)\b(Not\s+BBB\s+accredited|This\s+business\s+is\s+not\s+BBB\s+accredited)\b`)
)

// bbbAccreditation inspects a rendered BBB page. The bool is the verdict;
// ok is false when neither signal appears, in which case nothing is written.
func bbbAccreditation(html string) (accredited, ok bool) {
	if html == "" {
		return false, false
	}
	// Negative phrasing embeds the positive phrase, so check it first.
	if bbbNotAccreditedRe.MatchString(html) {
		return false, true
	}
	if bbbAccreditedRe.MatchString(html) {
		return true, true
	}
	return false, false
}

func bbbSearchURL(company, location string) string {
	q := url.Values{
		"find_text": {company},
		"find_loc":  {location},
	}
	return "https://www.bbb.org/search?" + q.Encode()
}

// BBBTask records whether each company is BBB accredited. The column may be
// a status (Yes/No) or a checkbox; both shapes are written through the same
// codec. No clear signal leaves the record untouched.
type BBBTask struct{}

func (BBBTask) Name() string { return "bbb-accreditation" }

func (t BBBTask) Run(ctx context.Context, env *Env) (Report, error) {
	b, err := env.Board.FetchBoard(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}
	bbbCol, err := requireColumn(b, env.Cfg.Columns.BBB, board.KindStatus, board.KindCheckbox)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	records, err := env.Board.FetchAllRecords(ctx, env.BoardID)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", t.Name(), err)
	}

	return env.ForEachRecord(ctx, t.Name(), records, func(ctx context.Context, rec board.Record) (Outcome, error) {
		if strings.TrimSpace(rec.Name) == "" {
			return OutcomeNone, nil
		}
		html := env.renderHTML(ctx, bbbSearchURL(rec.Name, env.Cfg.Run.Location))
		accredited, ok := bbbAccreditation(html)
		if !ok {
			env.Log.Debug("no accreditation signal", zap.String("name", rec.Name))
			return OutcomeNone, nil
		}

		var value board.Value
		if strings.EqualFold(bbbCol.Type, board.KindCheckbox) {
			value = board.CheckboxValue{Checked: accredited}
		} else {
			value = yesNoStatus(bbbCol, accredited)
		}
		return ApplyUpdate(ctx, env, t.Name(), rec, bbbCol, value)
	}), nil
}
