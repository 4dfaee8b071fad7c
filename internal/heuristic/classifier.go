// Package heuristic implements the keyword and regex scoring rules that
// turn scraped page text into board attribute values.
package heuristic

import (
	"fmt"
	"regexp"
	"sort"
)

// Page is one page's URL and extracted text, the unit the classifier scores.
type Page struct {
	URL  string
	Text string
}

// Phrase is a weighted pattern. Every occurrence in a page's text adds
// Weight to the label's running total.
type Phrase struct {
	Pattern *regexp.Regexp
	Weight  float64
}

// URLBoost multiplies a page's score when its URL matches. Boosts apply in
// order and stack multiplicatively.
type URLBoost struct {
	Pattern *regexp.Regexp
	Factor  float64
}

// LabelRule scores one label across a record's pages.
type LabelRule struct {
	Label     string
	Phrases   []Phrase
	Threshold float64
	// Explicit patterns force-include the label when any page matches,
	// regardless of the weighted total.
	Explicit []*regexp.Regexp
}

// Classifier applies a set of label rules to a record's collected pages.
type Classifier struct {
	Rules     []LabelRule
	URLBoosts []URLBoost
	// Floor admits the single best-scoring label when nothing reached
	// its threshold, so thin sites still get their dominant signal.
	Floor float64
	// DebugEvidence widens the per-label evidence cap from 5 to 12.
	DebugEvidence bool
}

// Result holds the applied labels (sorted) and the evidence lines that
// justified each one.
type Result struct {
	Labels   []string
	Evidence map[string][]string
}

// Has reports whether the result includes a label.
func (r Result) Has(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}
	return false
}

func (c *Classifier) evidenceCap() int {
	if c.DebugEvidence {
		return 12
	}
	return 5
}

// scorePage returns the weighted phrase total for one page plus the
// evidence lines that produced it.
func scorePage(p Page, phrases []Phrase, boosts []URLBoost) (float64, []string) {
	if p.Text == "" {
		return 0, nil
	}
	var score float64
	var ev []string
	for _, ph := range phrases {
		hits := len(ph.Pattern.FindAllString(p.Text, -1))
		if hits == 0 {
			continue
		}
		s := ph.Weight * float64(hits)
		score += s
		ev = append(ev, fmt.Sprintf("%dx %q on %s (+%.1f)", hits, ph.Pattern.String(), p.URL, s))
	}
	for _, b := range boosts {
		if b.Pattern.MatchString(p.URL) {
			score *= b.Factor
			ev = append(ev, fmt.Sprintf("url-boost %.1fx for %s", b.Factor, p.URL))
		}
	}
	return score, ev
}

// Classify totals every rule over the pages. A label is included when an
// explicit pattern matched, or its total met the threshold, or (only when
// nothing else qualified) it is the best scorer at or above the floor.
func (c *Classifier) Classify(pages []Page) Result {
	totals := make([]float64, len(c.Rules))
	evidence := make([][]string, len(c.Rules))
	explicit := make([]bool, len(c.Rules))

	for _, p := range pages {
		if p.Text == "" {
			continue
		}
		for i, rule := range c.Rules {
			for _, rx := range rule.Explicit {
				if rx.MatchString(p.Text) {
					explicit[i] = true
					break
				}
			}
			s, ev := scorePage(p, rule.Phrases, c.URLBoosts)
			totals[i] += s
			evidence[i] = append(evidence[i], ev...)
		}
	}

	included := make([]bool, len(c.Rules))
	res := Result{Evidence: map[string][]string{}}
	for i, rule := range c.Rules {
		if explicit[i] {
			included[i] = true
			res.Evidence[rule.Label] = append(res.Evidence[rule.Label], "explicit term found (auto-include)")
		}
		if totals[i] >= rule.Threshold {
			included[i] = true
		}
	}

	any := false
	for _, in := range included {
		any = any || in
	}
	if !any && c.Floor > 0 {
		best, bestScore := -1, 0.0
		for i, t := range totals {
			if best == -1 || t > bestScore {
				best, bestScore = i, t
			}
		}
		if best >= 0 && bestScore >= c.Floor {
			included[best] = true
		}
	}

	limit := c.evidenceCap()
	for i, rule := range c.Rules {
		if !included[i] {
			continue
		}
		res.Labels = append(res.Labels, rule.Label)
		ev := evidence[i]
		// The cap covers the auto-include line too, when one was added.
		if have := len(res.Evidence[rule.Label]); have+len(ev) > limit {
			ev = ev[:limit-have]
		}
		if len(ev) > 0 {
			res.Evidence[rule.Label] = append(res.Evidence[rule.Label], ev...)
		}
	}
	sort.Strings(res.Labels)
	return res
}

// mustPhrases compiles a pattern/weight table in a stable order.
func mustPhrases(table []struct {
	pat string
	wt  float64
}) []Phrase {
	out := make([]Phrase, 0, len(table))
	for _, row := range table {
		out = append(out, Phrase{Pattern: regexp.MustCompile(row.pat), Weight: row.wt})
	}
	return out
}
