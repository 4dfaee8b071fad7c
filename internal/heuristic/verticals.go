package heuristic

import "regexp"

// Vertical label names as they appear in the board's dropdown settings.
const (
	LabelResidential = "Residential"
	LabelCommercial  = "Commercial"
	LabelInsurance   = "Insurance Driven"
)

// Weighted phrase tables for the three verticals. Weights are modest on
// purpose: a single explicit keyword still clears the inclusion threshold.
var residentialPhrases = mustPhrases([]struct {
	pat string
	wt  float64
}{
	{`(?i)\bresidential\b`, 2.0},
	{`(?i)\bhomeowner(s)?\b`, 1.5},
	{`(?i)\bhome services?\b`, 1.2},
	{`(?i)\bhousehold\b`, 1.0},
	{`(?i)\bmulti-?family\b`, 1.3},
	{`(?i)\bcondo(s)?\b`, 1.0},
	{`(?i)\bapartment(s)?\b`, 1.0},
	{`(?i)\bHOA\b`, 1.2},
})

var commercialPhrases = mustPhrases([]struct {
	pat string
	wt  float64
}{
	{`(?i)\bcommercial\b`, 2.0},
	{`(?i)\bb2b\b`, 1.2},
	{`(?i)\boffice(s)?\b`, 1.0},
	{`(?i)\bretail\b`, 1.0},
	{`(?i)\bindustr(y|ies)\b`, 1.2},
	{`(?i)\bindustrial\b`, 1.2},
	{`(?i)\bproperty management\b`, 1.5},
	{`(?i)\bfacilit(y|ies) management\b`, 1.5},
	{`(?i)\benterprise\b`, 1.2},
})

var insurancePhrases = mustPhrases([]struct {
	pat string
	wt  float64
}{
	{`(?i)\binsurance\b`, 2.0},
	{`(?i)\bcarrier(s)?\b`, 1.5},
	{`(?i)\bTPA\b`, 1.5},
	{`(?i)\bthird[- ]party administrator(s)?\b`, 1.5},
	{`(?i)\bprogram work\b`, 1.2},
	{`(?i)\bpreferred vendor\b`, 1.2},
	{`(?i)\bclaims?\b`, 1.2},
	{`(?i)\bCAT\b`, 1.0},
	{`(?i)\bXactimate\b`, 1.2},
})

var verticalURLBoosts = []URLBoost{
	{regexp.MustCompile(`(?i)/residential`), 1.5},
	{regexp.MustCompile(`(?i)/commercial`), 1.5},
	{regexp.MustCompile(`(?i)/insurance`), 1.2},
	{regexp.MustCompile(`(?i)/services|/industries|/markets|/sectors`), 1.1},
}

var residentialExplicit = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bresidential\b`),
	regexp.MustCompile(`(?i)\bhomeowner(s)?\b`),
}

// NewVerticalsClassifier builds the target-verticals classifier with its
// tuned thresholds. An explicit residential mention always includes
// Residential even when the weighted total falls short.
func NewVerticalsClassifier(debugEvidence bool) *Classifier {
	return &Classifier{
		Rules: []LabelRule{
			{Label: LabelResidential, Phrases: residentialPhrases, Threshold: 1.2, Explicit: residentialExplicit},
			{Label: LabelCommercial, Phrases: commercialPhrases, Threshold: 1.5},
			{Label: LabelInsurance, Phrases: insurancePhrases, Threshold: 1.2},
		},
		URLBoosts:     verticalURLBoosts,
		Floor:         0.8,
		DebugEvidence: debugEvidence,
	}
}

// TopicLinkKeywords are the URL and anchor-text needles used to discover
// vertical-relevant internal pages from a site's home page.
var TopicLinkKeywords = []string{"residential", "commercial", "insurance", "industries", "sectors", "markets"}
