package heuristic

import (
	"regexp"
	"strings"
	"testing"
)

func TestClassifyThresholdInclusive(t *testing.T) {
	c := &Classifier{
		Rules: []LabelRule{{
			Label:     "Commercial",
			Phrases:   mustPhrases([]struct{ pat string; wt float64 }{{`(?i)\bcommercial\b`, 0.5}}),
			Threshold: 1.0,
		}},
	}
	// Two hits at 0.5 land exactly on the threshold.
	res := c.Classify([]Page{{URL: "https://x.com", Text: "commercial roofing, commercial gutters"}})
	if !res.Has("Commercial") {
		t.Fatalf("score equal to threshold must include the label, got %v", res.Labels)
	}
	// One hit falls short.
	res = c.Classify([]Page{{URL: "https://x.com", Text: "commercial roofing"}})
	if res.Has("Commercial") {
		t.Fatalf("score below threshold must exclude the label, got %v", res.Labels)
	}
}

func TestClassifyExplicitOverride(t *testing.T) {
	c := NewVerticalsClassifier(false)
	// Residential appears once: weighted total 2.0 clears 1.2 anyway, so use
	// a homeowner synonym that scores 1.5 but test the explicit path by
	// checking evidence.
	res := c.Classify([]Page{{URL: "https://x.com", Text: "we serve every homeowner"}})
	if !res.Has(LabelResidential) {
		t.Fatalf("explicit homeowner mention must include Residential, got %v", res.Labels)
	}
	found := false
	for _, line := range res.Evidence[LabelResidential] {
		if strings.Contains(line, "auto-include") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected auto-include evidence, got %v", res.Evidence[LabelResidential])
	}
}

func TestClassifyFloorFallback(t *testing.T) {
	c := &Classifier{
		Rules: []LabelRule{
			{Label: "A", Phrases: mustPhrases([]struct{ pat string; wt float64 }{{`alpha`, 0.9}}), Threshold: 5.0},
			{Label: "B", Phrases: mustPhrases([]struct{ pat string; wt float64 }{{`beta`, 0.5}}), Threshold: 5.0},
		},
		Floor: 0.8,
	}
	res := c.Classify([]Page{{URL: "u", Text: "alpha beta"}})
	if len(res.Labels) != 1 || res.Labels[0] != "A" {
		t.Fatalf("floor fallback must admit only the best label, got %v", res.Labels)
	}

	// Best score below the floor yields nothing.
	res = c.Classify([]Page{{URL: "u", Text: "beta"}})
	if len(res.Labels) != 0 {
		t.Fatalf("best below floor must yield no labels, got %v", res.Labels)
	}
}

func TestClassifyFloorSkippedWhenThresholdMet(t *testing.T) {
	c := &Classifier{
		Rules: []LabelRule{
			{Label: "A", Phrases: mustPhrases([]struct{ pat string; wt float64 }{{`alpha`, 2.0}}), Threshold: 1.0},
			{Label: "B", Phrases: mustPhrases([]struct{ pat string; wt float64 }{{`beta`, 0.9}}), Threshold: 5.0},
		},
		Floor: 0.8,
	}
	res := c.Classify([]Page{{URL: "u", Text: "alpha beta"}})
	if len(res.Labels) != 1 || res.Labels[0] != "A" {
		t.Fatalf("floor must not fire once a threshold is met, got %v", res.Labels)
	}
}

func TestClassifyURLBoost(t *testing.T) {
	c := &Classifier{
		Rules: []LabelRule{{
			Label:     "Commercial",
			Phrases:   mustPhrases([]struct{ pat string; wt float64 }{{`(?i)\bcommercial\b`, 1.0}}),
			Threshold: 1.4,
		}},
		URLBoosts: []URLBoost{{regexp.MustCompile(`(?i)/commercial`), 1.5}},
	}
	// 1.0 alone misses the threshold; the path boost lifts it to 1.5.
	res := c.Classify([]Page{{URL: "https://x.com/commercial", Text: "commercial work"}})
	if !res.Has("Commercial") {
		t.Fatalf("url boost should push the score over the threshold, got %v", res.Labels)
	}
	res = c.Classify([]Page{{URL: "https://x.com/about", Text: "commercial work"}})
	if res.Has("Commercial") {
		t.Fatalf("without the boost the label must be excluded, got %v", res.Labels)
	}
}

func TestClassifyEvidenceCap(t *testing.T) {
	text := strings.Repeat("residential siding. ", 3)
	pages := make([]Page, 15)
	for i := range pages {
		pages[i] = Page{URL: "https://x.com", Text: text}
	}

	// The cap includes the auto-include line: 1 + 4 scored lines.
	res := NewVerticalsClassifier(false).Classify(pages)
	if got := len(res.Evidence[LabelResidential]); got != 5 {
		t.Fatalf("evidence lines = %d, want 5", got)
	}

	// Debug mode raises the cap to 12 but never exceeds it.
	res = NewVerticalsClassifier(true).Classify(pages)
	if got := len(res.Evidence[LabelResidential]); got != 12 {
		t.Fatalf("debug evidence lines = %d, want 12", got)
	}
}

func TestVerticalsClassifierLabels(t *testing.T) {
	c := NewVerticalsClassifier(false)
	res := c.Classify([]Page{
		{URL: "https://acme.com", Text: "Commercial and residential roofing. Insurance claims welcome."},
	})
	for _, want := range []string{LabelCommercial, LabelInsurance, LabelResidential} {
		if !res.Has(want) {
			t.Fatalf("missing %q in %v", want, res.Labels)
		}
	}
	// Labels come back sorted.
	if res.Labels[0] != LabelCommercial || res.Labels[2] != LabelResidential {
		t.Fatalf("labels not sorted: %v", res.Labels)
	}
}

func TestClassifyEmptyPages(t *testing.T) {
	res := NewVerticalsClassifier(false).Classify(nil)
	if len(res.Labels) != 0 {
		t.Fatalf("no pages must yield no labels, got %v", res.Labels)
	}
}
