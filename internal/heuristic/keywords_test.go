package heuristic

import "testing"

func TestTopKeywords(t *testing.T) {
	text := "Roofing roofing ROOFING siding siding gutters. The and for with! 123 ab"
	got := TopKeywords(text, 10)
	want := []string{"roofing", "siding", "gutters"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopKeywordsTopN(t *testing.T) {
	got := TopKeywords("alpha alpha bravo bravo charlie delta echo foxtrot", 2)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 entries", got)
	}
	if got[0] != "alpha" || got[1] != "bravo" {
		t.Fatalf("got %v", got)
	}
}

func TestTopKeywordsTiesKeepFirstSeen(t *testing.T) {
	got := TopKeywords("zulu yankee zulu yankee xray", 3)
	if got[0] != "zulu" || got[1] != "yankee" || got[2] != "xray" {
		t.Fatalf("got %v", got)
	}
}

func TestTopKeywordsFilters(t *testing.T) {
	// Stopwords, short tokens, and digits never surface.
	if got := TopKeywords("the and for you are our 123 cat dog", 10); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
	if got := TopKeywords("", 10); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
