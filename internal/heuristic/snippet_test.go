package heuristic

import (
	"strings"
	"testing"
	"unicode/utf8"
)

var guaranteeKeywords = []string{"guarantee", "guaranteed", "warranty", "satisfaction"}

func TestSnippetsFromHTML(t *testing.T) {
	html := `<html><body>
		<h1>Acme Roofing</h1>
		<p>100% Satisfaction Guaranteed on every job.</p>
		<li>Warranty</li>
		<p>We back our work with a lifetime workmanship warranty you can trust.</p>
		<p>100% Satisfaction Guaranteed on every job.</p>
		<span>Call today for a free estimate.</span>
	</body></html>`

	got := SnippetsFromHTML(html, guaranteeKeywords, 3)
	want := []string{
		"100% Satisfaction Guaranteed on every job.",
		"We back our work with a lifetime workmanship warranty you can trust.",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snippet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSnippetsShortLinesDropped(t *testing.T) {
	// "Warranty" matches but is under the minimum length.
	got := SnippetsFromHTML(`<p>Warranty</p>`, guaranteeKeywords, 3)
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestSnippetsLongLinesTruncated(t *testing.T) {
	long := "Our guarantee: " + strings.Repeat("quality work ", 30)
	got := SnippetsFromHTML("<p>"+long+"</p>", guaranteeKeywords, 3)
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	if len(got[0]) != 240 || !strings.HasSuffix(got[0], "...") {
		t.Fatalf("len = %d, suffix ok = %v", len(got[0]), strings.HasSuffix(got[0], "..."))
	}
}

func TestSnippetsTruncateOnRuneBoundary(t *testing.T) {
	// Accented text long enough that a byte-based cut would land inside a
	// two-byte rune.
	long := "Garantie de qualité " + strings.Repeat("résultats garantis é", 20)
	got := SnippetsFromHTML("<p>"+long+"</p>", []string{"garantie"}, 3)
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	if !utf8.ValidString(got[0]) {
		t.Fatalf("truncated snippet is invalid UTF-8: %q", got[0])
	}
	if utf8.RuneCountInString(got[0]) != 240 || !strings.HasSuffix(got[0], "...") {
		t.Fatalf("rune count = %d, suffix ok = %v",
			utf8.RuneCountInString(got[0]), strings.HasSuffix(got[0], "..."))
	}
}

func TestSnippetsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteString("<p>Guaranteed satisfaction on project number ")
		b.WriteByte(byte('0' + i))
		b.WriteString("</p>")
	}
	got := SnippetsFromHTML(b.String(), guaranteeKeywords, 3)
	if len(got) != 3 {
		t.Fatalf("got %d snippets, want 3", len(got))
	}
}

func TestJoinSnippets(t *testing.T) {
	got := JoinSnippets([]string{"100% Satisfaction Guaranteed", "Always Free Estimates"})
	if got != "100% Satisfaction Guaranteed | Always Free Estimates" {
		t.Fatalf("got %q", got)
	}
	if JoinSnippets(nil) != "" {
		t.Fatalf("empty join should be empty string")
	}
}
