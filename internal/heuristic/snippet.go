package heuristic

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// snippetSelector names the elements where short marketing statements live.
const snippetSelector = "p,li,h1,h2,h3,h4,span"

const (
	snippetMinLen = 15
	snippetMaxLen = 240
)

// SnippetsFromHTML scans the document's short text elements for any of the
// keywords (case-insensitive containment) and returns up to max unique
// snippets in document order. Lines under 15 characters are dropped as nav
// noise; lines over 240 are truncated with an ellipsis.
func SnippetsFromHTML(html string, keywords []string, max int) []string {
	if html == "" || max <= 0 {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		lowered = append(lowered, strings.ToLower(k))
	}

	var snippets []string
	seen := map[string]struct{}{}
	doc.Find(snippetSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := strings.Join(strings.Fields(s.Text()), " ")
		if txt == "" {
			return true
		}
		hay := strings.ToLower(txt)
		matched := false
		for _, k := range lowered {
			if strings.Contains(hay, k) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		// Length limits count characters, not bytes, so multi-byte text
		// is never cut mid-rune.
		if utf8.RuneCountInString(txt) < snippetMinLen {
			return true
		}
		if utf8.RuneCountInString(txt) > snippetMaxLen {
			txt = truncateRunes(txt, snippetMaxLen-3) + "..."
		}
		if _, dup := seen[txt]; dup {
			return true
		}
		seen[txt] = struct{}{}
		snippets = append(snippets, txt)
		return len(snippets) < max
	})
	return snippets
}

// truncateRunes cuts s after n runes.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// JoinSnippets renders snippets as a single cell value,
// e.g. "100% Satisfaction Guaranteed | Always Free Estimates".
func JoinSnippets(snippets []string) string {
	return strings.Join(snippets, " | ")
}
