package heuristic

import (
	"regexp"
	"sort"
	"strings"
)

var nonLetterRe = regexp.MustCompile(`[^a-z]+`)

// stopwords kept out of keyword frequency counts. A small list is enough
// for ranking marketing copy.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "with", "that", "this", "from", "your", "you",
		"are", "our", "have", "has", "was", "were", "will", "can", "not",
		"but", "all", "any", "about", "into", "more", "most", "other",
		"over", "such", "than", "then", "also", "they", "them", "their",
		"there", "here", "what", "when", "where", "why", "how", "who",
		"which", "within", "between", "been", "being", "out", "up", "down",
		"on", "in", "of", "to", "as", "by", "at", "it", "its", "a", "an",
		"or", "is", "we", "i", "me", "my", "ours",
	} {
		stopwords[w] = struct{}{}
	}
}

// TopKeywords ranks the page's words by frequency and returns the top n.
// Words are lowercased, split on non-letters, and must be at least four
// characters and not a stopword. Ties keep first-seen order.
func TopKeywords(text string, n int) []string {
	if text == "" || n <= 0 {
		return nil
	}
	tokens := strings.Fields(nonLetterRe.ReplaceAllString(strings.ToLower(text), " "))

	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, tok := range tokens {
		if len(tok) < 4 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}
