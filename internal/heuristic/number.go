package heuristic

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseNumberToken converts scraped count tokens to integers:
// "12.3K" -> 12300, "120K" -> 120000, "1.2M" -> 1200000, "123,456" -> 123456.
// The second return is false when the token does not parse.
func ParseNumberToken(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	multiplier := 1.0
	switch raw[len(raw)-1] {
	case 'k', 'K':
		multiplier = 1_000
		raw = raw[:len(raw)-1]
	case 'm', 'M':
		multiplier = 1_000_000
		raw = raw[:len(raw)-1]
	}
	clean := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	base, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(base * multiplier)), true
}

// FirstNumberToken tries patterns in priority order against text and parses
// the first capture group of the first pattern that both matches and yields
// a valid number token.
func FirstNumberToken(text string, patterns ...*regexp.Regexp) (int64, bool) {
	for _, rx := range patterns {
		m := rx.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if n, ok := ParseNumberToken(m[1]); ok {
			return n, true
		}
	}
	return 0, false
}
