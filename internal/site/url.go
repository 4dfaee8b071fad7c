// Package site handles website URLs, page fetching, and link discovery.
package site

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/fieldops/prospector/internal/board"
)

var urlInTextRe = regexp.MustCompile(`(?i)https?://[^\s)>\]"']+`)

// WebsiteFromRecord extracts the raw website value for a record. For a typed
// link column the structured URL payload wins; the plain-text rendering is
// scanned as a fallback, then every other column's text.
func WebsiteFromRecord(rec board.Record, col board.Column) string {
	cv := rec.Value(col.ID)
	if cv != nil {
		if strings.EqualFold(col.Type, board.KindLink) {
			if u := linkURL(cv.Raw); u != "" {
				return u
			}
			if m := urlInTextRe.FindString(cv.Text); m != "" {
				return strings.TrimSpace(m)
			}
		} else if t := strings.TrimSpace(cv.Text); t != "" {
			return t
		}
	}
	for _, other := range rec.Values {
		if m := urlInTextRe.FindString(other.Text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func linkURL(raw string) string {
	if raw == "" {
		return ""
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.URL)
}

// BaseURL normalizes a raw website field to scheme://host, defaulting the
// scheme to https. Returns "" when no resolvable host is present.
func BaseURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		host = u.Path
	}
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if colon := strings.Index(host, ":"); colon >= 0 {
		host = host[:colon]
	}
	host = strings.TrimSpace(host)
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}
	return u.Scheme + "://" + strings.ToLower(host)
}

// RegistrableDomain reduces a URL or bare hostname to its eTLD+1, stripping
// www, credentials, and ports. Returns "" when no host can be extracted.
func RegistrableDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if host == "" {
		host = strings.ToLower(u.Path)
	}
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if colon := strings.Index(host, ":"); colon >= 0 {
		host = host[:colon]
	}
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etld1
}

// sameRegisteredHost reports whether two hosts belong to the same site,
// insensitive to a leading www.
func sameRegisteredHost(a, b string) bool {
	trim := func(h string) string {
		return strings.TrimPrefix(strings.ToLower(h), "www.")
	}
	ta, tb := trim(a), trim(b)
	return ta != "" && ta == tb
}
