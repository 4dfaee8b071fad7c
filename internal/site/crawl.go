package site

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is one fetched page's URL and extracted text. Pages live only for
// the duration of a single record's classification.
type Page struct {
	URL  string
	Text string
}

// Getter is the fetch surface the crawl helpers need. *Fetcher implements it.
type Getter interface {
	GetHTML(ctx context.Context, rawURL string) string
	GetText(ctx context.Context, rawURL string) string
}

// SeedPaths are the fixed candidate paths probed on every site in addition
// to discovered links.
var SeedPaths = []string{"/", "/services", "/industries", "/residential", "/commercial", "/insurance"}

// DiscoverTopicLinks parses anchors from homeHTML and keeps same-site links
// whose URL or anchor text contains any keyword, deduplicated by absolute
// URL and truncated at maxLinks in discovery order. One hop only.
func DiscoverTopicLinks(baseURL, homeHTML string, keywords []string, maxLinks int) []string {
	if homeHTML == "" || maxLinks <= 0 {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homeHTML))
	if err != nil {
		return nil
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		lowered = append(lowered, strings.ToLower(k))
	}

	var out []string
	seen := map[string]struct{}{}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if !sameRegisteredHost(abs.Host, base.Host) {
			return true
		}
		absStr := abs.String()
		hay := strings.ToLower(absStr)
		anchor := strings.ToLower(strings.Join(strings.Fields(s.Text()), " "))
		matched := false
		for _, k := range lowered {
			if strings.Contains(hay, k) || strings.Contains(anchor, k) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		if _, dup := seen[absStr]; dup {
			return true
		}
		seen[absStr] = struct{}{}
		out = append(out, absStr)
		return len(out) < maxLinks
	})
	return out
}

// CollectPages gathers (url, text) pairs for one record: the home page plus
// seed paths and discovered topic links, deduplicated, with a politeness
// delay between fetches.
func CollectPages(ctx context.Context, f Getter, baseURL, homeHTML string, keywords []string, maxLinks int, delay time.Duration) []Page {
	var pages []Page
	if homeHTML != "" {
		pages = append(pages, Page{URL: baseURL, Text: HTMLText(homeHTML)})
	} else if t := f.GetText(ctx, baseURL); t != "" {
		pages = append(pages, Page{URL: baseURL, Text: t})
	}

	var candidates []string
	seen := map[string]struct{}{baseURL: {}}
	for _, p := range SeedPaths {
		u := strings.TrimRight(baseURL, "/") + p
		if p == "/" {
			continue
		}
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			candidates = append(candidates, u)
		}
	}
	for _, u := range DiscoverTopicLinks(baseURL, homeHTML, keywords, maxLinks) {
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			candidates = append(candidates, u)
		}
	}

	for _, u := range candidates {
		if ctx.Err() != nil {
			break
		}
		if t := f.GetText(ctx, u); t != "" {
			pages = append(pages, Page{URL: u, Text: t})
		}
		pause(ctx, delay)
	}
	return pages
}

// CrawlStats summarizes a bounded breadth-first crawl of one site.
type CrawlStats struct {
	Pages      int
	TotalWords int
}

// CrawlSite walks same-site links breadth-first from baseURL, visiting at
// most maxPages pages, and counts pages and words.
func CrawlSite(ctx context.Context, f Getter, baseURL string, maxPages int, delay time.Duration) CrawlStats {
	var stats CrawlStats
	visited := map[string]struct{}{}
	queue := []string{baseURL}
	base, err := url.Parse(baseURL)
	if err != nil {
		return stats
	}

	for len(queue) > 0 && stats.Pages < maxPages {
		if ctx.Err() != nil {
			break
		}
		current := queue[0]
		queue = queue[1:]
		if _, dup := visited[current]; dup {
			continue
		}
		visited[current] = struct{}{}

		html := f.GetHTML(ctx, current)
		if html == "" {
			continue
		}
		stats.Pages++
		stats.TotalWords += len(strings.Fields(HTMLText(html)))

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				return
			}
			abs := base.ResolveReference(ref)
			abs.Fragment = ""
			if !sameRegisteredHost(abs.Host, base.Host) {
				return
			}
			absStr := abs.String()
			if _, dup := visited[absStr]; !dup {
				queue = append(queue, absStr)
			}
		})
		pause(ctx, delay)
	}
	return stats
}

// Score converts crawl stats into the rough traffic estimate:
// pages visited times average words per page. Deliberately not a real
// visits metric, only a consistent relative scale.
func (s CrawlStats) Score() int64 {
	if s.Pages == 0 {
		return 0
	}
	avg := float64(s.TotalWords) / float64(s.Pages)
	return int64(float64(s.Pages)*avg + 0.5)
}

func pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
