package site

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/fieldops/prospector/internal/metrics"
)

// FetcherConfig controls collector behavior.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher issues single GET requests with a browser-like identity. Remote
// failure is "signal absent": GetHTML and GetText return "" rather than an
// error, and the caller degrades to its negative default.
type Fetcher struct {
	cfg           FetcherConfig
	baseCollector *colly.Collector
}

// NewFetcher builds a Fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	c.WithTransport(newHTTPTransport())
	return &Fetcher{cfg: cfg, baseCollector: c}
}

// GetHTML fetches one URL and returns the body when it is an HTML document.
func (f *Fetcher) GetHTML(ctx context.Context, rawURL string) string {
	body, contentType, err := f.fetch(ctx, rawURL)
	if err != nil {
		metrics.ObservePageFetch("error")
		return ""
	}
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		metrics.ObservePageFetch("skipped")
		return ""
	}
	metrics.ObservePageFetch("ok")
	return string(body)
}

// GetText fetches one URL and returns its visible text with script, style,
// and noscript content stripped.
func (f *Fetcher) GetText(ctx context.Context, rawURL string) string {
	html := f.GetHTML(ctx, rawURL)
	if html == "" {
		return ""
	}
	return HTMLText(html)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		body        []byte
		contentType string
		fetchErr    error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
		contentType = r.Headers.Get("Content-Type")
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, "", fmt.Errorf("visit %s: %w", rawURL, err)
		}
		if fetchErr != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
		}
		return body, contentType, nil
	}
}

// textBearingSelector names the elements whose text participates in keyword
// search. Matches the elements the heuristics were tuned against.
const textBearingSelector = "h1,h2,h3,p,li,a,span,strong,em"

// HTMLText strips script/style/noscript content and joins the text of the
// text-bearing elements with single spaces.
func HTMLText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script,style,noscript").Remove()
	var parts []string
	doc.Find(textBearingSelector).Each(func(_ int, s *goquery.Selection) {
		t := strings.Join(strings.Fields(s.Text()), " ")
		if t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
