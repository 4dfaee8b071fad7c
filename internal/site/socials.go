package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform host needles, checked by substring against href values.
const (
	NeedleFacebook  = "facebook.com"
	NeedleInstagram = "instagram.com"
	NeedleTikTok    = "tiktok.com"
	NeedleLinkedIn  = "linkedin.com"
)

// SocialLinks holds the first outbound profile link found per platform.
type SocialLinks struct {
	Facebook  string
	Instagram string
	TikTok    string
	LinkedIn  string
}

// FindSocialLinks scans anchors in document order and records the first
// href containing each platform's host needle. Later matches for an
// already-found platform are ignored.
func FindSocialLinks(html string) SocialLinks {
	var links SocialLinks
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return links
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		hay := strings.ToLower(href)
		switch {
		case links.Facebook == "" && strings.Contains(hay, NeedleFacebook):
			links.Facebook = href
		case links.Instagram == "" && strings.Contains(hay, NeedleInstagram):
			links.Instagram = href
		case links.TikTok == "" && strings.Contains(hay, NeedleTikTok):
			links.TikTok = href
		case links.LinkedIn == "" && strings.Contains(hay, NeedleLinkedIn):
			links.LinkedIn = href
		}
	})
	return links
}

// HasPlatformLink reports whether any anchor href or meta tag attribute in
// the document references the platform needle. Meta tags catch og:url style
// references on sites that only declare their profiles in page metadata.
func HasPlatformLink(html, needle string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	needle = strings.ToLower(needle)
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(strings.ToLower(href), needle) {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"content", "property", "name"} {
			if v, ok := s.Attr(attr); ok && strings.Contains(strings.ToLower(v), needle) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
