package enrich

import (
	"fmt"
	"sort"
)

// All returns every task keyed by name.
func All() map[string]Task {
	tasks := []Task{
		VerticalsTask{},
		NewGuaranteesTask(),
		NewFinancingTask(),
		NewSponsorshipsTask(),
		InsuranceVendorTask{},
		NewFacebookActiveTask(),
		NewLinkedInActiveTask(),
		NewTikTokActiveTask(),
		FollowersTask{},
		OrganicKeywordsTask{},
		TrafficTask{},
		YelpTask{},
		NewReviewsTask{},
		GoogleAdsTask{},
		MetaAdsTask{},
		AdSamplesTask{},
		BBBTask{},
	}
	m := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		m[t.Name()] = t
	}
	return m
}

// DefaultOrder is the full-batch execution order. Cheap homepage scans run
// first; headless-heavy lookups run last.
var DefaultOrder = []string{
	"target-verticals",
	"service-guarantees",
	"financing-options",
	"sponsorships",
	"insurance-vendor",
	"facebook-active",
	"linkedin-active",
	"tiktok-active",
	"organic-keywords",
	"followers-count",
	"website-traffic",
	"yelp-reviews",
	"ad-samples",
	"google-ads-active",
	"meta-ads-active",
	"new-reviews-30d",
	"bbb-accreditation",
}

// Select resolves task names to tasks, preserving order. An empty names
// list selects the default order.
func Select(names []string) ([]Task, error) {
	all := All()
	if len(names) == 0 {
		names = DefaultOrder
	}
	out := make([]Task, 0, len(names))
	for _, name := range names {
		t, ok := all[name]
		if !ok {
			known := make([]string, 0, len(all))
			for k := range all {
				known = append(known, k)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("unknown task %q (known: %v)", name, known)
		}
		out = append(out, t)
	}
	return out, nil
}
