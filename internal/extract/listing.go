package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/prospect-cli/internal/model"
)

// profilePathMarkers identify links that point at an individual's
// profile rather than site furniture.
var profilePathMarkers = []string{
	"/therapists/", "/therapist/", "/profile/", "/profiles/",
	"/provider/", "/providers/", "/doctor/", "/doctors/",
	"/staff/", "/team/", "/people/", "/bio/", "/member/",
}

var markdownLinkRe = regexp.MustCompile(`\[[^\]]{2,80}\]\((https?://[^)\s]+)\)`)

// listingThreshold is the number of profile-shaped links past which a
// page is treated as a listing instead of a single profile.
const listingThreshold = 3

// profileLinks collects the profile-shaped link targets on a page,
// handling both markdown and raw HTML content.
func profileLinks(content string) []string {
	var links []string
	seen := map[string]bool{}

	add := func(href string) {
		if !profileShaped(href) || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	}

	for _, m := range markdownLinkRe.FindAllStringSubmatch(content, -1) {
		add(m[1])
	}

	if strings.Contains(content, "<a ") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
			doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
				if href, ok := sel.Attr("href"); ok && strings.HasPrefix(href, "http") {
					add(href)
				}
			})
		}
	}

	return links
}

func profileShaped(href string) bool {
	lower := strings.ToLower(href)
	for _, marker := range profilePathMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// isListing reports whether the content looks like a roster/listing page
// with multiple individual profiles behind it.
func isListing(content string) bool {
	return len(profileLinks(content)) >= listingThreshold
}

// listingStubs converts a listing page into partial records carrying
// only the profile URL, signaling the orchestrator to re-fetch each
// profile individually.
func listingStubs(content string, sourceType model.SourceType) []model.Prospect {
	var stubs []model.Prospect
	for _, link := range profileLinks(content) {
		stubs = append(stubs, model.Prospect{
			SourceURL:  link,
			SourceType: sourceType,
		})
	}
	return stubs
}
