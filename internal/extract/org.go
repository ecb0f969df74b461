package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/prospect-cli/internal/validate"
)

var (
	practiceLabelRe = regexp.MustCompile(`(?i)(?:practice name|organization|clinic|agency)\s*:\s*([A-Z][^\n.,|]{2,60})`)
	headerOrgRe     = regexp.MustCompile(`(?m)^#{1,3}\s+((?:[A-Z][a-zA-Z'&\-]+\s+){1,4}[A-Z][a-zA-Z'&\-]+)\s*$`)

	// titleSuffixSeps split a page title into name/site segments.
	titleSuffixSeps = []string{" | ", " — ", " – ", " - "}
)

// inferOrganization resolves the organization behind a page, in priority
// order: structured metadata, page title with boilerplate stripped,
// header text, labeled "Practice Name:" patterns, and the domain as a
// last resort. Every candidate is gated by the organization heuristic.
func inferOrganization(content, pageTitle, pageURL string) string {
	if org := metaSiteName(content); accept(org) {
		return org
	}
	if org := orgFromTitle(pageTitle); accept(org) {
		return org
	}
	if org := orgFromHeader(content); accept(org) {
		return org
	}
	if m := practiceLabelRe.FindStringSubmatch(content); m != nil {
		if org := strings.TrimSpace(m[1]); accept(org) {
			return org
		}
	}
	if org := orgFromDomain(pageURL); accept(org) {
		return org
	}
	return ""
}

func accept(org string) bool {
	return org != "" && validate.ValidOrganization(org)
}

// metaSiteName pulls og:site_name when the content is raw HTML.
func metaSiteName(content string) string {
	if !strings.Contains(content, "<meta") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	name, _ := doc.Find(`meta[property="og:site_name"]`).Attr("content")
	return strings.TrimSpace(name)
}

// orgFromTitle strips the boilerplate suffix from a page title and
// returns the site segment. "Jane Doe | Lakeside Counseling" yields
// "Lakeside Counseling"; single-segment titles pass through.
func orgFromTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	for _, sep := range titleSuffixSeps {
		if i := strings.LastIndex(title, sep); i >= 0 {
			return strings.TrimSpace(title[i+len(sep):])
		}
	}
	return title
}

// orgFromHeader finds a markdown heading of 2-5 capitalized words.
func orgFromHeader(content string) string {
	if m := headerOrgRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// orgFromDomain title-cases the registrable label of the host:
// "lakesidecounseling.org" yields "Lakesidecounseling".
func orgFromDomain(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return ""
	}
	return strings.ToUpper(host[:1]) + host[1:]
}
