package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

var (
	// cardHeadingRe matches repeated "### Jane Doe" card headings with an
	// optional title on the following line.
	cardHeadingRe = regexp.MustCompile(
		`(?m)^#{2,4}\s+([A-Z][a-zA-Z'\-]+ [A-Z][a-zA-Z'\-]+(?: [A-Z][a-zA-Z'\-]+)?)\s*\n+\**([A-Z][^\n*#]{2,60})?`)

	// cardSelectors are the class fragments youth-org team pages use for
	// their staff card grids.
	cardSelectors = ".team-member, .staff-card, .card, .bio, .person"
)

// YouthOrgExtractor parses youth-activity organization team pages
// (camps, scouting councils, after-school programs), which present
// staff as repeating card blocks of name plus role.
type YouthOrgExtractor struct {
	pageTitle string
}

// NewYouthOrgExtractor creates the youth-organization extractor.
func NewYouthOrgExtractor(pageTitle string) *YouthOrgExtractor {
	return &YouthOrgExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (y *YouthOrgExtractor) Kind() model.SourceType { return model.SourceYouthOrg }

// Extract implements Extractor.
func (y *YouthOrgExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	if isListing(content) {
		return listingStubs(content, model.SourceYouthOrg)
	}

	org := inferOrganization(content, y.pageTitle, pageURL)
	contacts := indexContacts(content)

	type card struct {
		name  string
		title string
		pos   int
	}
	var cards []card

	// HTML card grids first.
	if strings.Contains(content, "<div") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
			doc.Find(cardSelectors).Each(func(_ int, sel *goquery.Selection) {
				name := strings.TrimSpace(sel.Find("h2, h3, h4, .name").First().Text())
				title := strings.TrimSpace(sel.Find("p, .title, .role").First().Text())
				if name == "" {
					return
				}
				pos := strings.Index(content, name)
				if pos < 0 {
					pos = 0
				}
				cards = append(cards, card{name: name, title: title, pos: pos})
			})
		}
	}

	// Markdown card headings.
	for _, m := range cardHeadingRe.FindAllStringSubmatchIndex(content, -1) {
		c := card{name: content[m[2]:m[3]], pos: m[0]}
		if m[4] >= 0 {
			c.title = strings.TrimSpace(content[m[4]:m[5]])
		}
		cards = append(cards, c)
	}

	for _, c := range cards {
		contacts.registerNames(c.pos)
	}

	var prospects []model.Prospect
	seen := map[string]bool{}
	for _, c := range cards {
		if !validate.ValidName(c.name) {
			continue
		}
		key := strings.ToLower(c.name)
		if seen[key] {
			continue
		}
		seen[key] = true

		p := model.Prospect{
			Name:         c.name,
			Title:        c.title,
			Organization: org,
			Contact:      contacts.contactsNear(c.pos),
			SourceURL:    pageURL,
			SourceType:   model.SourceYouthOrg,
			BioExcerpt:   excerptAround(content, c.pos, 400),
		}
		if ectx.CategoryHint != "" {
			p.SpecialtyTags = append(p.SpecialtyTags, ectx.CategoryHint)
		}
		prospects = append(prospects, p)
	}

	return prospects
}
