package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

// diplomaticRoles anchor which table rows describe mission staff rather
// than office hours or visa categories.
var diplomaticRoles = []string{
	"ambassador", "consul", "attaché", "attache", "chargé", "charge",
	"counselor", "counsellor", "secretary", "minister", "envoy",
	"deputy chief", "cultural affairs", "press officer",
}

// markdownRowRe matches "| Jane Doe | Cultural Attaché |" table rows.
var markdownRowRe = regexp.MustCompile(`(?m)^\|\s*([^|\n]{4,50})\s*\|\s*([^|\n]{3,60})\s*\|`)

// DiplomaticMissionExtractor parses embassy and consulate staff pages,
// which list personnel in tables (HTML or markdown) of name/role pairs.
type DiplomaticMissionExtractor struct {
	pageTitle string
}

// NewDiplomaticMissionExtractor creates the diplomatic-mission extractor.
func NewDiplomaticMissionExtractor(pageTitle string) *DiplomaticMissionExtractor {
	return &DiplomaticMissionExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (d *DiplomaticMissionExtractor) Kind() model.SourceType { return model.SourceDiplomaticMission }

// Extract implements Extractor.
func (d *DiplomaticMissionExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	org := inferOrganization(content, d.pageTitle, pageURL)

	rows := d.htmlRows(content)
	rows = append(rows, d.markdownRows(content)...)

	type member struct {
		name  string
		title string
		pos   int
	}
	var members []member
	seen := map[string]bool{}
	for _, row := range rows {
		name, title := row[0], row[1]
		if !diplomaticTitle(title) {
			// Some missions swap the columns.
			if diplomaticTitle(name) {
				name, title = title, name
			} else {
				continue
			}
		}
		name = cleanCellName(name)
		if !validate.ValidName(name) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		pos := strings.Index(content, name)
		if pos < 0 {
			pos = 0
		}
		members = append(members, member{name: name, title: title, pos: pos})
	}

	contacts := indexContacts(content)
	for _, m := range members {
		contacts.registerNames(m.pos)
	}

	var prospects []model.Prospect
	for _, m := range members {
		p := model.Prospect{
			Name:         m.name,
			Title:        strings.TrimSpace(m.title),
			Organization: org,
			Contact:      contacts.contactsNear(m.pos),
			SourceURL:    pageURL,
			SourceType:   model.SourceDiplomaticMission,
		}
		if ectx.CategoryHint != "" {
			p.SpecialtyTags = append(p.SpecialtyTags, ectx.CategoryHint)
		}
		prospects = append(prospects, p)
	}

	return prospects
}

// htmlRows extracts two-column (name, role) pairs from HTML tables.
func (d *DiplomaticMissionExtractor) htmlRows(content string) [][2]string {
	if !strings.Contains(content, "<table") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var rows [][2]string
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		rows = append(rows, [2]string{
			strings.TrimSpace(cells.Eq(0).Text()),
			strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return rows
}

// markdownRows extracts name/role pairs from markdown tables, skipping
// header and separator rows.
func (d *DiplomaticMissionExtractor) markdownRows(content string) [][2]string {
	var rows [][2]string
	for _, m := range markdownRowRe.FindAllStringSubmatch(content, -1) {
		left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if strings.HasPrefix(left, "-") || strings.EqualFold(left, "name") {
			continue
		}
		rows = append(rows, [2]string{left, right})
	}
	return rows
}

func diplomaticTitle(s string) bool {
	lower := strings.ToLower(s)
	for _, role := range diplomaticRoles {
		if strings.Contains(lower, role) {
			return true
		}
	}
	return false
}

// cleanCellName strips honorific prefixes that government tables favor
// ("H.E. Mr. Jan Novak" to "Jan Novak").
func cleanCellName(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range []string{"H.E.", "H.E", "Mr.", "Mrs.", "Ms.", "Dr.", "Amb."} {
		name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
	}
	return name
}
