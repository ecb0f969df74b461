package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

var (
	// staffLineRe matches roster lines like
	// "Jane Doe, LCSW — Clinical Director" or "Jane Doe | Admissions".
	staffLineRe = regexp.MustCompile(
		`(?m)^\s*\*?\s*([A-Z][a-zA-Z'\-]+(?: [A-Z][a-zA-Z'\-]?\.?)? [A-Z][a-zA-Z'\-]+)` +
			`(?:\s*,\s*([A-Z][a-zA-Z\-]{1,6}))?` +
			`\s*(?:[—–|]|-{1,2})\s*([A-Z][^\n]{2,60})\s*$`)

	// staffSectionRe locates the team heading of a program page; the
	// roster window after it is sliced by index so we do not harvest
	// testimonials or blog bylines further down.
	staffSectionRe = regexp.MustCompile(`(?i)our (?:team|staff|clinicians)|leadership|meet the team|clinical team`)
)

// staffSectionLen caps how far past the team heading roster lines are
// harvested.
const staffSectionLen = 6000

// TreatmentProgramExtractor parses residential/treatment program sites,
// whose staff pages list several people as "Name, Credential — Title"
// roster lines within a team section.
type TreatmentProgramExtractor struct {
	pageTitle string
}

// NewTreatmentProgramExtractor creates the treatment-program extractor.
func NewTreatmentProgramExtractor(pageTitle string) *TreatmentProgramExtractor {
	return &TreatmentProgramExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (t *TreatmentProgramExtractor) Kind() model.SourceType { return model.SourceTreatmentProgram }

// Extract implements Extractor.
func (t *TreatmentProgramExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	if isListing(content) {
		return listingStubs(content, model.SourceTreatmentProgram)
	}

	section := content
	if loc := staffSectionRe.FindStringIndex(content); loc != nil {
		end := loc[1] + staffSectionLen
		if end > len(content) {
			end = len(content)
		}
		section = content[loc[1]:end]
	}

	org := inferOrganization(content, t.pageTitle, pageURL)
	matches := staffLineRe.FindAllStringSubmatchIndex(section, -1)

	contacts := indexContacts(section)
	for _, m := range matches {
		contacts.registerNames(m[0])
	}

	var prospects []model.Prospect
	seen := map[string]bool{}
	for _, m := range matches {
		name := section[m[2]:m[3]]
		if !validate.ValidName(name) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		p := model.Prospect{
			Name:         name,
			Title:        strings.TrimSpace(section[m[6]:m[7]]),
			Organization: org,
			Contact:      contacts.contactsNear(m[0]),
			SourceURL:    pageURL,
			SourceType:   model.SourceTreatmentProgram,
			BioExcerpt:   excerptAround(section, m[0], 400),
		}
		if m[4] >= 0 {
			p.SpecialtyTags = append(p.SpecialtyTags, section[m[4]:m[5]])
		}
		if ectx.CategoryHint != "" {
			p.SpecialtyTags = mergeTags(p.SpecialtyTags, []string{ectx.CategoryHint})
		}
		prospects = append(prospects, p)
	}

	// Roster-less program page: the generic credential layer still finds
	// individual clinicians mentioned in body copy.
	if len(prospects) == 0 {
		hits := findCredentialedNames(content)
		bodyContacts := indexContacts(content)
		for _, hit := range hits {
			bodyContacts.registerNames(hit.pos)
		}
		for _, hit := range hits {
			if !validate.ValidName(hit.name) {
				continue
			}
			prospects = append(prospects, model.Prospect{
				Name:          hit.name,
				Organization:  org,
				SpecialtyTags: []string{hit.credential},
				Contact:       bodyContacts.contactsNear(hit.pos),
				SourceURL:     pageURL,
				SourceType:    model.SourceTreatmentProgram,
				BioExcerpt:    excerptAround(content, hit.pos, 400),
			})
		}
	}

	return prospects
}
