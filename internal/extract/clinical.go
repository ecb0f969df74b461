package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

var (
	// clinicalHeadingRe matches profile headers like
	// "# Jane Doe, LCSW, LMFT" with one or more trailing credentials.
	clinicalHeadingRe = regexp.MustCompile(
		`(?m)^#{1,2}\s+([A-Z][a-zA-Z'\-]+(?: [A-Z][a-zA-Z'\-]?\.?)? [A-Z][a-zA-Z'\-]+)((?:\s*,\s*[A-Z][a-zA-Z\-]{1,6})*)\s*$`)

	// locationRe wants "City, ST" where every word of the city is
	// capitalized, so prose like "moved to the area, NY" cannot match.
	locationRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+){0,2},\s*[A-Z]{2})\b\s*\d{0,5}`)

	specialtyLineRe = regexp.MustCompile(`(?i)(?:specialties|specializes in|focus areas?)\s*:?\s*([^\n]{3,120})`)
)

// ClinicalDirectoryExtractor parses therapist-directory profile pages,
// which carry a credentialed name heading, a labeled specialty block,
// and display phone markup near the top of the profile.
type ClinicalDirectoryExtractor struct {
	pageTitle string
}

// NewClinicalDirectoryExtractor creates the clinical-directory extractor.
func NewClinicalDirectoryExtractor(pageTitle string) *ClinicalDirectoryExtractor {
	return &ClinicalDirectoryExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (c *ClinicalDirectoryExtractor) Kind() model.SourceType { return model.SourceClinicalDirectory }

// Extract implements Extractor.
func (c *ClinicalDirectoryExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	if isListing(content) {
		return listingStubs(content, model.SourceClinicalDirectory)
	}

	m := clinicalHeadingRe.FindStringSubmatchIndex(content)
	if m == nil {
		// Profile without a markdown heading: fall back to the strict
		// credential layer on the body.
		hits := findCredentialedNames(content)
		if len(hits) == 0 {
			return nil
		}
		return c.fromHit(hits[0], content, pageURL, ectx)
	}

	name := content[m[2]:m[3]]
	credentials := splitCredentials(content[m[4]:m[5]])

	hit := nameHit{name: name, pos: m[0]}
	if len(credentials) > 0 {
		hit.credential = credentials[0]
	}
	prospects := c.fromHit(hit, content, pageURL, ectx)
	for i := range prospects {
		prospects[i].SpecialtyTags = mergeTags(prospects[i].SpecialtyTags, credentials)
	}
	return prospects
}

func (c *ClinicalDirectoryExtractor) fromHit(hit nameHit, content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	if !validate.ValidName(hit.name) {
		return nil
	}

	p := model.Prospect{
		Name:         hit.name,
		Organization: inferOrganization(content, c.pageTitle, pageURL),
		SourceURL:    pageURL,
		SourceType:   model.SourceClinicalDirectory,
		BioExcerpt:   excerptAround(content, hit.pos, 400),
		Contact: model.Contact{
			Email: firstEmail(content),
			Phone: firstPhone(content),
		},
	}
	if hit.credential != "" {
		p.SpecialtyTags = append(p.SpecialtyTags, hit.credential)
	}
	if m := specialtyLineRe.FindStringSubmatch(content); m != nil {
		p.SpecialtyTags = mergeTags(p.SpecialtyTags, splitSpecialties(m[1]))
	}
	if m := locationRe.FindStringSubmatch(content); m != nil {
		p.Location = strings.TrimSpace(m[1])
	}
	if ectx.CategoryHint != "" {
		p.SpecialtyTags = mergeTags(p.SpecialtyTags, []string{ectx.CategoryHint})
	}
	return []model.Prospect{p}
}

// splitCredentials parses ", LCSW, LMFT" into its tokens.
func splitCredentials(s string) []string {
	var creds []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			creds = append(creds, part)
		}
	}
	return creds
}

// splitSpecialties breaks a labeled specialty line on commas and
// semicolons, keeping short phrases only.
func splitSpecialties(s string) []string {
	var tags []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		part = strings.TrimSpace(part)
		if part != "" && len(strings.Fields(part)) <= 4 {
			tags = append(tags, part)
		}
	}
	return tags
}

// mergeTags appends additions that are not already present
// (case-insensitive).
func mergeTags(tags, additions []string) []string {
	seen := map[string]bool{}
	for _, t := range tags {
		seen[strings.ToLower(t)] = true
	}
	for _, a := range additions {
		if key := strings.ToLower(a); !seen[key] {
			seen[key] = true
			tags = append(tags, a)
		}
	}
	return tags
}
