package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

var (
	// registryNameRe matches provider-registry headers like
	// "Dr. Jane Doe, MD" or "Jane Doe, MD - Psychiatry".
	registryNameRe = regexp.MustCompile(
		`(?:Dr\.\s+)?([A-Z][a-zA-Z'\-]+(?: [A-Z]\.?)? [A-Z][a-zA-Z'\-]+)\s*,\s*(MD|DO|NP|PA|PMHNP|PhD|PsyD)\b`)

	registrySpecialtyRe = regexp.MustCompile(`(?i)(?:specialty|specialties|board certified in)\s*:?\s*([^\n]{3,80})`)

	npiRe = regexp.MustCompile(`(?i)NPI\s*(?:number)?\s*:?\s*(\d{10})`)
)

// MedicalRegistryExtractor parses medical-provider registry pages
// (license registries, NPI-style records) where the record is a single
// provider with credential, specialty, and practice fields.
type MedicalRegistryExtractor struct {
	pageTitle string
}

// NewMedicalRegistryExtractor creates the medical-registry extractor.
func NewMedicalRegistryExtractor(pageTitle string) *MedicalRegistryExtractor {
	return &MedicalRegistryExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (m *MedicalRegistryExtractor) Kind() model.SourceType { return model.SourceMedicalRegistry }

// Extract implements Extractor.
func (m *MedicalRegistryExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	if isListing(content) {
		return listingStubs(content, model.SourceMedicalRegistry)
	}

	match := registryNameRe.FindStringSubmatchIndex(content)
	if match == nil {
		return nil
	}

	name := content[match[2]:match[3]]
	if !validate.ValidName(name) {
		return nil
	}
	credential := content[match[4]:match[5]]

	p := model.Prospect{
		Name:          name,
		Organization:  inferOrganization(content, m.pageTitle, pageURL),
		SpecialtyTags: []string{credential},
		SourceURL:     pageURL,
		SourceType:    model.SourceMedicalRegistry,
		BioExcerpt:    excerptAround(content, match[0], 400),
		Contact: model.Contact{
			Phone: firstPhone(content),
			Email: firstEmail(content),
		},
	}

	if sm := registrySpecialtyRe.FindStringSubmatch(content); sm != nil {
		p.SpecialtyTags = mergeTags(p.SpecialtyTags, splitSpecialties(sm[1]))
	}
	// Registry records carry an NPI; keep it as a tag so dedup across
	// registries has an anchor in the specialty set.
	if nm := npiRe.FindStringSubmatch(content); nm != nil {
		p.SpecialtyTags = mergeTags(p.SpecialtyTags, []string{"NPI " + nm[1]})
	}
	// Search past the name header so a "Doe, MD" credential is not
	// mistaken for a "City, ST" pair.
	if lm := locationRe.FindStringSubmatch(content[match[1]:]); lm != nil {
		p.Location = strings.TrimSpace(lm[1])
	}
	if ectx.CategoryHint != "" {
		p.SpecialtyTags = mergeTags(p.SpecialtyTags, []string{ectx.CategoryHint})
	}

	return []model.Prospect{p}
}
