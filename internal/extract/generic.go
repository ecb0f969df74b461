package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/validate"
)

// GenericExtractor is the fallback for pages no specialized predicate
// claims. Three heuristic layers: strict "Name, CREDENTIAL" and
// honorific regexes, then name inference from email locals (only when
// the first layer is empty), then proximity-based contact assignment so
// a multi-person page never cross-assigns contacts.
type GenericExtractor struct {
	pageTitle string
}

// NewGenericExtractor creates the generic heuristic extractor. The page
// title feeds organization inference.
func NewGenericExtractor(pageTitle string) *GenericExtractor {
	return &GenericExtractor{pageTitle: pageTitle}
}

// Kind implements Extractor.
func (g *GenericExtractor) Kind() model.SourceType { return model.SourceGeneric }

// Extract implements Extractor.
func (g *GenericExtractor) Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect {
	hits := findCredentialedNames(content)
	hits = append(hits, findHonorificNames(content)...)

	// Layer 2 only fires when the strict layers found nobody.
	if len(hits) == 0 {
		hits = namesFromEmails(content)
	}
	if len(hits) == 0 {
		return nil
	}

	contacts := indexContacts(content)
	for _, hit := range hits {
		contacts.registerNames(hit.pos)
	}
	org := inferOrganization(content, g.pageTitle, pageURL)

	var prospects []model.Prospect
	seen := map[string]bool{}
	for _, hit := range hits {
		if !validate.ValidName(hit.name) {
			continue
		}
		key := strings.ToLower(hit.name)
		if seen[key] {
			continue
		}
		seen[key] = true

		p := model.Prospect{
			Name:         hit.name,
			Organization: org,
			Contact:      contacts.contactsNear(hit.pos),
			SourceURL:    pageURL,
			SourceType:   model.SourceGeneric,
			BioExcerpt:   excerptAround(content, hit.pos, 400),
		}
		if hit.credential != "" {
			p.SpecialtyTags = append(p.SpecialtyTags, hit.credential)
		}
		if ectx.CategoryHint != "" {
			p.SpecialtyTags = append(p.SpecialtyTags, ectx.CategoryHint)
		}
		prospects = append(prospects, p)
	}

	zap.L().Debug("generic extraction complete",
		zap.String("url", pageURL),
		zap.Int("candidates", len(hits)),
		zap.Int("kept", len(prospects)),
	)
	return prospects
}
