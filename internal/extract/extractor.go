// Package extract turns fetched page content into candidate prospect
// records. A fixed-order dispatcher picks one of six specialized
// extractors by URL shape, with a generic heuristic extractor as the
// guaranteed fallback.
package extract

import (
	"github.com/sells-group/prospect-cli/internal/model"
)

// Extractor parses raw page content into zero or more candidate
// prospects. Implementations are pure with respect to their inputs; a
// malformed block on the page skips that record, never the page.
type Extractor interface {
	Kind() model.SourceType
	Extract(content, pageURL string, ectx model.ExtractionContext) []model.Prospect
}
