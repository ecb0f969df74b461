// Package store persists discovered prospects. Two backends are
// provided: SQLite for local single-user runs and Postgres for shared
// deployments.
package store

import (
	"context"
	"strings"

	"github.com/sells-group/prospect-cli/internal/dedup"
	"github.com/sells-group/prospect-cli/internal/model"
)

// SaveResult reports what happened to a record handed to SaveProspect.
type SaveResult string

const (
	// SaveResultSaved means a new row was written.
	SaveResultSaved SaveResult = "saved"
	// SaveResultDuplicate means an existing row already carried the
	// record's identity key and nothing was written.
	SaveResultDuplicate SaveResult = "skipped_duplicate"
)

// ProspectFilter specifies criteria for listing prospects.
type ProspectFilter struct {
	SourceType model.SourceType `json:"source_type,omitempty"`
	MinScore   int              `json:"min_score,omitempty"`
	Limit      int              `json:"limit,omitempty"`
	Offset     int              `json:"offset,omitempty"`
}

// Store defines the persistence interface for the discovery pipeline.
type Store interface {
	SaveProspect(ctx context.Context, p model.Prospect) (SaveResult, error)
	ListProspects(ctx context.Context, filter ProspectFilter) ([]model.Prospect, error)
	CountProspects(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// identityKey returns the dedup key stored alongside the record. Records
// with neither an email nor a name (listing stubs saved as partials) key
// on their source URL so re-running a batch stays idempotent for them
// too.
func identityKey(p model.Prospect) string {
	if k := dedup.Key(p.Contact.Email, p.Name); k != "" {
		return k
	}
	return "url:" + strings.ToLower(strings.TrimSpace(p.SourceURL))
}
