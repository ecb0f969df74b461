package model

import "time"

// SourceType identifies the kind of page a prospect was extracted from.
type SourceType string

const (
	SourceClinicalDirectory SourceType = "clinical_directory"
	SourceMedicalRegistry   SourceType = "medical_registry"
	SourceTreatmentProgram  SourceType = "treatment_program"
	SourceDiplomaticMission SourceType = "diplomatic_mission"
	SourceYouthOrg          SourceType = "youth_org"
	SourceGeneric           SourceType = "generic"
)

// Contact holds the ways to reach a prospect. Email is always a personal
// address; generic inboxes (info@, contact@, ...) never land here.
type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Empty reports whether no contact channel is present.
func (c Contact) Empty() bool {
	return c.Email == "" && c.Phone == "" && c.Website == ""
}

// Prospect is the durable entity produced by the extraction pipeline.
// Records failing validation are dropped whole, never partially repaired.
type Prospect struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name"`
	Title         string     `json:"title,omitempty"`
	Organization  string     `json:"organization,omitempty"`
	SpecialtyTags []string   `json:"specialty_tags,omitempty"`
	Location      string     `json:"location,omitempty"`
	Contact       Contact    `json:"contact"`
	SourceURL     string     `json:"source_url"`
	SourceType    SourceType `json:"source_type"`
	BioExcerpt    string     `json:"bio_excerpt,omitempty"`
	FitScore      int        `json:"fit_score"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// Partial reports whether this is a listing-page stub carrying only a
// profile URL for the orchestrator to re-fetch.
func (p Prospect) Partial() bool {
	return p.Name == "" && p.SourceURL != ""
}

// SearchResult is a candidate link returned by the search collaborator.
// Snippet and Title survive as a fallback content source when every
// fetch strategy fails or the session breaker is tripped.
type SearchResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// FailureClass categorizes why a fetch produced no usable content.
type FailureClass string

const (
	FailureNone        FailureClass = ""
	FailureBlocked     FailureClass = "blocked"
	FailureRateLimited FailureClass = "rate_limited"
	FailureTransient   FailureClass = "transient"
	FailureThinContent FailureClass = "content_too_thin"
)

// FetchOutcome is the result of fetching one URL through the strategy
// escalation ladder. Consumed by the dispatcher and then discarded.
type FetchOutcome struct {
	URL          string
	Succeeded    bool
	StrategyUsed int // 1-4, 0 when no attempt was made
	RawContent   string
	PageTitle    string
	FailureClass FailureClass
	// Degraded marks an outcome synthesized from the search snippet after
	// the session breaker tripped or all strategies failed. Contacts
	// extracted from degraded content are discarded downstream.
	Degraded bool
}

// SourceHint biases extractor dispatch when the caller knows what kind
// of site a query targets.
type SourceHint string

const (
	HintDirectoryProfile  SourceHint = "directory_profile"
	HintClinicalRegistry  SourceHint = "clinical_registry"
	HintTreatmentProgram  SourceHint = "treatment_program"
	HintDiplomaticMission SourceHint = "diplomatic_mission"
	HintYouthActivityOrg  SourceHint = "youth_activity_org"
	HintUnknown           SourceHint = ""
)

// ExtractionContext carries request-level hints into the extractors.
type ExtractionContext struct {
	SourceHint   SourceHint
	CategoryHint string
}

// BatchReport is the caller-visible summary of one discovery batch.
type BatchReport struct {
	Query          string `json:"query"`
	Candidates     int    `json:"candidates"`
	Fetched        int    `json:"fetched"`
	Blocked        int    `json:"blocked"`
	SkippedInvalid int    `json:"skipped_invalid"`
	Saved          int    `json:"saved"`
	Duplicates     int    `json:"duplicates"`
}
