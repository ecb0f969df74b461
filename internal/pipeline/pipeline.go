// Package pipeline orchestrates one discovery batch: search, fetch,
// extract, validate, score, persist. The stages run strictly in order
// and data flows only downstream; the one loop-back is listing pages,
// whose profile links are re-fetched through the same session.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/extract"
	"github.com/sells-group/prospect-cli/internal/fetch"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/score"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/internal/validate"
)

// DiscoverRequest describes one discovery batch.
type DiscoverRequest struct {
	Query    string
	Location string
	Category string
	// TargetRegions feed the geographic scoring bucket. Defaults to
	// [Location] when empty.
	TargetRegions []string
	SourceHint    model.SourceHint
	// Limit caps the number of candidate links taken from search.
	Limit int
}

// Pipeline wires the batch stages together. Construct once, Run per
// batch; each Run gets a fresh fetch session.
type Pipeline struct {
	searcher Searcher
	fetcher  *fetch.Fetcher
	fetchCfg fetch.Config
	scorer   *score.Scorer
	store    store.Store
}

// New assembles a Pipeline from its collaborators.
func New(searcher Searcher, fetcher *fetch.Fetcher, fetchCfg fetch.Config, scorer *score.Scorer, st store.Store) *Pipeline {
	return &Pipeline{
		searcher: searcher,
		fetcher:  fetcher,
		fetchCfg: fetchCfg,
		scorer:   scorer,
		store:    st,
	}
}

// Run executes one batch and returns its report. Search quota errors
// abort the batch; per-record extraction and validation failures only
// increment counters.
func (p *Pipeline) Run(ctx context.Context, req DiscoverRequest) (*model.BatchReport, error) {
	started := time.Now()
	query := buildQuery(req)
	log := zap.L().With(zap.String("query", query))

	results, err := p.searcher.Search(ctx, query, req.Limit)
	if err != nil {
		return nil, eris.Wrap(err, "search discovery")
	}

	report := &model.BatchReport{Query: query, Candidates: len(results)}
	session := fetch.NewSession(p.fetchCfg, req.SourceHint)
	params := score.Params{
		TargetRegions: req.TargetRegions,
		Category:      req.Category,
	}
	if len(params.TargetRegions) == 0 && req.Location != "" {
		params.TargetRegions = []string{req.Location}
	}
	ectx := model.ExtractionContext{
		SourceHint:   req.SourceHint,
		CategoryHint: req.Category,
	}

	visited := make(map[string]bool, len(results))
	position := 0

	for _, sr := range results {
		if visited[sr.Link] {
			continue
		}
		visited[sr.Link] = true

		outcome := p.fetcher.Fetch(ctx, session, sr, position)
		position++
		p.tally(report, outcome)

		prospects := p.extractOutcome(outcome, ectx)
		for _, candidate := range prospects {
			if candidate.Partial() {
				// Listing stub: fetch the profile page through the same
				// session. Stubs found on the profile page itself are
				// dropped, one level deep is enough.
				if visited[candidate.SourceURL] {
					continue
				}
				visited[candidate.SourceURL] = true

				profile := p.fetcher.Fetch(ctx, session,
					model.SearchResult{Link: candidate.SourceURL}, position)
				position++
				p.tally(report, profile)

				for _, pr := range p.extractOutcome(profile, ectx) {
					if pr.Partial() {
						continue
					}
					if err := p.finalize(ctx, pr, params, report); err != nil {
						return nil, err
					}
				}
				continue
			}
			if err := p.finalize(ctx, candidate, params, report); err != nil {
				return nil, err
			}
		}
	}

	log.Info("batch complete",
		zap.Int("candidates", report.Candidates),
		zap.Int("fetched", report.Fetched),
		zap.Int("blocked", report.Blocked),
		zap.Int("skipped_invalid", report.SkippedInvalid),
		zap.Int("saved", report.Saved),
		zap.Int("duplicates", report.Duplicates),
		zap.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// extractOutcome dispatches the outcome's content to an extractor.
// Degraded outcomes still yield records from the snippet text, but any
// contact details gleaned from it are discarded: a snippet is too little
// context to pair a person with an email.
func (p *Pipeline) extractOutcome(outcome model.FetchOutcome, ectx model.ExtractionContext) []model.Prospect {
	if outcome.RawContent == "" {
		return nil
	}

	ext := extract.Dispatch(outcome.URL, outcome.PageTitle, ectx.SourceHint)
	prospects := ext.Extract(outcome.RawContent, outcome.URL, ectx)

	if outcome.Degraded {
		for i := range prospects {
			prospects[i].Contact = model.Contact{}
		}
	}
	return prospects
}

// finalize validates, scores, and persists one extracted record. Store
// errors are fatal; validation failures only bump the skip counter.
func (p *Pipeline) finalize(ctx context.Context, candidate model.Prospect, params score.Params, report *model.BatchReport) error {
	candidate = validate.Scrub(candidate)
	if !validate.IsValid(candidate) {
		report.SkippedInvalid++
		return nil
	}
	if warnings := validate.Warnings(candidate); len(warnings) > 0 {
		zap.L().Debug("record warnings",
			zap.String("name", candidate.Name),
			zap.Strings("warnings", warnings),
		)
	}

	candidate.FitScore = p.scorer.Score(candidate, params)

	result, err := p.store.SaveProspect(ctx, candidate)
	if err != nil {
		return eris.Wrapf(err, "saving prospect %s", candidate.Name)
	}
	switch result {
	case store.SaveResultSaved:
		report.Saved++
	case store.SaveResultDuplicate:
		report.Duplicates++
	}
	return nil
}

func (p *Pipeline) tally(report *model.BatchReport, outcome model.FetchOutcome) {
	if outcome.Succeeded {
		report.Fetched++
	}
	if outcome.FailureClass == model.FailureBlocked {
		report.Blocked++
	}
}

// buildQuery folds the location and category into the search query the
// way a human would type it.
func buildQuery(req DiscoverRequest) string {
	parts := []string{strings.TrimSpace(req.Query)}
	if req.Category != "" && !strings.Contains(strings.ToLower(req.Query), strings.ToLower(req.Category)) {
		parts = append(parts, req.Category)
	}
	if req.Location != "" && !strings.Contains(strings.ToLower(req.Query), strings.ToLower(req.Location)) {
		parts = append(parts, req.Location)
	}
	return strings.Join(parts, " ")
}
