// Package fetch implements the resilient content fetcher: a four-rung
// strategy escalation per URL bounded by a session-scoped block breaker.
package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resilience"
	"github.com/sells-group/prospect-cli/pkg/firecrawl"
)

// Fetcher fetches one URL at a time through the strategy ladder. It is
// the only component that interprets collaborator errors; raw transport
// failures never leak past it.
type Fetcher struct {
	client firecrawl.Client
	cfg    Config
	ladder []Strategy
}

// NewFetcher creates a Fetcher over the given Firecrawl client.
func NewFetcher(client firecrawl.Client, cfg Config) *Fetcher {
	return &Fetcher{
		client: client,
		cfg:    cfg.withDefaults(),
		ladder: Ladder(),
	}
}

// Fetch resolves one search result into a FetchOutcome. When the session
// breaker is tripped no network attempt is made: the outcome degrades to
// the search snippet. Position is the URL's index within the batch and
// drives the pre-fetch delay.
func (f *Fetcher) Fetch(ctx context.Context, session *Session, sr model.SearchResult, position int) model.FetchOutcome {
	log := zap.L().With(zap.String("url", sr.Link))

	if session.Breaker().Tripped() {
		log.Debug("breaker tripped, degrading to snippet")
		return degradedOutcome(sr, model.FailureBlocked)
	}

	if err := session.sleep(ctx, session.preFetchDelay(position)); err != nil {
		return degradedOutcome(sr, model.FailureTransient)
	}

	var lastClass model.FailureClass
	for _, strat := range f.ladder {
		resp, err := f.attempt(ctx, session, strat, sr.Link)
		if err == nil {
			if !acceptContent(resp.Data.Markdown, f.cfg) {
				log.Debug("content too thin, escalating",
					zap.String("strategy", strat.Name),
					zap.Int("length", len(resp.Data.Markdown)),
				)
				lastClass = model.FailureThinContent
				continue
			}
			session.Breaker().RecordSuccess()
			log.Debug("fetch succeeded",
				zap.String("strategy", strat.Name),
				zap.Int("length", len(resp.Data.Markdown)),
			)
			return model.FetchOutcome{
				URL:          sr.Link,
				Succeeded:    true,
				StrategyUsed: strat.Ordinal,
				RawContent:   resp.Data.Markdown,
				PageTitle:    resp.Data.Title,
			}
		}

		switch {
		case resilience.IsBlocked(err):
			lastClass = model.FailureBlocked
			log.Warn("fetch blocked, escalating", zap.String("strategy", strat.Name))
			if sleepErr := session.sleep(ctx, session.blockBackoff()); sleepErr != nil {
				return f.finish(session, sr, model.FailureBlocked)
			}
		case resilience.IsRateLimited(err):
			// Escalating a rate-limited fetch only burns more quota.
			log.Warn("fetch rate limited, abandoning url", zap.String("strategy", strat.Name))
			return f.finish(session, sr, model.FailureRateLimited)
		default:
			lastClass = model.FailureTransient
			log.Debug("fetch failed, escalating",
				zap.String("strategy", strat.Name),
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			return f.finish(session, sr, lastClass)
		}
	}

	if lastClass == "" {
		lastClass = model.FailureTransient
	}
	log.Warn("all strategies exhausted", zap.String("failure_class", string(lastClass)))
	return f.finish(session, sr, lastClass)
}

// finish records the URL's final classification against the session
// breaker and builds the degraded outcome. The breaker counts one block
// per URL whose ladder ultimately failed blocked, not one per attempt,
// so a single stubborn URL cannot trip the breaker alone.
func (f *Fetcher) finish(session *Session, sr model.SearchResult, class model.FailureClass) model.FetchOutcome {
	if class == model.FailureBlocked {
		session.Breaker().RecordBlocked()
	}
	return degradedOutcome(sr, class)
}

// attempt runs one strategy, retrying once on a transient failure with a
// short fixed delay before giving the next rung a chance.
func (f *Fetcher) attempt(ctx context.Context, session *Session, strat Strategy, url string) (*firecrawl.ScrapeResponse, error) {
	retry := resilience.RetryConfig{
		MaxAttempts:    2,
		InitialBackoff: time.Second,
		Multiplier:     1.0,
		Sleep:          session.sleep,
	}

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*firecrawl.ScrapeResponse, error) {
		return f.scrape(ctx, strat, url)
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, resilience.NewTransientError(eris.New("fetch: scrape not successful"), 0)
	}
	return resp, nil
}

// scrape issues one request and classifies any API error into the
// blocked / rate-limited / transient taxonomy.
func (f *Fetcher) scrape(ctx context.Context, strat Strategy, url string) (*firecrawl.ScrapeResponse, error) {
	var resp *firecrawl.ScrapeResponse
	var err error
	if strat.Legacy {
		resp, err = f.client.ScrapeLegacy(ctx, firecrawl.LegacyScrapeRequest{
			URL: url,
			PageOptions: &firecrawl.LegacyPageOptions{
				WaitFor:         int(strat.WaitFor.Milliseconds()),
				OnlyMainContent: true,
			},
		})
	} else {
		resp, err = f.client.Scrape(ctx, firecrawl.ScrapeRequest{
			URL:     url,
			Formats: []string{"markdown"},
			WaitFor: int(strat.WaitFor.Milliseconds()),
			Actions: strat.Actions,
			Proxy:   strat.Proxy,
		})
	}
	if err != nil {
		return nil, classifyScrapeError(err)
	}
	return resp, nil
}

// classifyScrapeError maps collaborator errors onto the resilience
// taxonomy. Firecrawl surfaces target-site denials as API errors whose
// status or body carries the forbidden signature.
func classifyScrapeError(err error) error {
	var apiErr *firecrawl.APIError
	if errors.As(err, &apiErr) {
		return resilience.ClassifyHTTP(err, apiErr.StatusCode, apiErr.Body)
	}
	if resilience.IsTransient(err) {
		return err
	}
	// Unrecognized transport errors are treated as transient so the
	// ladder still gets a chance.
	return resilience.NewTransientError(err, 0)
}

// degradedOutcome builds the snippet-based fallback for a URL that was
// never fetched or could not be fetched.
func degradedOutcome(sr model.SearchResult, class model.FailureClass) model.FetchOutcome {
	return model.FetchOutcome{
		URL:          sr.Link,
		Succeeded:    false,
		RawContent:   sr.Snippet,
		PageTitle:    sr.Title,
		FailureClass: class,
		Degraded:     true,
	}
}
