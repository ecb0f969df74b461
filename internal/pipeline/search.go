package pipeline

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/pkg/jina"
)

// Searcher turns a query into candidate links. Implementations must
// surface quota errors unwrapped so the orchestrator can abort the
// batch instead of burning the remaining allowance on retries.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]model.SearchResult, error)
}

// jinaSearcher adapts the Jina search client to the pipeline, paging
// through results until count links are collected or results run out.
type jinaSearcher struct {
	client   jina.Client
	pageSize int
}

// NewSearcher wraps a Jina client as a Searcher.
func NewSearcher(client jina.Client) Searcher {
	return &jinaSearcher{client: client, pageSize: 10}
}

func (s *jinaSearcher) Search(ctx context.Context, query string, count int) ([]model.SearchResult, error) {
	if count <= 0 {
		count = s.pageSize
	}

	var out []model.SearchResult
	seen := make(map[string]bool)

	for page := 1; len(out) < count; page++ {
		resp, err := s.client.Search(ctx, query, jina.WithPage(page))
		if err != nil {
			var quota *jina.QuotaError
			if errors.As(err, &quota) {
				return nil, err
			}
			return nil, eris.Wrapf(err, "search page %d", page)
		}
		if len(resp.Data) == 0 {
			break
		}
		for _, r := range resp.Data {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			snippet := r.Description
			if snippet == "" {
				snippet = r.Content
			}
			out = append(out, model.SearchResult{
				Link:    r.URL,
				Title:   r.Title,
				Snippet: snippet,
			})
			if len(out) >= count {
				break
			}
		}
	}

	zap.L().Debug("search complete",
		zap.String("query", query),
		zap.Int("candidates", len(out)),
	)
	return out, nil
}
