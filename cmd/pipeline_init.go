package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/fetch"
	"github.com/sells-group/prospect-cli/internal/pipeline"
	"github.com/sells-group/prospect-cli/internal/score"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/pkg/firecrawl"
	"github.com/sells-group/prospect-cli/pkg/jina"
)

// pipelineEnv holds the initialized store, clients, and pipeline needed
// by the discover command.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the configured backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// initPipeline validates config, opens the store, and wires the batch
// pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	jinaOpts := []jina.Option{}
	if cfg.Jina.SearchBaseURL != "" {
		jinaOpts = append(jinaOpts, jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL))
	}
	jinaClient := jina.NewClient(cfg.Jina.Key, jinaOpts...)
	firecrawlClient := firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))

	fetchCfg := fetch.Config{
		BreakerThreshold: cfg.Fetch.BreakerThreshold,
		MinContentLen:    cfg.Fetch.MinContentLen,
		LargeContentLen:  cfg.Fetch.LargeContentLen,
	}

	scorer, err := score.New(nil)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	pl := pipeline.New(
		pipeline.NewSearcher(jinaClient),
		fetch.NewFetcher(firecrawlClient, fetchCfg),
		fetchCfg,
		scorer,
		st,
	)

	return &pipelineEnv{Store: st, Pipeline: pl}, nil
}
