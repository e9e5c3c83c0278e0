package core

import (
	"context"
	"fmt"
	"os"

	"github.com/baijiangliang/year2018/core/agg"
	"github.com/baijiangliang/year2018/core/gitlog"
	"github.com/baijiangliang/year2018/core/history"
	"github.com/baijiangliang/year2018/core/linguist"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/sourcegraph/conc/pool"
)

// Ingest resolves the configured repositories, reads their histories in
// parallel and returns an aggregator over them. Repositories that fail are
// logged and left out. mgr may be nil to bypass the cache.
func Ingest(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*agg.Aggregator, error) {
	paths, err := ResolveRepos(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	tables, err := linguist.LoadTables(cfg.LanguagesFile)
	if err != nil {
		return nil, err
	}
	opts := history.Options{
		Tracked:    cfg.Identities,
		Begin:      cfg.Begin,
		End:        cfg.End,
		Summarizer: gitlog.NewSummarizer(linguist.New(tables), cfg.Thresholds),
	}
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}

	histories, err := readHistories(ctx, cfg, client, store, paths, opts, tables.Fingerprint())
	if err != nil {
		return nil, err
	}
	return agg.New(histories, cfg.Identities, cfg.Location), nil
}

// readHistories loads every path with at most cfg.Workers goroutines. The
// result keeps input order, with nil for repositories that failed.
func readHistories(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, paths []string, opts history.Options, tablesKey string) ([]*history.History, error) {
	progress := &tracker{}
	if !shouldSuppressProgress(ctx) {
		progress = newTracker(os.Stderr, len(paths))
	}
	defer progress.Finish()

	workers := cfg.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}
	histories := make([]*history.History, len(paths))
	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range paths {
		p.Go(func() {
			defer progress.Tick()
			if ctx.Err() != nil {
				return
			}
			h, err := cachedHistory(ctx, cfg, client, store, path, opts, tablesKey)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Skipping repository %s", path), err)
				return
			}
			histories[i] = h
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return histories, nil
}
