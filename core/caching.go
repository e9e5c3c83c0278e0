package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/baijiangliang/year2018/core/history"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// currentCacheVersion defines the version of the cached snapshot layout
const currentCacheVersion = 1

// cacheMaxAge bounds how long a snapshot is trusted.
const cacheMaxAge = 7 * 24 * time.Hour

// cachedHistory loads a repository history, going through store when set.
// tablesKey identifies the language tables the summarizer was built from.
func cachedHistory(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, path string, opts history.Options, tablesKey string) (*history.History, error) {
	if store == nil {
		return history.New(ctx, client, path, opts)
	}

	branch := history.SelectBranch(ctx, client, path)
	key := generateCacheKey(ctx, cfg, client, path, branch, tablesKey)
	if snap := checkCacheHit(store, key, time.Now()); snap != nil {
		return history.FromSnapshot(client, *snap, opts), nil
	}
	return computeAndStore(ctx, client, store, key, path, branch, opts)
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(store contract.CacheStore, key string, now time.Time) *history.Snapshot {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || now.Sub(time.Unix(ts, 0)) > cacheMaxAge {
		return nil // stale or version mismatch
	}
	var snap history.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return &snap
}

// computeAndStore reads the history and stores its snapshot
func computeAndStore(ctx context.Context, client contract.GitClient, store contract.CacheStore, key, path, branch string, opts history.Options) (*history.History, error) {
	h, err := history.NewOnBranch(ctx, client, path, branch, opts)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(h.Snapshot())
	if err == nil {
		err = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	if err != nil {
		contract.Logger().WithField("repo", h.Name).WithError(err).Warn("Failed to cache history")
	}
	return h, nil
}

// generateCacheKey creates a unique key from everything a snapshot depends on
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient, path, branch, tablesKey string) string {
	// The tip of the branch that is read, so new commits invalidate the entry
	refHash, err := client.GetRefHash(ctx, path, branch)
	if err != nil {
		refHash = ""
	}
	emails := slices.Sorted(maps.Keys(cfg.Identities))

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s:%s:%s",
		path,
		cfg.Begin.Unix(),
		cfg.End.Unix(),
		branch,
		refHash,
		strings.Join(emails, ","),
		thresholdsKey(cfg.Thresholds),
		tablesKey,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

func thresholdsKey(t schema.Thresholds) string {
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d/%d/%d/%d",
		t.MaxFiles, t.MaxInsertions, t.MaxDeletions,
		t.AvgFiles, t.AvgInsertions, t.AvgDeletions,
		t.CommonFiles, t.CommonInsertions, t.CommonDeletions)
}
