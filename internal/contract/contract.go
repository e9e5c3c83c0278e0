// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/baijiangliang/year2018/schema"
)

// GitClient defines the git operations needed to ingest a repository.
// This allows the ingestion logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository Discovery ---

	// IsWorkTree reports whether path is inside a non-bare git working tree.
	IsWorkTree(ctx context.Context, path string) (bool, error)

	// ListBranches returns the short names of all local branches.
	ListBranches(ctx context.Context, repoPath string) ([]string, error)

	// GetRemoteURL returns the first URL of the "origin" remote, or "" if there is none.
	GetRemoteURL(ctx context.Context, repoPath string) (string, error)

	// GetRefHash returns the commit hash of a local branch, or of HEAD when
	// branch is empty.
	GetRefHash(ctx context.Context, repoPath, branch string) (string, error)

	// GetConfigEmail returns the configured user.email, or "" if unset.
	GetConfigEmail(ctx context.Context, repoPath string) (string, error)

	// Clone fetches a remote repository into dir.
	Clone(ctx context.Context, url, dir string) error

	// --- Commit Logs ---

	// GetLog returns the formatted log with numstat for commits in [begin, end)
	// on the given branch. An empty branch means the current branch.
	GetLog(ctx context.Context, repoPath, branch string, begin, end time.Time) ([]byte, error)

	// ShowCommit returns a single formatted record with numstat for the given commit id.
	ShowCommit(ctx context.Context, repoPath, id string) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetHistoryStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
