// Package history holds the commit set of a single repository.
package history

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/baijiangliang/year2018/core/gitlog"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
	"github.com/sirupsen/logrus"
)

// PreferredBranch is read instead of the current branch when it exists.
const PreferredBranch = "master"

// Options carries the run settings a History needs.
type Options struct {
	Tracked    schema.IdentitySet
	Begin      time.Time
	End        time.Time
	Summarizer *gitlog.Summarizer
}

// History is the commit set of one repository within the run window.
type History struct {
	Name      string
	Path      string
	RemoteURL string
	Branch    string

	Commits     []*schema.Commit // log order
	UserCommits []*schema.Commit

	index   map[string]*schema.Commit
	client  contract.GitClient
	opts    Options
	mu      sync.Mutex
	fetched map[string]*schema.Commit
}

// New reads the history of the repository at path.
func New(ctx context.Context, client contract.GitClient, path string, opts Options) (*History, error) {
	return read(ctx, client, path, opts, func() string { return SelectBranch(ctx, client, path) })
}

// NewOnBranch reads the history of an already selected branch, "" being the
// current one.
func NewOnBranch(ctx context.Context, client contract.GitClient, path, branch string, opts Options) (*History, error) {
	return read(ctx, client, path, opts, func() string { return branch })
}

func read(ctx context.Context, client contract.GitClient, path string, opts Options, branch func() string) (*History, error) {
	ok, err := client.IsWorkTree(ctx, path)
	if err != nil || !ok {
		return nil, &contract.InvalidRepositoryError{Path: path, Err: err}
	}

	h := &History{
		Name:   filepath.Base(filepath.Clean(path)),
		Path:   path,
		client: client,
		opts:   opts,
	}
	h.Branch = branch()
	if url, err := client.GetRemoteURL(ctx, path); err == nil {
		h.RemoteURL = url
	}

	out, err := client.GetLog(ctx, path, h.Branch, opts.Begin, opts.End)
	if err != nil {
		return nil, fmt.Errorf("failed to read log of %s: %w", h.Name, err)
	}
	commits, err := gitlog.ParseLog(h.Name, out, opts.Tracked, opts.Summarizer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log of %s: %w", h.Name, err)
	}
	h.setCommits(commits)
	return h, nil
}

// SelectBranch returns PreferredBranch when the repository has it, else ""
// for the current branch.
func SelectBranch(ctx context.Context, client contract.GitClient, path string) string {
	branches, err := client.ListBranches(ctx, path)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Could not list branches of %s, using the current branch", path), err)
		return ""
	}
	if slices.Contains(branches, PreferredBranch) {
		return PreferredBranch
	}
	return ""
}

func (h *History) setCommits(commits []*schema.Commit) {
	h.Commits = commits
	h.UserCommits = nil
	h.index = make(map[string]*schema.Commit, len(commits))
	for _, c := range commits {
		h.index[c.ID] = c
		if h.opts.Tracked.Has(c.Email) {
			h.UserCommits = append(h.UserCommits, c)
		}
	}
}

// CommitByID returns the commit with the given id. Commits outside the
// window are fetched with git show. A commit that cannot be fetched or
// parsed yields nil and no error; only cancellation is reported.
func (h *History) CommitByID(ctx context.Context, id string) (*schema.Commit, error) {
	if c, ok := h.index[id]; ok {
		return c, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.fetched[id]; ok {
		return c, nil
	}

	log := contract.Logger().WithFields(logrus.Fields{"repo": h.Name, "commit": id})
	out, err := h.client.ShowCommit(ctx, h.Path, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WithError(err).Warn("Could not fetch commit")
		return nil, nil
	}
	blocks := gitlog.SplitRecords(out)
	if len(blocks) == 0 {
		log.Warn("Commit not found")
		return nil, nil
	}
	c, err := gitlog.ParseRecord(h.Name, blocks[0], h.opts.Tracked, h.opts.Summarizer)
	if err != nil {
		log.WithError(err).Warn("Could not parse commit")
		return nil, nil
	}
	if h.fetched == nil {
		h.fetched = map[string]*schema.Commit{}
	}
	h.fetched[id] = c
	return c, nil
}

// CommitSummary totals the user commits of this repository.
func (h *History) CommitSummary() schema.CommitSummary {
	s := schema.CommitSummary{Commits: len(h.UserCommits)}
	for _, c := range h.UserCommits {
		if c.IsMerge() {
			s.Merges++
		}
		s.Insert += c.CodeIns
		s.Delete += c.CodeDel
	}
	return s
}

// LanguageStat aggregates the per-commit language breakdown of user commits.
func (h *History) LanguageStat() map[string]schema.LanguageStat {
	stats := map[string]schema.LanguageStat{}
	for _, c := range h.UserCommits {
		for lang, churn := range c.LangStat {
			st := stats[lang]
			st.Commits++
			st.Insert += churn.Insert
			st.Delete += churn.Delete
			stats[lang] = st
		}
	}
	for lang, st := range stats {
		st.Weight = schema.Weight(st.Commits, st.Insert, st.Delete)
		stats[lang] = st
	}
	return stats
}

// Len returns the number of commits in the window.
func (h *History) Len() int {
	return len(h.Commits)
}
