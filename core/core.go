// Package core ingests repositories and turns them into year reports.
package core

import (
	"context"
	"slices"
	"time"

	"github.com/baijiangliang/year2018/core/agg"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/internal/outwriter"
	"github.com/baijiangliang/year2018/schema"
)

// ExecutorFunc defines the function signature for executing different reports.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// GetSummaryResults ingests the configured repositories and builds the headline report.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (schema.SummaryReport, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return schema.SummaryReport{}, err
	}
	return BuildSummary(cfg, a), nil
}

// GetLanguagesResults ranks the languages the user wrote.
func GetLanguagesResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.LanguageShare, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return LanguageShares(a), nil
}

// GetMergesResults returns the user's display name and merge counts per collaborator.
func GetMergesResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (string, map[string]schema.MergeStat, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return "", nil, err
	}
	stats, err := a.MergeStat(ctx)
	if err != nil {
		return "", nil, err
	}
	return UserName(cfg, a), stats, nil
}

// GetDaysResults returns every active day in date order.
func GetDaysResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.DayStat, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return a.SortedDays(), nil
}

// GetHoursResults returns the 24 hour buckets of user commits.
func GetHoursResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.HourStat, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return HourStats(a), nil
}

// GetCommitsResults returns the user commits across all repositories.
func GetCommitsResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]*schema.Commit, error) {
	a, err := Ingest(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return slices.Clone(a.UserCommits()), nil
}

// GetMergeGraph builds the collaboration graph around the user.
func GetMergeGraph(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*agg.MergeGraph, error) {
	name, stats, err := GetMergesResults(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return agg.NewMergeGraph(name, stats), nil
}

// ExecuteSummary prints the headline report.
// It serves as the main entry point for the 'summary' command.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := GetSummaryResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummary(report, cfg, time.Since(start))
}

// ExecuteLanguages prints the language ranking.
func ExecuteLanguages(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	langs, err := GetLanguagesResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLanguages(langs, cfg, time.Since(start))
}

// ExecuteMerges prints the merge partners.
func ExecuteMerges(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	name, stats, err := GetMergesResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMerges(name, stats, cfg, time.Since(start))
}

// ExecuteDays prints per-day activity.
func ExecuteDays(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	days, err := GetDaysResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDays(days, cfg, time.Since(start))
}

// ExecuteHours prints the hour-of-day histogram.
func ExecuteHours(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	hours, err := GetHoursResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHours(hours, cfg, time.Since(start))
}

// ExecuteCommits exports the user commits.
func ExecuteCommits(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	commits, err := GetCommitsResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCommits(commits, cfg, time.Since(start))
}
