// Package outwriter renders reports as text tables, CSV, JSON, DOT or Parquet.
package outwriter

import (
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the headline report.
func (ow *OutWriter) WriteSummary(report schema.SummaryReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(report, cfg, duration)
}

// WriteLanguages prints the language ranking.
func (ow *OutWriter) WriteLanguages(langs []schema.LanguageShare, cfg *contract.Config, duration time.Duration) error {
	return PrintLanguages(langs, cfg, duration)
}

// WriteMerges prints the merge partners of userName.
func (ow *OutWriter) WriteMerges(userName string, stats map[string]schema.MergeStat, cfg *contract.Config, duration time.Duration) error {
	return PrintMerges(userName, stats, cfg, duration)
}

// WriteDays prints per-day activity.
func (ow *OutWriter) WriteDays(days []schema.DayStat, cfg *contract.Config, duration time.Duration) error {
	return PrintDays(days, cfg, duration)
}

// WriteHours prints the hour-of-day histogram.
func (ow *OutWriter) WriteHours(hours []schema.HourStat, cfg *contract.Config, duration time.Duration) error {
	return PrintHours(hours, cfg, duration)
}

// WriteCommits prints the user commits.
func (ow *OutWriter) WriteCommits(commits []*schema.Commit, cfg *contract.Config, duration time.Duration) error {
	return PrintCommits(commits, cfg, duration)
}
