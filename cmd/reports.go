package cmd

import (
	"github.com/baijiangliang/year2018/core"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd builds a command that runs one report after the shared setup.
func reportCmd(use, short, long string, run core.ExecutorFunc) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Args:    cobra.NoArgs,
		PreRunE: sharedSetupWrapper,
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(rootCtx, cfg, cacheManager); err != nil {
				contract.LogFatal("Cannot run "+use+" report", err)
			}
		},
	}
}

// summaryCmd prints the headline report.
var summaryCmd = reportCmd("summary",
	"Show the headline numbers of your year.",
	`Read every repository and print the year in one table.

Shows:
- Projects, commits, merges and changed lines
- Coding power, which rewards commits, lines and projects
- The repository you committed to most
- Your busiest day and your latest commit of the day
- Your favorite language and how your activity spreads over days

Examples:
  # Summarize the repositories next to the current one
  year2018 summary --email me@example.com

  # Summarize a given year of two repositories
  year2018 summary --year 2018 --repo ~/src/api --repo ~/src/web

  # Share the summary without names
  year2018 summary --encrypt --output json`,
	core.ExecuteSummary)

// languagesCmd ranks languages.
var languagesCmd = reportCmd("languages",
	"Rank the languages you wrote.",
	`Rank languages by weight: sixteen points per commit plus every added and deleted line.

Large generated changes are smoothed, and vendored directories are ignored.
Extensions and ignored directories can be extended with --languages-file.

Examples:
  year2018 languages --limit 5
  year2018 languages --output csv --output-file languages.csv`,
	core.ExecuteLanguages)

// mergesCmd lists merge partners.
var mergesCmd = reportCmd("merges",
	"Show who you merged work with.",
	`List the people whose work you merged and who merged yours.

People are grouped by the name part of their email.
Use --output dot to get the whole collaboration graph for Graphviz.

Examples:
  year2018 merges
  year2018 merges --output dot --output-file merges.dot && dot -Tsvg merges.dot > merges.svg`,
	core.ExecuteMerges)

// daysCmd prints daily activity.
var daysCmd = reportCmd("days",
	"Show your busiest days.",
	`Print your busiest days in the text format. The other formats export every active day in date order.

Examples:
  year2018 days --limit 20
  year2018 days --output parquet --output-file days.parquet`,
	core.ExecuteDays)

// hoursCmd prints the hour histogram.
var hoursCmd = reportCmd("hours",
	"Show what time of day you commit.",
	`Print a histogram of your commits over the 24 hours of the day, in --timezone.

Examples:
  year2018 hours
  year2018 hours --timezone Asia/Shanghai --output json`,
	core.ExecuteHours)

// commitsCmd exports user commits.
var commitsCmd = reportCmd("commits",
	"Export your commits.",
	`List your commits with their code churn and languages.

The text format shows the latest commits; csv, json and parquet export all of them.

Examples:
  year2018 commits --limit 30
  year2018 commits --output parquet --output-file commits.parquet`,
	core.ExecuteCommits)
