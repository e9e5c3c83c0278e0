// Package parquet exports per-commit and per-day statistics to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/baijiangliang/year2018/schema"
	"github.com/parquet-go/parquet-go"
)

// CommitRow is one commit of the tracked user.
type CommitRow struct {
	Repo    string    `parquet:"repo,snappy"`
	ID      string    `parquet:"id,snappy"`
	Author  string    `parquet:"author,snappy"`
	Email   string    `parquet:"email,snappy"`
	Time    time.Time `parquet:"time,snappy"`
	Subject string    `parquet:"subject,snappy"`
	IsMerge bool      `parquet:"is_merge"`

	// CodeFiles, CodeIns and CodeDel are the smoothed counts
	CodeFiles int32 `parquet:"code_files,snappy"`
	CodeIns   int32 `parquet:"code_ins,snappy"`
	CodeDel   int32 `parquet:"code_del,snappy"`
	Weight    int32 `parquet:"weight,snappy"`

	// Languages lists the languages touched, joined by "|" (nullable)
	Languages *string `parquet:"languages,optional,snappy"`
}

// DayRow is the activity of one calendar day.
type DayRow struct {
	Date    string `parquet:"date,snappy"`
	Commits int32  `parquet:"commits,snappy"`
	Insert  int32  `parquet:"insert,snappy"`
	Delete  int32  `parquet:"delete,snappy"`
	Weight  int32  `parquet:"weight,snappy"`
}

// WriteCommitsParquet writes commit rows to outputPath.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDaysParquet writes day rows to outputPath.
func WriteDaysParquet(data []DayRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet infers the schema from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// ConvertCommits maps commits to rows. With mask set, people and repository
// names are obscured the same way the text output does it.
func ConvertCommits(commits []*schema.Commit, loc *time.Location, mask bool) []CommitRow {
	rows := make([]CommitRow, len(commits))
	for i, c := range commits {
		row := CommitRow{
			Repo:      c.Repo,
			ID:        c.ID,
			Author:    c.Author,
			Email:     c.Email,
			Time:      c.Time(loc),
			Subject:   c.Subject,
			IsMerge:   c.IsMerge(),
			CodeFiles: int32(c.CodeFiles),
			CodeIns:   int32(c.CodeIns),
			CodeDel:   int32(c.CodeDel),
			Weight:    int32(schema.Weight(1, c.CodeIns, c.CodeDel)),
		}
		if mask {
			row.Repo = schema.MaskString(row.Repo)
			row.Author = schema.MaskName(row.Author)
			row.Email = maskEmail(row.Email)
		}
		if len(c.LangStat) > 0 {
			langs := make([]string, 0, len(c.LangStat))
			for lang := range c.LangStat {
				langs = append(langs, lang)
			}
			slices.Sort(langs)
			joined := strings.Join(langs, "|")
			row.Languages = &joined
		}
		rows[i] = row
	}
	return rows
}

// ConvertDays maps day statistics to rows.
func ConvertDays(days []schema.DayStat) []DayRow {
	rows := make([]DayRow, len(days))
	for i, d := range days {
		rows[i] = DayRow{
			Date:    d.Date,
			Commits: int32(d.Commits),
			Insert:  int32(d.Insert),
			Delete:  int32(d.Delete),
			Weight:  int32(d.Weight),
		}
	}
	return rows
}

func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return schema.MaskString(email)
	}
	return schema.MaskString(local) + "@" + domain
}
