package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/internal/parquet"
	"github.com/baijiangliang/year2018/schema"
)

// subjectWidth bounds commit subjects in the text table.
const subjectWidth = 50

// commitRecord is the JSON layout of one commit.
type commitRecord struct {
	Repo      string    `json:"repo"`
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Time      time.Time `json:"time"`
	Subject   string    `json:"subject"`
	Merge     bool      `json:"merge"`
	CodeFiles int       `json:"code_files"`
	CodeIns   int       `json:"code_ins"`
	CodeDel   int       `json:"code_del"`
	Languages []string  `json:"languages"`
}

// PrintCommits outputs the user commits oldest first. The text table shows
// the latest cfg.Limit of them.
func PrintCommits(commits []*schema.Commit, cfg *contract.Config, duration time.Duration) error {
	loc := cfg.Location
	commits = slices.Clone(commits)
	slices.SortStableFunc(commits, func(x, y *schema.Commit) int {
		return cmp.Or(cmp.Compare(x.Timestamp, y.Timestamp), cmp.Compare(x.ID, y.ID))
	})
	m := masker(cfg.Encrypt)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, commitRecords(commits, loc, m))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCommits(w, commitRecords(commits, loc, m))
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteCommitsParquet(parquet.ConvertCommits(commits, loc, cfg.Encrypt), cfg.OutputFile); err != nil {
			return err
		}
		contract.Logger().Infof("Wrote Parquet to %s", cfg.OutputFile)
		return nil
	case schema.DOTOut:
		return errUnsupportedOutput("commits", cfg.Output)
	default:
		latest := commits
		if cfg.Limit > 0 && len(latest) > cfg.Limit {
			latest = latest[len(latest)-cfg.Limit:]
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeCommitsTable(w, commitRecords(latest, loc, m)); err != nil {
				return fmt.Errorf("error writing table output: %w", err)
			}
			writeFooter(w, cfg, duration)
			return nil
		}, "Wrote commits")
	}
}

func commitRecords(commits []*schema.Commit, loc *time.Location, m masker) []commitRecord {
	out := make([]commitRecord, len(commits))
	for i, c := range commits {
		out[i] = commitRecord{
			Repo:      m.repo(c.Repo),
			ID:        c.ID,
			Author:    m.name(c.Author),
			Time:      c.Time(loc),
			Subject:   c.Subject,
			Merge:     c.IsMerge(),
			CodeFiles: c.CodeFiles,
			CodeIns:   c.CodeIns,
			CodeDel:   c.CodeDel,
			Languages: slices.Sorted(maps.Keys(c.LangStat)),
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, width int) string {
	rr := []rune(s)
	if len(rr) <= width {
		return s
	}
	return string(rr[:width-3]) + "..."
}

func writeCommitsTable(w io.Writer, records []commitRecord) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No commits found for the tracked emails.")
		return nil
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Time.Format("2006-01-02 15:04"),
			r.Repo,
			shortID(r.ID),
			itoa(r.CodeFiles),
			itoa(r.CodeIns),
			itoa(r.CodeDel),
			strings.Join(r.Languages, ","),
			truncate(r.Subject, subjectWidth),
		}
	}
	return renderTable(w, []string{"Time", "Repo", "Commit", "Files", "Added", "Deleted", "Languages", "Subject"}, rows)
}

func writeCSVCommits(w io.Writer, records []commitRecord) error {
	header := []string{"time", "repo", "id", "author", "merge", "code_files", "code_ins", "code_del", "languages", "subject"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.Time.Format(time.RFC3339),
				r.Repo,
				r.ID,
				r.Author,
				fmt.Sprint(r.Merge),
				itoa(r.CodeFiles),
				itoa(r.CodeIns),
				itoa(r.CodeDel),
				strings.Join(r.Languages, "|"),
				r.Subject,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
